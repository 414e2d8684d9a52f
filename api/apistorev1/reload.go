package apistorev1

import (
	"context"

	"github.com/fulldump/box"
)

// reload reopens the store file, picking up rotations done by other processes
func reload(ctx context.Context) (*StoreResponse, error) {

	s := GetServicer(ctx)

	store, err := s.GetStore(box.GetUrlParameter(ctx, "storeName"))
	if err != nil {
		return nil, err
	}

	err = store.Reload()
	if err != nil {
		return nil, err
	}

	return newStoreResponse(store)
}
