package apistorev1

import (
	"context"

	"github.com/fulldump/box"
)

func syncStore(ctx context.Context) (*StoreResponse, error) {

	s := GetServicer(ctx)

	store, err := s.GetStore(box.GetUrlParameter(ctx, "storeName"))
	if err != nil {
		return nil, err
	}

	err = store.Sync()
	if err != nil {
		return nil, err
	}

	return newStoreResponse(store)
}
