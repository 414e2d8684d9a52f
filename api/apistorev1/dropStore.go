package apistorev1

import (
	"context"

	"github.com/fulldump/box"
)

// dropStore closes the store, removes its file and answers with the last
// state of the store.
func dropStore(ctx context.Context) (*StoreResponse, error) {

	s := GetServicer(ctx)

	name := box.GetUrlParameter(ctx, "storeName")

	store, err := s.GetStore(name)
	if err != nil {
		return nil, err
	}

	response, err := newStoreResponse(store)
	if err != nil {
		return nil, err
	}

	err = s.DropStore(name)
	if err != nil {
		return nil, err
	}

	return response, nil
}
