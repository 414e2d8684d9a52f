package apistorev1

import (
	"context"
)

func listStores(ctx context.Context) ([]*StoreResponse, error) {

	s := GetServicer(ctx)

	result := []*StoreResponse{}
	for _, store := range s.ListStores() {
		response, err := newStoreResponse(store)
		if err != nil {
			return nil, err
		}
		result = append(result, response)
	}

	return result, nil
}
