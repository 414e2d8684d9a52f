package apistorev1

import (
	"context"
	"net/http"
)

type createStoreRequest struct {
	Name string `json:"name"`
}

func createStore(ctx context.Context, w http.ResponseWriter, input *createStoreRequest) (*StoreResponse, error) {

	s := GetServicer(ctx)

	store, err := s.CreateStore(input.Name)
	if err != nil {
		return nil, err
	}

	response, err := newStoreResponse(store)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return response, nil
}
