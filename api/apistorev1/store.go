package apistorev1

import (
	"github.com/fulldump/docdb/database"
)

type StoreResponse struct {
	Name         string `json:"name"`
	HeaderOffset int64  `json:"header_offset"`
	Size         int64  `json:"size"`
	Serializer   string `json:"serializer"`
	Framing      string `json:"framing"`
	Documents    int64  `json:"documents"`
	Bytes        int64  `json:"bytes"`
}

func newStoreResponse(store *database.Store) (*StoreResponse, error) {

	stats, err := store.Stats()
	if err != nil {
		return nil, err
	}

	return &StoreResponse{
		Name:         store.Name,
		HeaderOffset: stats.HeaderOffset,
		Size:         stats.Size,
		Serializer:   stats.Serializer,
		Framing:      string(stats.Framing),
		Documents:    stats.Documents,
		Bytes:        stats.Bytes,
	}, nil
}
