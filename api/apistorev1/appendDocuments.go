package apistorev1

import (
	"context"
	"io"
	"net/http"

	"github.com/fulldump/box"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/docdb/database"
)

// appendDocuments appends every JSON document found in the body, in order.
// Documents before a malformed one stay written.
func appendDocuments(ctx context.Context, w http.ResponseWriter, r *http.Request) (*database.AppendResult, error) {

	s := GetServicer(ctx)

	store, err := s.GetOrCreateStore(box.GetUrlParameter(ctx, "storeName"))
	if err != nil {
		return nil, err
	}

	total := &database.AppendResult{}

	decoder := jsontext.NewDecoder(r.Body)
	for {
		document, err := decoder.ReadValue()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		result, err := store.Append(document)
		if result != nil {
			total.Documents += result.Documents
			total.Bytes += result.Bytes
		}
		if err != nil {
			return nil, err
		}
	}

	if total.Documents == 0 {
		return nil, nil // 204
	}

	w.WriteHeader(http.StatusCreated)
	return total, nil
}
