package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/docdb/filestore"
	"github.com/fulldump/docdb/service"
)

type ErrUnavailable string

func (e ErrUnavailable) Error() string {
	return "temporary unavailable: " + string(e)
}

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}

// describeError maps an error to its HTTP status and a human description
func describeError(ctx context.Context, err error) (int, string) {

	var syntaxError *json.SyntaxError
	var syntacticError *jsontext.SyntacticError
	var encodeError *filestore.EncodeError
	var unavailable ErrUnavailable

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "user is not authenticated"
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable, "database is " + string(unavailable)
	case errors.Is(err, service.ErrorStoreNotFound):
		return http.StatusNotFound, "store does not exist"
	case errors.Is(err, service.ErrorStoreAlreadyExists):
		return http.StatusConflict, "store already exists"
	case errors.Is(err, service.ErrorInvalidName):
		return http.StatusBadRequest, "store names can not be empty, start with a dot or contain path separators"
	case errors.As(err, &syntaxError), errors.As(err, &syntacticError), errors.Is(err, io.ErrUnexpectedEOF):
		return http.StatusBadRequest, "Malformed JSON"
	case errors.As(err, &encodeError):
		return http.StatusBadRequest, "document can not be serialized"
	case errors.Is(err, box.ErrResourceNotFound):
		return http.StatusNotFound, fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String())
	case errors.Is(err, box.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method)
	}

	return http.StatusInternalServerError, "Unexpected error"
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}

		status, description := describeError(ctx, err)

		w := box.GetResponse(ctx)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		PrettyError{
			Message:     err.Error(),
			Description: description,
		}.MarshalTo(w)
	}
}
