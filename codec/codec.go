// Package codec turns documents into the bytes a store appends.
//
// A Serializer has a single contract: the same document always produces the
// same bytes, or an error. Nothing is read back, so decoding is left to
// whoever consumes the files.
package codec

import (
	"fmt"
)

type Serializer interface {
	// Name identifies the encoding, e.g. "json" or "cbor+zstd"
	Name() string
	Marshal(v any) ([]byte, error)
}

// New resolves the serializer for a codec and compression name as they appear
// in the configuration.
func New(name, compression string) (Serializer, error) {

	var s Serializer
	switch name {
	case "", "json":
		s = JSON
	case "cbor":
		s = CBOR
	default:
		return nil, fmt.Errorf("unknown codec '%s'", name)
	}

	if compression == "" || compression == CompressionNone {
		return s, nil
	}

	return Compressed(s, compression)
}
