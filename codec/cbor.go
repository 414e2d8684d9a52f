package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	json2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// CBOR encodes documents with Core Deterministic Encoding (RFC 8949 §4.2):
// sorted map keys, smallest integer encoding, no indefinite-length items.
var CBOR Serializer = cborSerializer{}

var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
}

type cborSerializer struct{}

func (cborSerializer) Name() string {
	return "cbor"
}

func (cborSerializer) Marshal(v any) ([]byte, error) {

	// Raw JSON would otherwise end up as a CBOR byte string
	if raw, ok := v.(jsontext.Value); ok {
		var decoded any
		err := json2.Unmarshal(raw, &decoded)
		if err != nil {
			return nil, fmt.Errorf("decode raw json: %w", err)
		}
		v = decoded
	}

	return cborEncMode.Marshal(v)
}
