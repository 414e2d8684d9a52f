package codec

import (
	"bytes"
	"errors"
	"io"

	json2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// JSON encodes documents as compact JSON. Map keys are sorted so the output
// is deterministic; a jsontext.Value keeps its own member order.
var JSON Serializer = jsonSerializer{}

var ErrTrailingData = errors.New("raw JSON value has data after the first value")

type jsonSerializer struct{}

func (jsonSerializer) Name() string {
	return "json"
}

func (jsonSerializer) Marshal(v any) ([]byte, error) {

	if raw, ok := v.(jsontext.Value); ok {
		return compactRaw(raw)
	}

	return json2.Marshal(v, json2.Deterministic(true))
}

// compactRaw validates raw strictly (duplicate member names and invalid UTF-8
// are rejected) and returns a compacted copy.
func compactRaw(raw jsontext.Value) ([]byte, error) {

	decoder := jsontext.NewDecoder(bytes.NewReader(raw))
	value, err := decoder.ReadValue()
	if err != nil {
		return nil, err
	}

	_, err = decoder.ReadValue()
	if err == nil {
		return nil, ErrTrailingData
	}
	if err != io.EOF {
		return nil, err
	}

	compacted := value.Clone()
	err = compacted.Compact()
	if err != nil {
		return nil, err
	}

	return compacted, nil
}
