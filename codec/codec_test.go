package codec

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/fulldump/biff"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

func TestJSON_Deterministic(t *testing.T) {

	b, err := JSON.Marshal(map[string]any{
		"name":   "John Doe",
		"age":    43,
		"phones": []any{"+44 1234567", "+44 2345678"},
	})
	biff.AssertNil(err)
	biff.AssertEqual(string(b), `{"age":43,"name":"John Doe","phones":["+44 1234567","+44 2345678"]}`)
}

func TestJSON_RawValueKeepsOrder(t *testing.T) {

	raw := jsontext.Value(`{
		"name": "John Doe",
		"age": 43
	}`)

	b, err := JSON.Marshal(raw)
	biff.AssertNil(err)
	biff.AssertEqual(string(b), `{"name":"John Doe","age":43}`)
}

func TestJSON_Unencodable(t *testing.T) {

	_, err := JSON.Marshal(map[string]any{"ch": make(chan int)})
	biff.AssertNotNil(err)

	_, err = JSON.Marshal(math.NaN())
	biff.AssertNotNil(err)
}

func TestCBOR_Deterministic(t *testing.T) {

	b, err := CBOR.Marshal(map[string]any{"b": 1, "a": 2})
	biff.AssertNil(err)
	biff.AssertEqual(b, []byte{0xa2, 0x61, 'a', 0x02, 0x61, 'b', 0x01})
}

func TestCBOR_RawJSON(t *testing.T) {

	fromRaw, err := CBOR.Marshal(jsontext.Value(`{"b":1,"a":[true,null,"x"]}`))
	biff.AssertNil(err)

	fromMap, err := CBOR.Marshal(map[string]any{"a": []any{true, nil, "x"}, "b": 1.0})
	biff.AssertNil(err)

	biff.AssertEqual(fromRaw, fromMap)
}

func TestCBOR_Unencodable(t *testing.T) {

	_, err := CBOR.Marshal(func() {})
	biff.AssertNotNil(err)
}

func TestCompressed(t *testing.T) {

	document := map[string]any{"hello": "world"}
	expected, _ := JSON.Marshal(document)

	biff.Alternative("Compressed", func(a *biff.A) {

		a.Alternative("zstd", func(a *biff.A) {
			s, err := Compressed(JSON, CompressionZstd)
			biff.AssertNil(err)
			biff.AssertEqual(s.Name(), "json+zstd")

			b, err := s.Marshal(document)
			biff.AssertNil(err)

			decoder, _ := zstd.NewReader(nil)
			defer decoder.Close()
			plain, err := decoder.DecodeAll(b, nil)
			biff.AssertNil(err)
			biff.AssertEqual(plain, expected)
		})

		a.Alternative("lz4", func(a *biff.A) {
			s, err := Compressed(JSON, CompressionLZ4)
			biff.AssertNil(err)
			biff.AssertEqual(s.Name(), "json+lz4")

			b, err := s.Marshal(document)
			biff.AssertNil(err)

			plain, err := io.ReadAll(lz4.NewReader(bytes.NewReader(b)))
			biff.AssertNil(err)
			biff.AssertEqual(plain, expected)
		})

		a.Alternative("brotli", func(a *biff.A) {
			s, err := Compressed(JSON, CompressionBrotli)
			biff.AssertNil(err)
			biff.AssertEqual(s.Name(), "json+brotli")

			b, err := s.Marshal(document)
			biff.AssertNil(err)

			plain, err := io.ReadAll(brotli.NewReader(bytes.NewReader(b)))
			biff.AssertNil(err)
			biff.AssertEqual(plain, expected)
		})

		a.Alternative("Inner error is propagated", func(a *biff.A) {
			s, _ := Compressed(JSON, CompressionZstd)
			_, err := s.Marshal(make(chan int))
			biff.AssertNotNil(err)
		})

		a.Alternative("Unknown algorithm", func(a *biff.A) {
			_, err := Compressed(JSON, "snappy")
			biff.AssertNotNil(err)
		})
	})
}

func TestNew(t *testing.T) {

	s, err := New("", "")
	biff.AssertNil(err)
	biff.AssertEqual(s.Name(), "json")

	s, err = New("cbor", "none")
	biff.AssertNil(err)
	biff.AssertEqual(s.Name(), "cbor")

	s, err = New("cbor", "zstd")
	biff.AssertNil(err)
	biff.AssertEqual(s.Name(), "cbor+zstd")

	_, err = New("xml", "")
	biff.AssertEqual(err.Error(), "unknown codec 'xml'")
}

func TestJSON_RawValueInvalid(t *testing.T) {

	_, err := JSON.Marshal(jsontext.Value(`{"a":1,"a":2}`))
	biff.AssertNotNil(err)

	_, err = JSON.Marshal(jsontext.Value(`{"a":`))
	biff.AssertNotNil(err)

	_, err = JSON.Marshal(jsontext.Value("\"\xff\""))
	biff.AssertNotNil(err)

	_, err = JSON.Marshal(jsontext.Value(`{"a":1} {"b":2}`))
	biff.AssertEqual(err, ErrTrailingData)
}
