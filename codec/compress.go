package codec

import (
	"bytes"
	"fmt"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const (
	CompressionNone   = "none"
	CompressionZstd   = "zstd"
	CompressionLZ4    = "lz4"
	CompressionBrotli = "brotli"
)

// zstd.Encoder is safe for concurrent use through EncodeAll
var zstdEncoder *zstd.Encoder

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("codec: zstd encoder initialization failed: " + err.Error())
	}
}

// Compressed wraps a serializer so every document is compressed on its own.
// zstd and lz4 write self-describing frames, so a document can be
// decompressed without knowing its original size. Brotli streams carry no
// magic number, readers must know the algorithm from the store configuration.
func Compressed(inner Serializer, algorithm string) (Serializer, error) {
	switch algorithm {
	case CompressionZstd, CompressionLZ4, CompressionBrotli:
		return &compressedSerializer{inner: inner, algorithm: algorithm}, nil
	}
	return nil, fmt.Errorf("unknown compression '%s'", algorithm)
}

type compressedSerializer struct {
	inner     Serializer
	algorithm string
}

func (c *compressedSerializer) Name() string {
	return c.inner.Name() + "+" + c.algorithm
}

func (c *compressedSerializer) Marshal(v any) ([]byte, error) {

	data, err := c.inner.Marshal(v)
	if err != nil {
		return nil, err
	}

	switch c.algorithm {
	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, nil), nil
	case CompressionLZ4:
		return compressLZ4(data)
	case CompressionBrotli:
		return compressBrotli(data)
	}

	return nil, fmt.Errorf("unknown compression '%s'", c.algorithm)
}

func compressLZ4(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := lz4.NewWriter(buf)
	_, err := w.Write(data)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	err = w.Close()
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return buf.Bytes(), nil
}

func compressBrotli(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := brotli.NewWriterLevel(buf, brotli.DefaultCompression)
	_, err := w.Write(data)
	err2 := w.Close()
	if err == nil {
		err = err2
	}
	if err != nil {
		return nil, fmt.Errorf("brotli compress: %w", err)
	}
	return buf.Bytes(), nil
}
