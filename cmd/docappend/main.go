// Command docappend appends the JSON documents read from stdin to a store
// file.
//
//	echo '{"name":"John Doe"} {"name":"Jane Doe"}' | docappend -file data/people
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fulldump/goconfig"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/docdb/codec"
	"github.com/fulldump/docdb/filestore"
)

type Config struct {
	File         string `usage:"store file, created if it does not exist"`
	HeaderOffset int64  `usage:"bytes reserved at the start of the file"`
	Codec        string `usage:"document codec: json or cbor"`
	Compression  string `usage:"document compression: none, zstd, lz4 or brotli"`
	Framing      string `usage:"document framing: none, newline or length"`
	Reload       bool   `usage:"reopen the file before appending"`
	Sync         bool   `usage:"fsync when finished"`
}

func fatal(code int, err error) {
	fmt.Fprintln(os.Stderr, "ERROR:", err.Error())
	os.Exit(code)
}

func main() {

	c := &Config{
		HeaderOffset: filestore.DefaultHeaderOffset,
		Codec:        "json",
		Compression:  codec.CompressionNone,
		Framing:      string(filestore.FramingNone),
	}
	goconfig.Read(c)

	if c.File == "" {
		fatal(2, fmt.Errorf("-file is required"))
	}

	serializer, err := codec.New(c.Codec, c.Compression)
	if err != nil {
		fatal(2, err)
	}

	framing, err := filestore.ParseFraming(c.Framing)
	if err != nil {
		fatal(2, err)
	}

	s, err := filestore.Open(c.File,
		filestore.WithHeaderOffset(c.HeaderOffset),
		filestore.WithSerializer(serializer),
		filestore.WithFraming(framing),
	)
	if err != nil {
		fatal(1, err)
	}
	defer s.Close()

	if c.Reload {
		err := s.Reload()
		if err != nil {
			fatal(1, err)
		}
	}

	n, err := appendAll(s, os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "appended", n, "documents")
		s.Close()
		fatal(3, err)
	}

	if c.Sync {
		err := s.Sync()
		if err != nil {
			fatal(3, err)
		}
	}

	fmt.Fprintln(os.Stderr, "appended", n, "documents")
}

func appendAll(s *filestore.FileStore, r io.Reader) (int, error) {

	decoder := jsontext.NewDecoder(r)
	for n := 0; ; n++ {
		document, err := decoder.ReadValue()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("read document %d: %w", n, err)
		}

		err = s.Append(document)
		if err != nil {
			return n, err
		}
	}
}
