package main

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/fulldump/docdb/codec"
	"github.com/fulldump/docdb/filestore"
)

// TestFile appends straight to a FileStore, without HTTP nor locking
func TestFile(c Config) {

	dir, cleanup := TempDir()
	cleanups = append(cleanups, cleanup)

	serializer, err := codec.New(c.Codec, codec.CompressionNone)
	if err != nil {
		fmt.Println("ERROR:", err.Error())
		os.Exit(2)
	}

	framing, err := filestore.ParseFraming(c.Framing)
	if err != nil {
		fmt.Println("ERROR:", err.Error())
		os.Exit(2)
	}

	s, err := filestore.Open(path.Join(dir, "bench"),
		filestore.WithSerializer(serializer),
		filestore.WithFraming(framing),
	)
	if err != nil {
		fmt.Println("ERROR:", err.Error())
		os.Exit(1)
	}
	defer s.Close()

	t0 := time.Now()
	for i := int64(0); i < c.N; i++ {
		err := s.Append(JSON{"id": i, "n": fmt.Sprint(i)})
		if err != nil {
			fmt.Println("ERROR: append:", err.Error())
			os.Exit(3)
		}
	}
	took := time.Since(t0)

	stats, _ := s.Stats()
	fmt.Println("bytes:", stats.Bytes)
	Report(c.N, took)
}
