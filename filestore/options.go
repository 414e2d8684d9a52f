package filestore

import (
	"github.com/fulldump/docdb/codec"
)

// DefaultHeaderOffset is the size of the header region reserved at the
// start of every store file.
const DefaultHeaderOffset = 1024

type Option func(s *FileStore)

// WithHeaderOffset changes the reserved header size. Zero disables the
// header region.
func WithHeaderOffset(n int64) Option {
	return func(s *FileStore) {
		s.headerOffset = n
	}
}

func WithSerializer(serializer codec.Serializer) Option {
	return func(s *FileStore) {
		s.serializer = serializer
	}
}

func WithFraming(framing Framing) Option {
	return func(s *FileStore) {
		s.framing = framing
	}
}
