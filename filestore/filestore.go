// Package filestore appends serialized documents to a single file.
//
// Layout of a store file:
//
//	[0, HeaderOffset)    reserved header, zero filled when the file is new
//	[HeaderOffset, EOF)  documents, one after another, wrapped by the Framing
//
// Documents are never read back nor modified. Every Append lands at the end of
// the file, even if another process appended in between.
//
// A FileStore has a single owner and is not safe for concurrent use. Callers
// sharing one must serialize access themselves.
package filestore

import (
	"fmt"
	"io"
	"os"

	"github.com/fulldump/docdb/codec"
)

type FileStore struct {
	path         string
	file         *os.File
	headerOffset int64
	serializer   codec.Serializer
	framing      Framing

	documents int64 // appended through this instance
	bytes     int64 // written through this instance, including framing
}

type Stats struct {
	Path         string
	HeaderOffset int64
	Size         int64
	Serializer   string
	Framing      Framing
	Documents    int64
	Bytes        int64
}

// Open opens the store file at path for reading and writing, creating it if
// it does not exist. Existing content is never truncated. A new (empty) file
// is extended with zeros up to the header offset.
func Open(path string, options ...Option) (*FileStore, error) {

	s := newFileStore(path, options...)

	err := s.validate()
	if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0666)
	if err != nil {
		return nil, &OpenError{Op: "open", Path: path, Err: err}
	}

	err = s.reserveHeader(file)
	if err != nil {
		file.Close()
		return nil, &OpenError{Op: "open", Path: path, Err: err}
	}

	s.file = file

	return s, nil
}

// Validate checks a set of options the same way Open does, without touching
// the filesystem.
func Validate(options ...Option) error {
	return newFileStore("", options...).validate()
}

func newFileStore(path string, options ...Option) *FileStore {
	s := &FileStore{
		path:         path,
		headerOffset: DefaultHeaderOffset,
		serializer:   codec.JSON,
		framing:      FramingNone,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *FileStore) validate() error {
	if s.headerOffset < 0 {
		return fmt.Errorf("header offset must not be negative, got %d", s.headerOffset)
	}
	if s.serializer == nil {
		return fmt.Errorf("serializer is required")
	}
	if _, err := ParseFraming(string(s.framing)); err != nil {
		return err
	}
	if s.framing == FramingNewline && s.serializer.Name() != codec.JSON.Name() {
		return fmt.Errorf("framing '%s' is not compatible with serializer '%s'", s.framing, s.serializer.Name())
	}
	return nil
}

func (s *FileStore) reserveHeader(file *os.File) error {

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	size := info.Size()
	if size == 0 && s.headerOffset > 0 {
		err := file.Truncate(s.headerOffset)
		if err != nil {
			return fmt.Errorf("reserve header: %w", err)
		}
		return nil
	}

	if size < s.headerOffset {
		return ErrShortHeader
	}

	return nil
}

// Reload reopens the same path, which must exist, and replaces the current
// handle. It is the way to follow a file that was rotated or truncated by
// someone else. If reopening fails the current handle is kept.
func (s *FileStore) Reload() error {

	if s.file == nil {
		return ErrClosed
	}

	file, err := os.OpenFile(s.path, os.O_RDWR|os.O_APPEND, 0)
	if err != nil {
		return &OpenError{Op: "reopen", Path: s.path, Err: err}
	}

	err = s.reserveHeader(file)
	if err != nil {
		file.Close()
		return &OpenError{Op: "reopen", Path: s.path, Err: err}
	}

	previous := s.file
	s.file = file

	// nothing is buffered on our side
	previous.Close()

	return nil
}

// Append serializes doc and writes it, framed, at the end of the file with a
// single write.
func (s *FileStore) Append(doc any) error {

	if s.file == nil {
		return ErrClosed
	}

	data, err := s.serializer.Marshal(doc)
	if err != nil {
		return &EncodeError{Serializer: s.serializer.Name(), Err: err}
	}

	record := s.framing.frame(data)

	n, err := s.file.Write(record)
	s.bytes += int64(n)
	if err != nil {
		return &WriteError{Path: s.path, Written: n, Err: err}
	}
	if n < len(record) {
		return &WriteError{Path: s.path, Written: n, Err: io.ErrShortWrite}
	}

	s.documents++

	return nil
}

// Sync commits the file to stable storage (fsync)
func (s *FileStore) Sync() error {
	if s.file == nil {
		return ErrClosed
	}
	return s.file.Sync()
}

func (s *FileStore) Stats() (*Stats, error) {

	if s.file == nil {
		return nil, ErrClosed
	}

	info, err := s.file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	return &Stats{
		Path:         s.path,
		HeaderOffset: s.headerOffset,
		Size:         info.Size(),
		Serializer:   s.serializer.Name(),
		Framing:      s.framing,
		Documents:    s.documents,
		Bytes:        s.bytes,
	}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) HeaderOffset() int64 {
	return s.headerOffset
}

func (s *FileStore) Close() error {
	if s.file == nil {
		return ErrClosed
	}
	err := s.file.Close()
	s.file = nil
	return err
}
