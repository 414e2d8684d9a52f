package filestore

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by operations on a store that was closed
	ErrClosed = errors.New("store is closed")

	// ErrShortHeader means the file has some content but less than the
	// reserved header region, so it was not written by a FileStore
	ErrShortHeader = errors.New("file is shorter than the header region")
)

// OpenError is returned when the backing file cannot be opened (Op "open") or
// reopened by Reload (Op "reopen").
type OpenError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("%s store '%s': %s", e.Op, e.Path, e.Err.Error())
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// EncodeError is returned by Append when the document cannot be serialized.
// Nothing has been written to the file.
type EncodeError struct {
	Serializer string
	Err        error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode document (%s): %s", e.Serializer, e.Err.Error())
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// WriteError is returned by Append when the write fails. Written bytes of a
// partial document stay in the file.
type WriteError struct {
	Path    string
	Written int
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write store '%s' (%d bytes written): %s", e.Path, e.Written, e.Err.Error())
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
