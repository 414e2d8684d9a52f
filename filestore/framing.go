package filestore

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// Framing decides what surrounds every serialized document in the file.
type Framing string

const (
	// FramingNone writes documents back to back. The file is not
	// self-delimiting.
	FramingNone Framing = "none"

	// FramingNewline terminates every document with '\n' (JSON lines). Only
	// valid for serializers that never emit a raw newline.
	FramingNewline Framing = "newline"

	// FramingLength prefixes every document with an 8 byte record header:
	// Length(4) + CRC32C(4), little endian.
	FramingLength Framing = "length"
)

const lengthHeaderSize = 8

var crcTable = crc32.MakeTable(crc32.Castagnoli)

func ParseFraming(s string) (Framing, error) {
	switch Framing(s) {
	case "", FramingNone:
		return FramingNone, nil
	case FramingNewline:
		return FramingNewline, nil
	case FramingLength:
		return FramingLength, nil
	}
	return "", fmt.Errorf("unknown framing '%s'", s)
}

// Overhead is the number of bytes the framing adds to every document
func (f Framing) Overhead() int {
	switch f {
	case FramingNewline:
		return 1
	case FramingLength:
		return lengthHeaderSize
	}
	return 0
}

// frame returns the exact bytes to write for a serialized document
func (f Framing) frame(data []byte) []byte {
	switch f {
	case FramingNewline:
		record := make([]byte, 0, len(data)+1)
		record = append(record, data...)
		return append(record, '\n')

	case FramingLength:
		record := make([]byte, lengthHeaderSize, lengthHeaderSize+len(data))
		binary.LittleEndian.PutUint32(record[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(record[4:], crc32.Checksum(data, crcTable))
		return append(record, data...)
	}
	return data
}
