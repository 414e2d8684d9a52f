package filestore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io/fs"
	"os"
	"strings"
	"testing"

	. "github.com/fulldump/biff"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/docdb/codec"
)

var johnDoe = jsontext.Value(`
	{
		"name": "John Doe",
		"age": 43,
		"phones": [
			"+44 1234567",
			"+44 2345678"
		]
	}`)

func fileSize(filename string) int64 {
	info, err := os.Stat(filename)
	if err != nil {
		return -1
	}
	return info.Size()
}

func TestOpen_NewFile(t *testing.T) {
	Environment(t, func(filename string) {

		s, err := Open(filename)
		AssertNil(err)
		defer s.Close()

		AssertEqual(s.Path(), filename)
		AssertEqual(s.HeaderOffset(), int64(DefaultHeaderOffset))

		content, _ := os.ReadFile(filename)
		AssertEqual(len(content), DefaultHeaderOffset)
		AssertEqual(content, make([]byte, DefaultHeaderOffset))
	})
}

func TestOpen_WithoutHeader(t *testing.T) {
	Environment(t, func(filename string) {

		s, err := Open(filename, WithHeaderOffset(0))
		AssertNil(err)
		defer s.Close()

		AssertEqual(fileSize(filename), int64(0))
	})
}

func TestOpen_ExistingFileIsNotModified(t *testing.T) {
	Environment(t, func(filename string) {

		// Setup
		original := bytes.Repeat([]byte("0123456789"), 200)
		os.WriteFile(filename, original, 0666)

		// Run
		s, err := Open(filename)
		AssertNil(err)
		s.Close()

		// Check
		content, _ := os.ReadFile(filename)
		AssertEqual(content, original)
	})
}

func TestOpen_ShortHeader(t *testing.T) {
	Environment(t, func(filename string) {

		os.WriteFile(filename, []byte("garbage"), 0666)

		s, err := Open(filename)
		AssertNil(s)
		AssertTrue(errors.Is(err, ErrShortHeader))

		openErr := &OpenError{}
		AssertTrue(errors.As(err, &openErr))
		AssertEqual(openErr.Op, "open")
		AssertEqual(openErr.Path, filename)

		content, _ := os.ReadFile(filename)
		AssertEqual(string(content), "garbage")
	})
}

func TestOpen_Fails(t *testing.T) {

	filename := t.TempDir() + "/missing-dir/store"

	s, err := Open(filename)
	AssertNil(s)
	AssertTrue(errors.Is(err, fs.ErrNotExist))
	AssertTrue(strings.HasPrefix(err.Error(), "open store '"+filename+"': "))
}

func TestOpen_InvalidOptions(t *testing.T) {
	Environment(t, func(filename string) {

		_, err := Open(filename, WithHeaderOffset(-1))
		AssertNotNil(err)

		_, err = Open(filename, WithSerializer(nil))
		AssertNotNil(err)

		_, err = Open(filename, WithSerializer(codec.CBOR), WithFraming(FramingNewline))
		AssertNotNil(err)

		AssertEqual(fileSize(filename), int64(-1))
	})
}

func TestValidate(t *testing.T) {

	AssertNil(Validate())
	AssertNil(Validate(WithSerializer(codec.CBOR), WithFraming(FramingLength)))

	AssertNotNil(Validate(WithHeaderOffset(-1)))
	AssertNotNil(Validate(WithFraming("crlf")))

	compressed, _ := codec.New("json", codec.CompressionZstd)
	AssertNotNil(Validate(WithSerializer(compressed), WithFraming(FramingNewline)))
	AssertNotNil(Validate(WithSerializer(codec.CBOR), WithFraming(FramingNewline)))
}

func TestAppend(t *testing.T) {
	Environment(t, func(filename string) {

		// Setup
		s, _ := Open(filename)
		defer s.Close()

		// Run
		err := s.Append(johnDoe)
		AssertNil(err)

		// Check
		content, _ := os.ReadFile(filename)
		AssertEqual(string(content[DefaultHeaderOffset:]), `{"name":"John Doe","age":43,"phones":["+44 1234567","+44 2345678"]}`)
	})
}

func TestAppend_MatchesSerializer(t *testing.T) {
	Environment(t, func(filename string) {

		document := map[string]any{
			"name":   "John Doe",
			"age":    43,
			"phones": []any{"+44 1234567", "+44 2345678"},
		}
		expected, _ := codec.JSON.Marshal(document)

		s, _ := Open(filename)
		defer s.Close()

		before := fileSize(filename)
		err := s.Append(document)
		AssertNil(err)

		AssertEqual(fileSize(filename), before+int64(len(expected)))
		content, _ := os.ReadFile(filename)
		AssertEqual(content[before:], expected)
	})
}

func TestAppend_Sequential(t *testing.T) {
	Environment(t, func(filename string) {

		s, _ := Open(filename)
		defer s.Close()

		AssertNil(s.Append(map[string]any{"i": 1}))
		AssertNil(s.Append([]any{"two", 2.5, true, nil}))

		content, _ := os.ReadFile(filename)
		AssertEqual(string(content[DefaultHeaderOffset:]), `{"i":1}["two",2.5,true,null]`)
	})
}

func TestAppend_Unencodable(t *testing.T) {
	Environment(t, func(filename string) {

		s, _ := Open(filename)
		defer s.Close()

		before := fileSize(filename)
		err := s.Append(map[string]any{"ch": make(chan int)})

		encodeErr := &EncodeError{}
		AssertTrue(errors.As(err, &encodeErr))
		AssertEqual(encodeErr.Serializer, "json")
		AssertEqual(fileSize(filename), before)

		stats, _ := s.Stats()
		AssertEqual(stats.Documents, int64(0))
		AssertEqual(stats.Bytes, int64(0))
	})
}

func TestAppend_InvalidRawJSON(t *testing.T) {
	Environment(t, func(filename string) {

		s, _ := Open(filename)
		defer s.Close()

		before := fileSize(filename)

		for _, raw := range []jsontext.Value{
			jsontext.Value(`{"a":1,"a":2}`),
			jsontext.Value("\"\xff\""),
		} {
			err := s.Append(raw)
			encodeErr := &EncodeError{}
			AssertTrue(errors.As(err, &encodeErr))
		}

		AssertEqual(fileSize(filename), before)

		stats, _ := s.Stats()
		AssertEqual(stats.Documents, int64(0))
	})
}

func TestAppend_WriteError(t *testing.T) {

	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full is not available")
	}

	s, err := Open("/dev/full", WithHeaderOffset(0))
	AssertNil(err)
	defer s.Close()

	err = s.Append(map[string]any{"hello": "world"})

	writeErr := &WriteError{}
	AssertTrue(errors.As(err, &writeErr))
	AssertEqual(writeErr.Path, "/dev/full")
}

func TestAppend_Framing(t *testing.T) {
	Environment(t, func(filename string) {

		Alternative("Framing", func(a *A) {

			a.Alternative("Newline", func(a *A) {
				s, _ := Open(filename, WithHeaderOffset(0), WithFraming(FramingNewline))
				defer s.Close()

				s.Append(map[string]any{"a": "multi\nline"})
				s.Append(map[string]any{"b": 2})

				content, _ := os.ReadFile(filename)
				AssertEqual(string(content), `{"a":"multi\nline"}`+"\n"+`{"b":2}`+"\n")
			})

			a.Alternative("Length", func(a *A) {
				s, _ := Open(filename, WithFraming(FramingLength))
				defer s.Close()

				s.Append("hello")

				content, _ := os.ReadFile(filename)
				record := content[DefaultHeaderOffset:]
				AssertEqual(len(record), 8+len(`"hello"`))
				AssertEqual(binary.LittleEndian.Uint32(record[0:]), uint32(len(`"hello"`)))
				AssertEqual(binary.LittleEndian.Uint32(record[4:]), crc32.Checksum([]byte(`"hello"`), crc32.MakeTable(crc32.Castagnoli)))
				AssertEqual(string(record[8:]), `"hello"`)
			})

			a.Alternative("Compressed CBOR", func(a *A) {
				serializer, _ := codec.New("cbor", "zstd")
				s, _ := Open(filename, WithSerializer(serializer), WithFraming(FramingLength))
				defer s.Close()

				expected, _ := serializer.Marshal(johnDoe)
				before := fileSize(filename)
				AssertNil(s.Append(johnDoe))
				AssertEqual(fileSize(filename), before+int64(8+len(expected)))
			})

			os.Remove(filename)
		})
	})
}

func TestReload_AfterExternalAppend(t *testing.T) {
	Environment(t, func(filename string) {

		s, _ := Open(filename)
		defer s.Close()
		s.Append("first")

		// Another writer appends to the same path
		other, _ := os.OpenFile(filename, os.O_WRONLY|os.O_APPEND, 0)
		other.Write([]byte("external"))
		other.Close()

		err := s.Reload()
		AssertNil(err)
		s.Append("second")

		content, _ := os.ReadFile(filename)
		AssertEqual(string(content[DefaultHeaderOffset:]), `"first"external"second"`)
	})
}

func TestReload_Rotation(t *testing.T) {
	Environment(t, func(filename string) {

		s, _ := Open(filename)
		defer s.Close()
		s.Append(1)

		rotated := filename + ".1"
		os.Rename(filename, rotated)

		// Reload requires the path to exist
		err := s.Reload()
		AssertTrue(errors.Is(err, fs.ErrNotExist))
		openErr := &OpenError{}
		AssertTrue(errors.As(err, &openErr))
		AssertEqual(openErr.Op, "reopen")

		// The previous handle is still the active one
		AssertNil(s.Append(2))
		content, _ := os.ReadFile(rotated)
		AssertEqual(string(content[DefaultHeaderOffset:]), `12`)

		// Somebody creates the new file, reload picks it up
		os.WriteFile(filename, nil, 0666)
		AssertNil(s.Reload())
		AssertNil(s.Append(3))

		content, _ = os.ReadFile(filename)
		AssertEqual(len(content), DefaultHeaderOffset+1)
		AssertEqual(string(content[DefaultHeaderOffset:]), `3`)

		content, _ = os.ReadFile(rotated)
		AssertEqual(string(content[DefaultHeaderOffset:]), `12`)
	})
}

func TestStats(t *testing.T) {
	Environment(t, func(filename string) {

		s, _ := Open(filename, WithFraming(FramingNewline))
		defer s.Close()

		s.Append(map[string]any{"hello": "world"})
		s.Append(map[string]any{"hello": "world"})

		stats, err := s.Stats()
		AssertNil(err)
		AssertEqual(stats.Path, filename)
		AssertEqual(stats.HeaderOffset, int64(DefaultHeaderOffset))
		AssertEqual(stats.Serializer, "json")
		AssertEqual(stats.Framing, FramingNewline)
		AssertEqual(stats.Documents, int64(2))
		AssertEqual(stats.Bytes, int64(2*len(`{"hello":"world"}`+"\n")))
		AssertEqual(stats.Size, int64(DefaultHeaderOffset)+stats.Bytes)
	})
}

func TestClose(t *testing.T) {
	Environment(t, func(filename string) {

		s, _ := Open(filename)
		AssertNil(s.Close())

		AssertEqual(s.Close(), ErrClosed)
		AssertEqual(s.Append("x"), ErrClosed)
		AssertEqual(s.Reload(), ErrClosed)
		AssertEqual(s.Sync(), ErrClosed)
		_, err := s.Stats()
		AssertEqual(err, ErrClosed)

		AssertEqual(fileSize(filename), int64(DefaultHeaderOffset))
	})
}

func TestParseFraming(t *testing.T) {

	f, err := ParseFraming("")
	AssertNil(err)
	AssertEqual(f, FramingNone)

	f, err = ParseFraming("length")
	AssertNil(err)
	AssertEqual(f.Overhead(), 8)

	_, err = ParseFraming("xml")
	AssertNotNil(err)
}
