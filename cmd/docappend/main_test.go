package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path"
	"strings"
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/docdb/filestore"
)

func TestAppendAll(t *testing.T) {

	filename := path.Join(t.TempDir(), "people")
	s, err := filestore.Open(filename, filestore.WithFraming(filestore.FramingNewline))
	biff.AssertNil(err)
	defer s.Close()

	n, err := appendAll(s, strings.NewReader(`{"name": "John Doe"}
		{"name": "Jane Doe"}`))
	biff.AssertNil(err)
	biff.AssertEqual(n, 2)

	content, _ := os.ReadFile(filename)
	biff.AssertEqual(string(content[filestore.DefaultHeaderOffset:]), `{"name":"John Doe"}`+"\n"+`{"name":"Jane Doe"}`+"\n")
}

func TestAppendAll_Malformed(t *testing.T) {

	filename := path.Join(t.TempDir(), "people")
	s, _ := filestore.Open(filename, filestore.WithHeaderOffset(0))
	defer s.Close()

	n, err := appendAll(s, strings.NewReader(`{"ok":1} {"broken"`))
	biff.AssertNotNil(err)
	biff.AssertEqual(n, 1)

	content, _ := os.ReadFile(filename)
	biff.AssertEqual(string(content), `{"ok":1}`)
}

func TestOpenFailureExits(t *testing.T) {

	if os.Getenv("DOCAPPEND_RUN_MAIN") == "1" {
		os.Args = []string{"docappend", "-file", os.Getenv("DOCAPPEND_FILE")}
		main()
		return
	}

	filename := path.Join(t.TempDir(), "missing-dir", "people")

	cmd := exec.Command(os.Args[0], "-test.run=^TestOpenFailureExits$")
	cmd.Env = append(os.Environ(), "DOCAPPEND_RUN_MAIN=1", "DOCAPPEND_FILE="+filename)
	cmd.Stdin = strings.NewReader(`{"name":"John Doe"}`)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	err := cmd.Run()

	exitErr := &exec.ExitError{}
	biff.AssertTrue(errors.As(err, &exitErr))
	biff.AssertEqual(exitErr.ExitCode(), 1)
	biff.AssertTrue(strings.HasPrefix(stderr.String(), "ERROR: open store '"+filename+"': "))

	_, err = os.Stat(filename)
	biff.AssertTrue(os.IsNotExist(err))
}
