package filestore

import (
	"fmt"
	"path"
	"testing"
	"time"
)

func Environment(t *testing.T, f func(filename string)) {
	filename := path.Join(t.TempDir(), fmt.Sprintf("store-%v", time.Now().UnixNano()))

	f(filename)
}
