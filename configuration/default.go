package configuration

import (
	"github.com/fulldump/docdb/filestore"
)

func Default() *Configuration {
	return &Configuration{
		HttpAddr:     "127.0.0.1:8080",
		Dir:          "data",
		HeaderOffset: filestore.DefaultHeaderOffset,
		Codec:        "json",
		Compression:  "none",
		Framing:      string(filestore.FramingNone),
		SyncMillis:   1000,
		ShowBanner:   true,
	}
}
