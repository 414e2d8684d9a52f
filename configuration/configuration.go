package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	Dir               string `usage:"data directory"`
	HeaderOffset      int64  `usage:"bytes reserved at the start of every store file"`
	Codec             string `usage:"document codec: json or cbor"`
	Compression       string `usage:"document compression: none, zstd, lz4 or brotli"`
	Framing           string `usage:"document framing: none, newline or length"`
	SyncMillis        int    `usage:"fsync every store each N milliseconds, 0 disables it"`
	EnableCompression bool   `usage:"gzip HTTP responses"`
	ApiKey            string `usage:"require this X-Api-Key header"`
	ApiSecret         string `usage:"require this X-Api-Secret header"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
}
