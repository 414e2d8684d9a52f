package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/fulldump/goconfig"
)

type Config struct {
	Test    string `usage:"name of the test: ALL | APPEND | FILE"`
	Base    string `usage:"base URL, an embedded server is started when empty"`
	N       int64  `usage:"number of documents"`
	Workers int    `usage:"number of workers"`
	Codec   string `usage:"document codec for the FILE test: json or cbor"`
	Framing string `usage:"document framing for the FILE test: none, newline or length"`
}

var cleanups []func()

func main() {

	defer func() {
		fmt.Println("Cleaning up...")
		for _, cleanup := range cleanups {
			cleanup()
		}
	}()

	c := Config{
		Test:    "append",
		Base:    "",
		N:       1_000_000,
		Workers: 16,
		Codec:   "json",
		Framing: "none",
	}
	goconfig.Read(&c)

	switch strings.ToUpper(c.Test) {
	case "ALL":
		TestAppend(c)
		TestFile(c)
	case "APPEND":
		TestAppend(c)
	case "FILE":
		TestFile(c)
	default:
		log.Fatalf("Unknown test %s", c.Test)
	}

}
