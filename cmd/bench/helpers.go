package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/fulldump/docdb/bootstrap"
	"github.com/fulldump/docdb/configuration"
)

type JSON = map[string]any

func Parallel(workers int, f func()) {
	wg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}
	wg.Wait()
}

func TempDir() (string, func()) {
	dir, err := os.MkdirTemp("", "docdb_bench_*")
	if err != nil {
		panic("Could not create temp directory: " + err.Error())
	}

	cleanup := func() {
		os.RemoveAll(dir)
	}

	return dir, cleanup
}

// WaitReady polls the store list until the database is operating
func WaitReady(base string, timeout time.Duration) {

	deadline := time.Now().Add(timeout)
	for {
		resp, err := http.Get(base + "/v1/stores")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}

		if time.Now().After(deadline) {
			fmt.Println("ERROR: server not ready after", timeout)
			os.Exit(2)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func CreateStore(base string) string {

	name := "store-" + strconv.FormatInt(time.Now().UnixNano(), 10)

	payload, _ := json.Marshal(JSON{"name": name})

	req, _ := http.NewRequest("POST", base+"/v1/stores", bytes.NewReader(payload))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		panic("create store: " + resp.Status + " " + string(body))
	}

	io.Copy(os.Stdout, resp.Body)
	fmt.Println()

	return name
}

func CreateServer(c *Config) (start func() error, stop func()) {
	dir, cleanup := TempDir()
	cleanups = append(cleanups, cleanup)

	conf := configuration.Default()
	conf.Dir = dir
	c.Base = "http://" + conf.HttpAddr

	return bootstrap.Bootstrap(conf)
}

func Report(n int64, took time.Duration) {
	fmt.Println("sent:", n)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f docs/sec\n", float64(n)/took.Seconds())
}
