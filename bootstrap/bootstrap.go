package bootstrap

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fulldump/box"

	"github.com/fulldump/docdb/api"
	"github.com/fulldump/docdb/codec"
	"github.com/fulldump/docdb/configuration"
	"github.com/fulldump/docdb/database"
	"github.com/fulldump/docdb/filestore"
	"github.com/fulldump/docdb/service"
)

var VERSION = "dev"

// NewDatabase builds the database described by the configuration. Codec,
// compression, framing and header offset are checked together, so a bad
// combination is reported here instead of on the first store.
func NewDatabase(c *configuration.Configuration) (*database.Database, error) {

	serializer, err := codec.New(c.Codec, c.Compression)
	if err != nil {
		return nil, err
	}

	framing, err := filestore.ParseFraming(c.Framing)
	if err != nil {
		return nil, err
	}

	err = filestore.Validate(
		filestore.WithHeaderOffset(c.HeaderOffset),
		filestore.WithSerializer(serializer),
		filestore.WithFraming(framing),
	)
	if err != nil {
		return nil, err
	}

	return database.NewDatabase(&database.Config{
		Dir:          c.Dir,
		HeaderOffset: c.HeaderOffset,
		NoHeader:     c.HeaderOffset == 0,
		Serializer:   serializer,
		Framing:      framing,
		SyncInterval: time.Duration(c.SyncMillis) * time.Millisecond,
	}), nil
}

// Bootstrap wires the database and the HTTP server. Invalid configuration and
// an unusable listen address terminate the process.
func Bootstrap(c *configuration.Configuration) (start func() error, stop func()) {

	db, err := NewDatabase(c)
	if err != nil {
		log.Println("ERROR:", err.Error())
		os.Exit(-1)
	}

	b := api.Build(service.NewService(db), VERSION, c.ApiKey, c.ApiSecret)
	if c.EnableCompression {
		b.WithInterceptors(api.Compression)
	}
	b.WithInterceptors(
		api.AccessLog(log.New(os.Stdout, "ACCESS: ", log.Lshortfile)),
		api.PrettyErrorInterceptor,
		api.RecoverFromPanic,
		api.InterceptorUnavailable(db),
	)

	s := &http.Server{
		Addr:    c.HttpAddr,
		Handler: box.Box2Http(b),
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		log.Println("ERROR:", err.Error())
		os.Exit(-1)
	}
	log.Println("listening on", c.HttpAddr)

	stop = func() {
		db.Stop()
		s.Shutdown(context.Background())
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		for {
			sig := <-signalChan
			fmt.Println("Signal received", sig.String())
			stop()
		}
	}()

	start = func() error {

		var dbErr error

		wg := &sync.WaitGroup{}

		wg.Add(1)
		go func() {
			defer wg.Done()
			dbErr = db.Start()
			if dbErr != nil {
				log.Println("ERROR:", dbErr.Error())
				stop()
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Serve(ln)
			if err != nil && err != http.ErrServerClosed {
				log.Println("ERROR:", err.Error())
			}
		}()

		wg.Wait()

		return dbErr
	}

	return
}
