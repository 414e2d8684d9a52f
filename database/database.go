package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/btree"

	"github.com/fulldump/docdb/codec"
	"github.com/fulldump/docdb/filestore"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

var (
	ErrStoreNotFound      = errors.New("store not found")
	ErrStoreAlreadyExists = errors.New("store already exists")
	ErrInvalidName        = errors.New("invalid store name")
)

type Config struct {
	Dir          string
	HeaderOffset int64             // 0 means filestore.DefaultHeaderOffset
	NoHeader     bool              // store files start with documents, HeaderOffset is ignored
	Serializer   codec.Serializer  // defaults to codec.JSON
	Framing      filestore.Framing // defaults to filestore.FramingNone
	SyncInterval time.Duration     // 0 disables background sync
	Logger       *log.Logger
}

// Database is a directory of stores, one file per store.
type Database struct {
	config *Config
	logger *log.Logger
	status string
	stores *btree.BTreeG[*Store]
	mutex  sync.RWMutex
	exit   chan struct{}
	once   sync.Once
}

func NewDatabase(config *Config) *Database {

	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Database{
		config: config,
		logger: logger,
		status: StatusOpening,
		stores: btree.NewG(32, func(a, b *Store) bool {
			return a.Name < b.Name
		}),
		exit: make(chan struct{}),
	}
}

func (db *Database) GetStatus() string {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return db.status
}

func (db *Database) setStatus(status string) {
	db.mutex.Lock()
	db.status = status
	db.mutex.Unlock()
}

// ValidateName rejects names that would escape the data directory or hide
// the store file.
func ValidateName(name string) error {
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: '%s'", ErrInvalidName, name)
	}
	return nil
}

func (db *Database) storeOptions() []filestore.Option {
	options := []filestore.Option{}
	if db.config.NoHeader {
		options = append(options, filestore.WithHeaderOffset(0))
	} else if db.config.HeaderOffset != 0 {
		options = append(options, filestore.WithHeaderOffset(db.config.HeaderOffset))
	}
	if db.config.Serializer != nil {
		options = append(options, filestore.WithSerializer(db.config.Serializer))
	}
	if db.config.Framing != "" {
		options = append(options, filestore.WithFraming(db.config.Framing))
	}
	return options
}

func (db *Database) openStore(name string) (*Store, error) {

	file, err := filestore.Open(path.Join(db.config.Dir, name), db.storeOptions()...)
	if err != nil {
		return nil, err
	}

	return &Store{
		Name: name,
		file: file,
	}, nil
}

func (db *Database) CreateStore(name string) (*Store, error) {

	err := ValidateName(name)
	if err != nil {
		return nil, err
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, exists := db.stores.Get(&Store{Name: name}); exists {
		return nil, fmt.Errorf("%w: '%s'", ErrStoreAlreadyExists, name)
	}

	store, err := db.openStore(name)
	if err != nil {
		return nil, err
	}

	db.stores.ReplaceOrInsert(store)

	return store, nil
}

func (db *Database) GetStore(name string) (*Store, error) {

	db.mutex.RLock()
	defer db.mutex.RUnlock()

	store, exists := db.stores.Get(&Store{Name: name})
	if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrStoreNotFound, name)
	}

	return store, nil
}

// ListStores returns all stores ordered by name
func (db *Database) ListStores() []*Store {

	db.mutex.RLock()
	defer db.mutex.RUnlock()

	result := make([]*Store, 0, db.stores.Len())
	db.stores.Ascend(func(store *Store) bool {
		result = append(result, store)
		return true
	})

	return result
}

// DropStore closes the store and removes its file
func (db *Database) DropStore(name string) error {

	db.mutex.Lock()
	store, exists := db.stores.Delete(&Store{Name: name})
	db.mutex.Unlock()
	if !exists {
		return fmt.Errorf("%w: '%s'", ErrStoreNotFound, name)
	}

	err := store.Close()
	if err != nil && !errors.Is(err, filestore.ErrClosed) {
		return fmt.Errorf("close: %w", err)
	}

	err = os.Remove(store.file.Path())
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}

	return nil
}

// Load opens every store file found in the data directory
func (db *Database) Load() error {

	dir := db.config.Dir
	db.logger.Printf("Loading database %s...\n", dir)

	err := db.load(dir)
	if err != nil {
		db.setStatus(StatusClosing)
		return err
	}

	db.setStatus(StatusOperating)

	return nil
}

func (db *Database) load(dir string) error {

	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || ValidateName(name) != nil {
			continue
		}

		t0 := time.Now()
		store, err := db.openStore(name)
		if err != nil {
			return err
		}
		stats, err := store.Stats()
		if err != nil {
			return err
		}
		db.logger.Println(name, stats.Size, time.Since(t0))

		db.mutex.Lock()
		db.stores.ReplaceOrInsert(store)
		db.mutex.Unlock()
	}

	return nil
}

// Start loads the database and keeps syncing stores to disk until Stop
func (db *Database) Start() error {

	err := db.Load()
	if err != nil {
		return err
	}

	if db.config.SyncInterval <= 0 {
		<-db.exit
		return nil
	}

	ticker := time.NewTicker(db.config.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			db.SyncAll()
		case <-db.exit:
			return nil
		}
	}
}

// SyncAll fsyncs every store, errors are logged and the last one returned
func (db *Database) SyncAll() error {
	var lastErr error
	for _, store := range db.ListStores() {
		err := store.Sync()
		if err != nil && !errors.Is(err, filestore.ErrClosed) {
			db.logger.Printf("ERROR: sync(%s): %s\n", store.Name, err.Error())
			lastErr = err
		}
	}
	return lastErr
}

func (db *Database) Stop() error {

	var lastErr error

	db.once.Do(func() {
		defer close(db.exit)

		db.setStatus(StatusClosing)

		for _, store := range db.ListStores() {
			db.logger.Printf("Closing '%s'...\n", store.Name)
			err := store.Sync()
			if err == nil {
				err = store.Close()
			}
			if err != nil && !errors.Is(err, filestore.ErrClosed) {
				db.logger.Printf("ERROR: close(%s): %s\n", store.Name, err.Error())
				lastErr = err
			}
		}
	})

	return lastErr
}
