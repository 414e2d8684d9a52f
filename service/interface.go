package service

import (
	"github.com/fulldump/docdb/database"
)

var (
	ErrorStoreNotFound      = database.ErrStoreNotFound
	ErrorStoreAlreadyExists = database.ErrStoreAlreadyExists
	ErrorInvalidName        = database.ErrInvalidName
)

type Servicer interface {
	CreateStore(name string) (*database.Store, error)
	GetStore(name string) (*database.Store, error)
	GetOrCreateStore(name string) (*database.Store, error)
	ListStores() []*database.Store
	DropStore(name string) error
}
