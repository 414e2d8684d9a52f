package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/fulldump/docdb/database"
)

type Service struct {
	db *database.Database
}

func NewService(db *database.Database) *Service {
	return &Service{
		db: db,
	}
}

// CreateStore creates a new store, a random name is used if name is empty
func (s *Service) CreateStore(name string) (*database.Store, error) {
	if name == "" {
		name = uuid.New().String()
	}
	return s.db.CreateStore(name)
}

func (s *Service) GetStore(name string) (*database.Store, error) {
	return s.db.GetStore(name)
}

func (s *Service) GetOrCreateStore(name string) (*database.Store, error) {

	store, err := s.db.GetStore(name)
	if errors.Is(err, ErrorStoreNotFound) {
		store, err = s.db.CreateStore(name)
		if errors.Is(err, ErrorStoreAlreadyExists) {
			// created by someone else in the meantime
			return s.db.GetStore(name)
		}
	}

	return store, err
}

func (s *Service) ListStores() []*database.Store {
	return s.db.ListStores()
}

func (s *Service) DropStore(name string) error {
	return s.db.DropStore(name)
}
