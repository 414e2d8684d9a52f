package database

import (
	"sync"

	"github.com/fulldump/docdb/filestore"
)

// Store gives shared, serialized access to a single FileStore
type Store struct {
	Name  string
	mutex sync.Mutex
	file  *filestore.FileStore
}

type AppendResult struct {
	Documents int   `json:"documents"`
	Bytes     int64 `json:"bytes"`
}

// Append writes docs in order while holding the store, so documents from
// concurrent callers never interleave. On error, the result tells how many
// documents were written before it.
func (s *Store) Append(docs ...any) (*AppendResult, error) {

	s.mutex.Lock()
	defer s.mutex.Unlock()

	before, err := s.file.Stats()
	if err != nil {
		return nil, err
	}

	result := &AppendResult{}
	for _, doc := range docs {
		err = s.file.Append(doc)
		if err != nil {
			break
		}
		result.Documents++
	}

	after, statsErr := s.file.Stats()
	if statsErr == nil {
		result.Bytes = after.Bytes - before.Bytes
	}

	return result, err
}

func (s *Store) Reload() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.file.Reload()
}

func (s *Store) Sync() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.file.Sync()
}

func (s *Store) Stats() (*filestore.Stats, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.file.Stats()
}

func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.file.Close()
}
