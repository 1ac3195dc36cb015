package memory

import (
	"context"
	"sync"

	"crediario/internal/kv"
)

// Store is a process-local kv.Store. Contents are lost on restart, so it
// backs tests and the default development mode.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]kv.Record
}

func NewStore() *Store {
	return &Store{collections: make(map[string][]kv.Record)}
}

func (s *Store) Get(ctx context.Context, collection string) ([]kv.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneRecords(s.collections[collection]), nil
}

func (s *Store) Put(ctx context.Context, collection string, records []kv.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections[collection] = cloneRecords(records)
	return nil
}

func cloneRecords(records []kv.Record) []kv.Record {
	if records == nil {
		return nil
	}
	out := make([]kv.Record, len(records))
	for i, r := range records {
		out[i] = append(kv.Record(nil), r...)
	}
	return out
}
