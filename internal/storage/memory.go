package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps collections in process memory. Used for guest sessions
// and as the default store in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]Record
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]Record{}}
}

// Load returns a copy of the collection stored under key.
func (s *MemoryStore) Load(ctx context.Context, key string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRecords(s.data[key]), nil
}

// Save replaces the collection stored under key.
func (s *MemoryStore) Save(ctx context.Context, key string, records []Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copyRecords(records)
	return nil
}

func copyRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, record := range records {
		dup := make(Record, len(record))
		copy(dup, record)
		out[i] = dup
	}
	return out
}
