package history

import (
	"context"
	"sync"
)

// MemStore is a thread-safe in-memory history store.
type MemStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemStore creates a new in-memory history store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Append(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

func (s *MemStore) Recent(_ context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]Entry, 0, n)
	for i := len(s.entries) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, s.entries[i])
	}
	return result, nil
}

func (s *MemStore) Close() error {
	return nil
}

var _ Store = (*MemStore)(nil)
