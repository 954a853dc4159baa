// Package memory provides an in-memory storage.Store used by tests
// and by the demo mode that needs no database at all.
package memory

import (
	"context"
	"sync"

	"github.com/harshitha-dev/event-booking-portal/internal/storage"
)

type store struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// New returns an empty in-memory store.
func New() storage.Store {
	return &store{items: make(map[string][]byte)}
}

func (s *store) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}

	// Copy so callers cannot mutate the stored blob.
	out := make([]byte, len(value))
	copy(out, value)

	return out, nil
}

func (s *store) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.items[key] = stored

	return nil
}

func (s *store) Close() error {
	return nil
}
