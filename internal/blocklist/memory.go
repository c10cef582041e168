package blocklist

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local Store used by tests and by local runs
// without a Redis instance. Entries expire lazily on lookup.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]time.Time)}
}

func (s *MemoryStore) Add(_ context.Context, jti string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[jti] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryStore) Contains(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline, ok := s.entries[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(s.entries, jti)
		return false, nil
	}
	return true, nil
}
