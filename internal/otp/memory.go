package otp

import (
	"context"
	"sync"
)

// MemoryStore is the process-local Store used when no shared cache is
// configured and in tests. Entries never expire on their own; the ledger
// reaps them lazily on verification attempts, so an unverified code lingers
// until process restart. That leak is bounded by the number of distinct
// emails and accepted.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Put(ctx context.Context, email string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = e
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, email string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[email]
	return e, ok, nil
}

func (s *MemoryStore) Delete(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}

var _ Store = (*MemoryStore)(nil)
