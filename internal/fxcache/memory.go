package fxcache

import (
	"sync"
	"time"

	"github.com/quantatomai/normalize/internal/domain"
)

type memoryEntry struct {
	table     *domain.FXTable
	expiresAt time.Time
}

// MemoryStore is a mutex-guarded in-process cache. It is the only mutable
// shared state in the engine; reads take the lock briefly and never block
// on I/O.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// GetFresh returns the table for key if it has not expired.
func (s *MemoryStore) GetFresh(key string) (*domain.FXTable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || s.now().After(e.expiresAt) {
		return nil, false
	}
	return e.table, true
}

// GetStale returns the table for key regardless of expiry.
func (s *MemoryStore) GetStale(key string) (*domain.FXTable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.table, true
}

// Put stores table under key with expiry now+ttl.
func (s *MemoryStore) Put(key string, table *domain.FXTable, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{table: table, expiresAt: s.now().Add(ttl)}
	return nil
}

// DeleteExpired drops expired entries and returns how many were removed.
func (s *MemoryStore) DeleteExpired() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	now := s.now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed, nil
}
