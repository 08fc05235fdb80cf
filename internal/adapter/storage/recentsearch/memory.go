// Package recentsearch persists the per-client recent-search log.
// Stores hold the raw array only; capacity, dedup and expiry live in the use case.
package recentsearch

import (
	"context"
	"sync"

	"github.com/flight-search/skysearch/internal/domain"
)

// Key returns the storage key for a client's log.
func Key(clientID string) string {
	return domain.RecentSearchStorageKey + ":" + clientID
}

// MemoryStore keeps logs in process memory. Contents are lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]domain.RecentSearch
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]domain.RecentSearch)}
}

// Load returns a copy of the client's entries.
func (s *MemoryStore) Load(_ context.Context, clientID string) ([]domain.RecentSearch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.data[Key(clientID)]), nil
}

// Save replaces the client's entries.
func (s *MemoryStore) Save(_ context.Context, clientID string, entries []domain.RecentSearch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[Key(clientID)] = clone(entries)
	return nil
}

// Delete removes the client's entries.
func (s *MemoryStore) Delete(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, Key(clientID))
	return nil
}

func clone(entries []domain.RecentSearch) []domain.RecentSearch {
	out := make([]domain.RecentSearch, len(entries))
	copy(out, entries)
	return out
}

var _ domain.RecentSearchStore = (*MemoryStore)(nil)
