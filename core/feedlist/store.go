// ABOUTME: Store holds the feed list as an immutable snapshot behind a mutex
// ABOUTME: Every mutation is a reducer from the old list to a new list

package feedlist

import (
	"sync"

	"feedlist-api/core/domain"
)

// Store is the single source of truth for one session's feed list
type Store struct {
	mu      sync.RWMutex
	entries []domain.FeedEntry
}

// NewStore creates a store holding one empty entry
func NewStore() *Store {
	return &Store{entries: Reset()}
}

// Snapshot returns a copy of the current list
func (s *Store) Snapshot() []domain.FeedEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.entries)
}

// Get returns the entry with the given id
func (s *Store) Get(id string) (domain.FeedEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.entries, id)
	if i < 0 {
		return domain.FeedEntry{}, false
	}
	return s.entries[i], true
}

// Update replaces the list with fn(old) atomically and returns the new snapshot.
// fn receives a copy and may modify it freely.
func (s *Store) Update(fn func(old []domain.FeedEntry) []domain.FeedEntry) []domain.FeedEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(clone(s.entries))
	if len(next) == 0 {
		next = Reset()
	}
	s.entries = next
	return clone(next)
}

// Patch applies fn to a single entry atomically. It returns false if the entry is gone.
func (s *Store) Patch(id string, fn func(entry *domain.FeedEntry) bool) bool {
	found := false
	s.Update(func(old []domain.FeedEntry) []domain.FeedEntry {
		var next []domain.FeedEntry
		next, found = PatchEntry(old, id, fn)
		return next
	})
	return found
}

func clone(entries []domain.FeedEntry) []domain.FeedEntry {
	return append([]domain.FeedEntry(nil), entries...)
}
