package detection

import (
	"context"
	"sync"

	"feedlist-api/core/domain"
)

// memoryStore is a minimal EntryStore for queue tests
type memoryStore struct {
	mu      sync.Mutex
	entries []domain.FeedEntry
}

func newMemoryStore(entries ...domain.FeedEntry) *memoryStore {
	return &memoryStore{entries: entries}
}

func (s *memoryStore) Get(id string) (domain.FeedEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.FeedEntry{}, false
}

func (s *memoryStore) Patch(id string, fn func(entry *domain.FeedEntry) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			fn(&s.entries[i])
			return true
		}
	}
	return false
}

func (s *memoryStore) set(entry domain.FeedEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == entry.ID {
			s.entries[i] = entry
			return
		}
	}
	s.entries = append(s.entries, entry)
}

func (s *memoryStore) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}

// mockResolver is a mock implementation of the TitleResolver interface
type mockResolver struct {
	mu          sync.Mutex
	resolveFunc func(ctx context.Context, url string) domain.TitleResult
	calls       []string
}

func (m *mockResolver) Resolve(ctx context.Context, url string) domain.TitleResult {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	fn := m.resolveFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, url)
	}
	return domain.TitleResult{Title: "Resolved " + url, Source: domain.ResolvedFromFeed}
}

func (m *mockResolver) called() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// blockingResolver holds every resolution until released
type blockingResolver struct {
	started chan string
	release chan domain.TitleResult
}

func newBlockingResolver() *blockingResolver {
	return &blockingResolver{
		started: make(chan string, 10),
		release: make(chan domain.TitleResult),
	}
}

func (b *blockingResolver) Resolve(ctx context.Context, url string) domain.TitleResult {
	b.started <- url
	select {
	case result := <-b.release:
		return result
	case <-ctx.Done():
		return domain.TitleResult{Error: ctx.Err().Error(), Fallback: true}
	}
}
