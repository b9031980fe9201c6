package feedlist

import (
	"context"
	"sync"

	"feedlist-api/core/domain"
)

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
	return domain.TitleResult{Title: "Title of " + url, Source: domain.ResolvedFromFeed}
}

func (m *mockResolver) called() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
