package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"feedlist-api/api/dto/responses"
	"feedlist-api/core/domain"
	"feedlist-api/core/feedlist"
	"feedlist-api/core/session"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"
)

// mockResolver is a mock implementation of the title resolver
type mockResolver struct {
	mu          sync.Mutex
	resolveFunc func(ctx context.Context, url string) domain.TitleResult
	urls        []string
}

func (m *mockResolver) Resolve(ctx context.Context, url string) domain.TitleResult {
	m.mu.Lock()
	m.urls = append(m.urls, url)
	m.mu.Unlock()

	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, url)
	}
	return domain.TitleResult{Title: "Title of " + url, Source: domain.ResolvedFromFeed}
}

func (m *mockResolver) resolved() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urls...)
}

func newTestSessions(t *testing.T, resolver *mockResolver) *session.Manager {
	t.Helper()
	m := session.NewManager(resolver, nil, session.Config{
		TTL:      time.Minute,
		Feedlist: feedlist.Config{DetectAllInterval: 0},
	})
	t.Cleanup(m.Close)
	return m
}

func newTestAPI(t *testing.T, sessions *session.Manager, resolver *mockResolver) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewTitleHandler(resolver).RegisterRoutes(api)
	NewSessionHandler(sessions).RegisterRoutes(api)
	NewFeedsHandler(sessions).RegisterRoutes(api)
	NewTransferHandler(sessions).RegisterRoutes(api)
	return api
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out), resp.Body.String())
	return out
}

func createSession(t *testing.T, api humatest.TestAPI) responses.SessionResponse {
	t.Helper()
	resp := api.Post("/sessions")
	require.Equal(t, 201, resp.Code, resp.Body.String())
	return decode[responses.SessionResponse](t, resp)
}

func waitForTitle(t *testing.T, sessions *session.Manager, sessionID, feedID, want string) {
	t.Helper()
	require.Eventually(t, func() bool {
		s, err := sessions.Get(sessionID)
		if err != nil {
			return false
		}
		entry, err := s.Get(feedID)
		return err == nil && entry.Title == want && !entry.Loading
	}, 2*time.Second, 10*time.Millisecond)
}
