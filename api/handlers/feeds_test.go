package handlers

import (
	"net/http"
	"testing"

	"feedlist-api/api/dto/mappers"
	"feedlist-api/api/dto/responses"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedsHandler_RegisterRoutes(t *testing.T) {
	resolver := &mockResolver{}
	_, api := humatest.New(t)
	NewFeedsHandler(newTestSessions(t, resolver)).RegisterRoutes(api)

	paths := api.OpenAPI().Paths
	require.NotNil(t, paths["/sessions/{sessionID}/feeds"])
	assert.NotNil(t, paths["/sessions/{sessionID}/feeds"].Post)
	require.NotNil(t, paths["/sessions/{sessionID}/feeds/{feedID}"])
	assert.NotNil(t, paths["/sessions/{sessionID}/feeds/{feedID}"].Patch)
	assert.NotNil(t, paths["/sessions/{sessionID}/feeds/{feedID}"].Delete)
	assert.NotNil(t, paths["/sessions/{sessionID}/feeds/{feedID}/detect"])
	assert.NotNil(t, paths["/sessions/{sessionID}/clear"])
	assert.NotNil(t, paths["/sessions/{sessionID}/detect-all"])
}

func TestFeedsHandler_AddFeed(t *testing.T) {
	resolver := &mockResolver{}
	sessions := newTestSessions(t, resolver)
	api := newTestAPI(t, sessions, resolver)
	created := createSession(t, api)

	resp := api.Post("/sessions/" + created.ID + "/feeds")

	require.Equal(t, http.StatusCreated, resp.Code)
	entry := decode[responses.FeedEntryResponse](t, resp)
	assert.NotEmpty(t, entry.ID)
	assert.NotEqual(t, created.Feeds[0].ID, entry.ID)

	got := decode[responses.SessionResponse](t, api.Get("/sessions/"+created.ID))
	assert.Len(t, got.Feeds, 2)
}

func TestFeedsHandler_EditAndDetect(t *testing.T) {
	resolver := &mockResolver{}
	sessions := newTestSessions(t, resolver)
	api := newTestAPI(t, sessions, resolver)
	created := createSession(t, api)
	feedPath := "/sessions/" + created.ID + "/feeds/" + created.Feeds[0].ID

	resp := api.Patch(feedPath, map[string]any{"url": "a.test"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	entry := decode[responses.FeedEntryResponse](t, resp)
	assert.Equal(t, "a.test", entry.URL)
	assert.Empty(t, entry.Title)

	resp = api.Post(feedPath + "/detect")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, decode[responses.DetectResponse](t, resp).Queued)

	waitForTitle(t, sessions, created.ID, created.Feeds[0].ID, "Title of a.test")

	got := decode[responses.SessionResponse](t, api.Get("/sessions/"+created.ID))
	assert.Equal(t, "feed", got.Feeds[0].TitleSource)

	// unchanged URL with a title does not re-detect
	resp = api.Post(feedPath + "/detect")
	assert.False(t, decode[responses.DetectResponse](t, resp).Queued)
}

func TestFeedsHandler_DetectUsesTypedURL(t *testing.T) {
	resolver := &mockResolver{}
	sessions := newTestSessions(t, resolver)
	api := newTestAPI(t, sessions, resolver)
	created := createSession(t, api)
	feedPath := "/sessions/" + created.ID + "/feeds/" + created.Feeds[0].ID

	api.Patch(feedPath, map[string]any{"url": "b.test"})
	resp := api.Post(feedPath + "/detect?url=b.test")

	assert.True(t, decode[responses.DetectResponse](t, resp).Queued)
	waitForTitle(t, sessions, created.ID, created.Feeds[0].ID, "Title of b.test")
	assert.Equal(t, []string{"b.test"}, resolver.resolved())
}

func TestFeedsHandler_DetectSavesUnsavedTypedURL(t *testing.T) {
	resolver := &mockResolver{}
	sessions := newTestSessions(t, resolver)
	api := newTestAPI(t, sessions, resolver)
	created := createSession(t, api)
	feedPath := "/sessions/" + created.ID + "/feeds/" + created.Feeds[0].ID

	resp := api.Post(feedPath + "/detect?url=https://typed.test/rss")

	assert.True(t, decode[responses.DetectResponse](t, resp).Queued)
	waitForTitle(t, sessions, created.ID, created.Feeds[0].ID, "Title of https://typed.test/rss")
	assert.Equal(t, []string{"https://typed.test/rss"}, resolver.resolved())

	s, err := sessions.Get(created.ID)
	require.NoError(t, err)
	entry, err := s.Get(created.Feeds[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "https://typed.test/rss", entry.URL)
}

func TestFeedsHandler_UserTitle(t *testing.T) {
	resolver := &mockResolver{}
	sessions := newTestSessions(t, resolver)
	api := newTestAPI(t, sessions, resolver)
	created := createSession(t, api)
	feedPath := "/sessions/" + created.ID + "/feeds/" + created.Feeds[0].ID

	resp := api.Patch(feedPath, map[string]any{"url": "a.test", "title": "Mine"})
	require.Equal(t, http.StatusOK, resp.Code)
	entry := decode[responses.FeedEntryResponse](t, resp)
	assert.Equal(t, "Mine", entry.Title)
	assert.Equal(t, "user", entry.TitleSource)

	// a user title survives URL edits
	entry = decode[responses.FeedEntryResponse](t, api.Patch(feedPath, map[string]any{"url": "c.test"}))
	assert.Equal(t, "c.test", entry.URL)
	assert.Equal(t, "Mine", entry.Title)
}

func TestFeedsHandler_EmptyPatch(t *testing.T) {
	resolver := &mockResolver{}
	sessions := newTestSessions(t, resolver)
	api := newTestAPI(t, sessions, resolver)
	created := createSession(t, api)

	resp := api.Patch("/sessions/"+created.ID+"/feeds/"+created.Feeds[0].ID, map[string]any{})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestFeedsHandler_UnknownFeed(t *testing.T) {
	resolver := &mockResolver{}
	sessions := newTestSessions(t, resolver)
	api := newTestAPI(t, sessions, resolver)
	created := createSession(t, api)
	base := "/sessions/" + created.ID + "/feeds/missing"

	assert.Equal(t, http.StatusNotFound, api.Patch(base, map[string]any{"title": "x"}).Code)
	assert.Equal(t, http.StatusNotFound, api.Delete(base).Code)
	assert.Equal(t, http.StatusNotFound, api.Post(base+"/detect").Code)
}

func TestFeedsHandler_RemoveFeed(t *testing.T) {
	resolver := &mockResolver{}
	sessions := newTestSessions(t, resolver)
	api := newTestAPI(t, sessions, resolver)
	created := createSession(t, api)
	first := created.Feeds[0].ID
	second := decode[responses.FeedEntryResponse](t, api.Post("/sessions/"+created.ID+"/feeds")).ID

	resp := api.Delete("/sessions/" + created.ID + "/feeds/" + second)
	require.Equal(t, http.StatusOK, resp.Code)
	got := decode[responses.SessionResponse](t, resp)
	require.Len(t, got.Feeds, 1)
	assert.Equal(t, first, got.Feeds[0].ID)

	api.Patch("/sessions/"+created.ID+"/feeds/"+first, map[string]any{"url": "a.test", "title": "A"})

	// removing the last entry clears it instead
	got = decode[responses.SessionResponse](t, api.Delete("/sessions/"+created.ID+"/feeds/"+first))
	require.Len(t, got.Feeds, 1)
	assert.Equal(t, first, got.Feeds[0].ID)
	assert.Empty(t, got.Feeds[0].URL)
	assert.Empty(t, got.Feeds[0].Title)
}

func TestFeedsHandler_ClearFeeds(t *testing.T) {
	resolver := &mockResolver{}
	sessions := newTestSessions(t, resolver)
	api := newTestAPI(t, sessions, resolver)
	created := createSession(t, api)
	api.Post("/sessions/" + created.ID + "/feeds")
	api.Post("/sessions/" + created.ID + "/feeds")

	resp := api.Post("/sessions/" + created.ID + "/clear")

	require.Equal(t, http.StatusOK, resp.Code)
	got := decode[responses.SessionResponse](t, resp)
	require.Len(t, got.Feeds, 1)
	assert.Empty(t, got.Feeds[0].URL)
	assert.Equal(t, 0, got.Pending)
}

func TestFeedsHandler_DetectAll(t *testing.T) {
	resolver := &mockResolver{}
	sessions := newTestSessions(t, resolver)
	api := newTestAPI(t, sessions, resolver)
	created := createSession(t, api)
	detectAll := "/sessions/" + created.ID + "/detect-all"

	resp := api.Post(detectAll)
	require.Equal(t, http.StatusOK, resp.Code)
	body := decode[responses.DetectAllResponse](t, resp)
	assert.Equal(t, 0, body.Queued)
	assert.Equal(t, mappers.NothingToDetectMessage, body.Message)

	first := created.Feeds[0].ID
	second := decode[responses.FeedEntryResponse](t, api.Post("/sessions/"+created.ID+"/feeds")).ID
	third := decode[responses.FeedEntryResponse](t, api.Post("/sessions/"+created.ID+"/feeds")).ID
	api.Patch("/sessions/"+created.ID+"/feeds/"+first, map[string]any{"url": "a.test"})
	api.Patch("/sessions/"+created.ID+"/feeds/"+second, map[string]any{"url": "b.test"})
	api.Patch("/sessions/"+created.ID+"/feeds/"+third, map[string]any{"url": "c.test", "title": "Mine"})

	body = decode[responses.DetectAllResponse](t, api.Post(detectAll))
	assert.Equal(t, 2, body.Queued)
	assert.Empty(t, body.Message)

	waitForTitle(t, sessions, created.ID, first, "Title of a.test")
	waitForTitle(t, sessions, created.ID, second, "Title of b.test")
	waitForTitle(t, sessions, created.ID, third, "Mine")
	assert.Equal(t, []string{"a.test", "b.test"}, resolver.resolved())
}
