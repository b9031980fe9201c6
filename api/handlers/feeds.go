// ABOUTME: Feed list editing endpoints within a session
// ABOUTME: Applies user edits and queues title detection for entries

package handlers

import (
	"context"
	"net/http"

	"feedlist-api/api/dto/mappers"
	"feedlist-api/api/dto/requests"
	"feedlist-api/api/dto/responses"
	"feedlist-api/core/feedlist"
	"github.com/danielgtaylor/huma/v2"
)

// FeedsHandler handles edits to a session's feed list
type FeedsHandler struct {
	sessions SessionStore
}

// NewFeedsHandler creates a new feeds handler
func NewFeedsHandler(sessions SessionStore) *FeedsHandler {
	return &FeedsHandler{sessions: sessions}
}

// RegisterRoutes registers feed list routes
func (h *FeedsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "addFeed",
		Method:        http.MethodPost,
		Path:          "/sessions/{sessionID}/feeds",
		Summary:       "Add an empty feed row",
		Tags:          []string{"Feeds"},
		DefaultStatus: http.StatusCreated,
	}, h.AddFeed)

	huma.Register(api, huma.Operation{
		OperationID: "updateFeed",
		Method:      http.MethodPatch,
		Path:        "/sessions/{sessionID}/feeds/{feedID}",
		Summary:     "Edit a feed",
		Description: "Editing the title marks it as user-provided. Editing the URL clears a title that was not user-provided.",
		Tags:        []string{"Feeds"},
	}, h.UpdateFeed)

	huma.Register(api, huma.Operation{
		OperationID: "removeFeed",
		Method:      http.MethodDelete,
		Path:        "/sessions/{sessionID}/feeds/{feedID}",
		Summary:     "Remove a feed",
		Description: "Removes the entry and its pending detections. The last remaining entry is cleared instead of removed.",
		Tags:        []string{"Feeds"},
	}, h.RemoveFeed)

	huma.Register(api, huma.Operation{
		OperationID: "detectFeedTitle",
		Method:      http.MethodPost,
		Path:        "/sessions/{sessionID}/feeds/{feedID}/detect",
		Summary:     "Request title detection",
		Description: "Queues detection when the URL changed or the entry has no title yet",
		Tags:        []string{"Feeds"},
	}, h.DetectFeed)

	huma.Register(api, huma.Operation{
		OperationID: "clearFeeds",
		Method:      http.MethodPost,
		Path:        "/sessions/{sessionID}/clear",
		Summary:     "Clear the feed list",
		Description: "Resets the list to a single empty entry and drops pending detections",
		Tags:        []string{"Feeds"},
	}, h.ClearFeeds)

	huma.Register(api, huma.Operation{
		OperationID: "detectAllTitles",
		Method:      http.MethodPost,
		Path:        "/sessions/{sessionID}/detect-all",
		Summary:     "Detect all missing titles",
		Description: "Queues every entry with a URL whose title is empty or a domain placeholder",
		Tags:        []string{"Feeds"},
	}, h.DetectAll)
}

// FeedPathInput identifies an entry within a session
type FeedPathInput struct {
	SessionID string `path:"sessionID" doc:"Session identifier"`
	FeedID    string `path:"feedID" doc:"Entry identifier"`
}

// UpdateFeedInput defines the input for editing an entry
type UpdateFeedInput struct {
	SessionID string `path:"sessionID" doc:"Session identifier"`
	FeedID    string `path:"feedID" doc:"Entry identifier"`
	Body      requests.UpdateFeedRequest
}

// DetectFeedInput defines the input for blur-triggered detection
type DetectFeedInput struct {
	SessionID string `path:"sessionID" doc:"Session identifier"`
	FeedID    string `path:"feedID" doc:"Entry identifier"`
	URL       string `query:"url" doc:"URL currently typed in the field. Defaults to the stored URL; a different value is saved as the entry URL."`
}

// FeedEntryOutput wraps a single entry
type FeedEntryOutput struct {
	Body responses.FeedEntryResponse
}

// DetectFeedOutput reports whether detection was queued
type DetectFeedOutput struct {
	Body responses.DetectResponse
}

// DetectAllOutput reports how many entries were queued
type DetectAllOutput struct {
	Body responses.DetectAllResponse
}

// AddFeed handles POST /sessions/{sessionID}/feeds
func (h *FeedsHandler) AddFeed(ctx context.Context, input *SessionPathInput) (*FeedEntryOutput, error) {
	s, err := h.sessions.Get(input.SessionID)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &FeedEntryOutput{Body: mappers.ToFeedEntryResponse(s.AddFeed())}, nil
}

// UpdateFeed handles PATCH /sessions/{sessionID}/feeds/{feedID}
func (h *FeedsHandler) UpdateFeed(ctx context.Context, input *UpdateFeedInput) (*FeedEntryOutput, error) {
	if !input.Body.HasChanges() {
		return nil, huma.Error400BadRequest("Provide a url or title to update")
	}

	s, err := h.sessions.Get(input.SessionID)
	if err != nil {
		return nil, toHumaError(err)
	}

	entry, err := s.UpdateFeed(input.FeedID, feedlist.Edit{URL: input.Body.URL, Title: input.Body.Title})
	if err != nil {
		return nil, toHumaError(err)
	}
	return &FeedEntryOutput{Body: mappers.ToFeedEntryResponse(entry)}, nil
}

// RemoveFeed handles DELETE /sessions/{sessionID}/feeds/{feedID}
func (h *FeedsHandler) RemoveFeed(ctx context.Context, input *FeedPathInput) (*SessionOutput, error) {
	s, err := h.sessions.Get(input.SessionID)
	if err != nil {
		return nil, toHumaError(err)
	}
	if err := s.RemoveFeed(input.FeedID); err != nil {
		return nil, toHumaError(err)
	}
	return sessionOutput(s), nil
}

// DetectFeed handles POST /sessions/{sessionID}/feeds/{feedID}/detect
func (h *FeedsHandler) DetectFeed(ctx context.Context, input *DetectFeedInput) (*DetectFeedOutput, error) {
	s, err := h.sessions.Get(input.SessionID)
	if err != nil {
		return nil, toHumaError(err)
	}

	queued, err := s.RequestDetection(input.FeedID, input.URL)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &DetectFeedOutput{Body: responses.DetectResponse{Queued: queued}}, nil
}

// ClearFeeds handles POST /sessions/{sessionID}/clear
func (h *FeedsHandler) ClearFeeds(ctx context.Context, input *SessionPathInput) (*SessionOutput, error) {
	s, err := h.sessions.Get(input.SessionID)
	if err != nil {
		return nil, toHumaError(err)
	}
	s.ClearAll()
	return sessionOutput(s), nil
}

// DetectAll handles POST /sessions/{sessionID}/detect-all
func (h *FeedsHandler) DetectAll(ctx context.Context, input *SessionPathInput) (*DetectAllOutput, error) {
	s, err := h.sessions.Get(input.SessionID)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &DetectAllOutput{Body: mappers.ToDetectAllResponse(s.DetectAll())}, nil
}
