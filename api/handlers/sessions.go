// ABOUTME: Session lifecycle endpoints for feed list editing
// ABOUTME: Creates, inspects and ends server-side feed list sessions

package handlers

import (
	"context"
	"net/http"

	"feedlist-api/api/dto/mappers"
	"feedlist-api/api/dto/responses"
	"feedlist-api/core/session"
	"github.com/danielgtaylor/huma/v2"
)

// SessionStore is the subset of the session manager the handlers need
type SessionStore interface {
	Create() *session.Session
	Get(id string) (*session.Session, error)
	Delete(id string) error
}

var _ SessionStore = (*session.Manager)(nil)

// SessionHandler handles session lifecycle requests
type SessionHandler struct {
	sessions SessionStore
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions SessionStore) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// RegisterRoutes registers session routes
func (h *SessionHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "createSession",
		Method:        http.MethodPost,
		Path:          "/sessions",
		Summary:       "Create a session",
		Description:   "Starts a new feed list holding a single empty entry",
		Tags:          []string{"Sessions"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateSession)

	huma.Register(api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/sessions/{sessionID}",
		Summary:     "Get a session",
		Description: "Returns the feed list and the state of its detection queue",
		Tags:        []string{"Sessions"},
	}, h.GetSession)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteSession",
		Method:        http.MethodDelete,
		Path:          "/sessions/{sessionID}",
		Summary:       "End a session",
		Tags:          []string{"Sessions"},
		DefaultStatus: http.StatusNoContent,
	}, h.DeleteSession)
}

// SessionPathInput identifies a session
type SessionPathInput struct {
	SessionID string `path:"sessionID" doc:"Session identifier"`
}

// SessionOutput wraps a session snapshot
type SessionOutput struct {
	Body responses.SessionResponse
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(ctx context.Context, input *struct{}) (*SessionOutput, error) {
	return sessionOutput(h.sessions.Create()), nil
}

// GetSession handles GET /sessions/{sessionID}
func (h *SessionHandler) GetSession(ctx context.Context, input *SessionPathInput) (*SessionOutput, error) {
	s, err := h.sessions.Get(input.SessionID)
	if err != nil {
		return nil, toHumaError(err)
	}
	return sessionOutput(s), nil
}

// DeleteSession handles DELETE /sessions/{sessionID}
func (h *SessionHandler) DeleteSession(ctx context.Context, input *SessionPathInput) (*struct{}, error) {
	if err := h.sessions.Delete(input.SessionID); err != nil {
		return nil, toHumaError(err)
	}
	return nil, nil
}

func sessionOutput(s *session.Session) *SessionOutput {
	return &SessionOutput{Body: mappers.ToSessionResponse(mappers.SessionSnapshot{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt,
		Entries:    s.Entries(),
		Pending:    s.Pending(),
		Processing: s.Processing(),
	})}
}
