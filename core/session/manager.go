// ABOUTME: Session manager keeps live feed list editing sessions in a TTL registry
// ABOUTME: Expired or deleted sessions have their detection worker stopped

package session

import (
	"time"

	"feedlist-api/core/errors"
	"feedlist-api/core/feedlist"
	"feedlist-api/core/interfaces"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DefaultTTL is how long an idle session is kept
const DefaultTTL = 2 * time.Hour

// Session is one user's feed list being edited
type Session struct {
	ID        string
	CreatedAt time.Time
	*feedlist.Service
}

// Config holds session registry settings
type Config struct {
	// TTL is the idle lifetime of a session; each access renews it
	TTL time.Duration

	// CleanupInterval is how often expired sessions are purged
	CleanupInterval time.Duration

	// Feedlist is applied to every new session
	Feedlist feedlist.Config
}

// Manager creates, finds and expires sessions
type Manager struct {
	sessions *cache.Cache
	resolver interfaces.TitleResolver
	logger   interfaces.Logger
	config   Config
}

// NewManager creates a session registry resolving titles with resolver
func NewManager(resolver interfaces.TitleResolver, logger interfaces.Logger, cfg Config) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = cfg.TTL / 4
	}

	m := &Manager{
		sessions: cache.New(cfg.TTL, cfg.CleanupInterval),
		resolver: resolver,
		logger:   logger,
		config:   cfg,
	}
	m.sessions.OnEvicted(m.evicted)
	return m
}

// Create starts a new session holding one empty entry
func (m *Manager) Create() *Session {
	s := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Service:   feedlist.NewService(m.resolver, m.logger, m.config.Feedlist),
	}
	m.sessions.Set(s.ID, s, cache.DefaultExpiration)

	if m.logger != nil {
		m.logger.Info("Session created", map[string]interface{}{"session_id": s.ID})
	}
	return s
}

// Get returns a live session and renews its TTL
func (m *Manager) Get(id string) (*Session, error) {
	value, found := m.sessions.Get(id)
	if !found {
		return nil, &errors.NotFoundError{Resource: "session", ID: id}
	}
	s := value.(*Session)
	if !m.renew(id, s) {
		return nil, &errors.NotFoundError{Resource: "session", ID: id}
	}
	return s, nil
}

// renew resets the TTL of a session that is still registered. It fails when the
// janitor evicted the session after it was looked up.
func (m *Manager) renew(id string, s *Session) bool {
	return m.sessions.Replace(id, s, cache.DefaultExpiration) == nil
}

// Delete ends a session
func (m *Manager) Delete(id string) error {
	if _, found := m.sessions.Get(id); !found {
		return &errors.NotFoundError{Resource: "session", ID: id}
	}
	m.sessions.Delete(id)
	return nil
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	return m.sessions.ItemCount()
}

// Close ends every session
func (m *Manager) Close() {
	for id := range m.sessions.Items() {
		m.sessions.Delete(id)
	}
}

func (m *Manager) evicted(id string, value interface{}) {
	if s, ok := value.(*Session); ok {
		s.Close()
	}
	if m.logger != nil {
		m.logger.Info("Session ended", map[string]interface{}{"session_id": id})
	}
}
