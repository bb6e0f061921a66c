package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sketchpad/sketchpad/internal/auth"
	"github.com/sketchpad/sketchpad/internal/document"
	"github.com/sketchpad/sketchpad/internal/store"
	"github.com/sketchpad/sketchpad/internal/typeid"
)

// Manager owns every live session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	store    store.Store
	tokens   *auth.Service
	idle     time.Duration
	logger   *slog.Logger
}

// NewManager returns a manager whose sessions save to st. Sessions with no
// clients are closed once idle for longer than idle.
func NewManager(st store.Store, tokens *auth.Service, idle time.Duration, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		store:    st,
		tokens:   tokens,
		idle:     idle,
		logger:   logger,
	}
}

// Create starts a session, optionally seeded with a drawing, and returns
// its ID and an access token.
func (m *Manager) Create(seed *document.Document) (string, string, error) {
	s := newSession(typeid.NewSessionID(), m.store, m.logger)
	if seed != nil {
		shapes, err := seed.Build()
		if err != nil {
			return "", "", fmt.Errorf("seed session: %w", err)
		}
		s.editor.Append(shapes...)
	}

	token, err := m.tokens.IssueToken(s.ID)
	if err != nil {
		return "", "", err
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	s.start()

	m.logger.Info("session created", "session", s.ID, "shapes", s.editor.Canvas().Len())
	return s.ID, token, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.Close()
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep closes sessions that have had no clients and no messages for
// longer than the idle timeout. It returns how many it closed.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		if s.Clients() == 0 && now.Sub(s.LastActive()) > m.idle {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	if len(stale) > 0 {
		m.logger.Info("idle sessions closed", "count", len(stale))
	}
	return len(stale)
}

// Run sweeps idle sessions until ctx ends, then closes every session.
func (m *Manager) Run(ctx context.Context) {
	interval := min(max(m.idle/4, time.Second), time.Minute)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			m.Sweep(now)
		case <-ctx.Done():
			m.Stop()
			return
		}
	}
}

// Stop closes every session.
func (m *Manager) Stop() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
