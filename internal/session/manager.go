package session

import (
	"context"
	"sync"
	"time"

	"attritionlens/domain/core"
	"attritionlens/internal"
	apperrors "attritionlens/internal/errors"
	"attritionlens/internal/filter"
)

// Session holds one viewer's filter selections. Criteria are owned by the
// session; callers always receive a copy.
type Session struct {
	ID        core.SessionID  `json:"id"`
	Criteria  filter.Criteria `json:"criteria"`
	CreatedAt core.Timestamp  `json:"created_at"`
	LastSeen  core.Timestamp  `json:"last_seen"`
	ExpiresAt core.Timestamp  `json:"expires_at"`
}

func (s *Session) snapshot() Session {
	out := *s
	out.Criteria = s.Criteria.Clone()
	return out
}

// Manager keeps sessions in memory. Every access slides the expiry forward
// by the TTL; expired sessions behave as if they never existed.
type Manager struct {
	mu       sync.Mutex
	sessions map[core.SessionID]*Session
	ttl      time.Duration
	now      func() time.Time
	logger   *internal.Logger
}

// NewManager creates a manager whose sessions expire after ttl of inactivity.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[core.SessionID]*Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   internal.DefaultLogger.With("Session"),
	}
}

// Create starts a session with the given default criteria.
func (m *Manager) Create(defaults filter.Criteria) Session {
	now := core.NewTimestamp(m.now())
	s := &Session{
		ID:        core.NewSessionID(),
		Criteria:  defaults.Clone(),
		CreatedAt: now,
		LastSeen:  now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Debug("created session %s", s.ID)
	return s.snapshot()
}

// Get returns the session and refreshes its expiry.
func (m *Manager) Get(id core.SessionID) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookupLocked(id)
	if err != nil {
		return Session{}, err
	}
	return s.snapshot(), nil
}

// Update replaces the criteria of a session after validating them.
func (m *Manager) Update(id core.SessionID, c filter.Criteria) (Session, error) {
	if err := c.Validate(); err != nil {
		return Session{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookupLocked(id)
	if err != nil {
		return Session{}, err
	}
	s.Criteria = c.Clone()
	return s.snapshot(), nil
}

// Reset restores a session to the given default criteria.
func (m *Manager) Reset(id core.SessionID, defaults filter.Criteria) (Session, error) {
	return m.Update(id, defaults)
}

// Delete drops a session. Unknown ids are ignored.
func (m *Manager) Delete(id core.SessionID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of live (possibly not yet swept) sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (m *Manager) Sweep() int {
	now := core.NewTimestamp(m.now())

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Debug("sweeper stopped")
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.logger.Info("expired %d sessions (%d live)", n, m.Len())
			}
		}
	}
}

func (m *Manager) lookupLocked(id core.SessionID) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, apperrors.NotFound("session " + id.String())
	}
	now := core.NewTimestamp(m.now())
	if !now.Before(s.ExpiresAt) {
		delete(m.sessions, id)
		return nil, apperrors.NotFound("session " + id.String())
	}
	s.LastSeen = now
	s.ExpiresAt = now.Add(m.ttl)
	return s, nil
}
