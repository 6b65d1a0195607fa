package session

import (
	"context"
	"sync"
	"time"

	"github.com/zhouzirui/gamehub/backend/internal/model/game"
)

// MemoryStore is the in-process Store. Sessions idle for longer than ttl are
// treated as gone and removed by SweepExpired.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates an empty store. A ttl <= 0 disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*game.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore) expired(s *game.Session, now time.Time) bool {
	return m.ttl > 0 && now.Sub(s.UpdatedAt) > m.ttl
}

// Create stores a new session and stamps its timestamps.
func (m *MemoryStore) Create(_ context.Context, s *game.Session) error {
	now := m.now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[s.Token]; ok && !m.expired(existing, now) {
		return ErrExists
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	m.sessions[s.Token] = s.Clone()
	return nil
}

// Get returns a copy of the session behind token.
func (m *MemoryStore) Get(_ context.Context, token string) (*game.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok || m.expired(s, m.now().UTC()) {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

// Put replaces an existing session and refreshes its idle timer.
func (m *MemoryStore) Put(_ context.Context, s *game.Session) error {
	now := m.now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.sessions[s.Token]
	if !ok || m.expired(existing, now) {
		return ErrNotFound
	}
	s.UpdatedAt = now
	m.sessions[s.Token] = s.Clone()
	return nil
}

// Delete removes the session behind token.
func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[token]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, token)
	return nil
}

// SweepExpired drops every session past its idle TTL.
func (m *MemoryStore) SweepExpired(_ context.Context) (int, error) {
	now := m.now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for token, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, token)
			removed++
		}
	}
	sessionsExpired.Add(float64(removed))
	return removed, nil
}

// Len counts stored sessions, expired ones included until swept.
func (m *MemoryStore) Len(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions), nil
}
