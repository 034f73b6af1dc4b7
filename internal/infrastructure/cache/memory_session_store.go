package cache

import (
	"context"
	"sync"
	"time"

	appdoc "github.com/gestion/backend/internal/application/document"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InMemorySessionStore keeps editing sessions in process memory.
// Suitable for single-instance deployments and tests; sessions are lost on
// restart and not shared across instances.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[uuid.UUID]memoryEntry
}

type memoryEntry struct {
	session   *appdoc.EditingSession
	expiresAt time.Time
}

// NewInMemorySessionStore creates a new in-memory session store
func NewInMemorySessionStore(ttl time.Duration) *InMemorySessionStore {
	return &InMemorySessionStore{
		ttl:      ttl,
		sessions: make(map[uuid.UUID]memoryEntry),
	}
}

// Get returns the session by ID, scoped to the tenant
func (s *InMemorySessionStore) Get(ctx context.Context, tenantID, sessionID uuid.UUID) (*appdoc.EditingSession, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) || entry.session.TenantID != tenantID {
		return nil, shared.ErrSessionNotFound
	}

	clone := *entry.session
	return &clone, nil
}

// Put stores the session, refreshing its expiration
func (s *InMemorySessionStore) Put(ctx context.Context, session *appdoc.EditingSession) error {
	clone := *session
	s.mu.Lock()
	s.sessions[session.ID] = memoryEntry{
		session:   &clone,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return nil
}

// Delete removes the session
func (s *InMemorySessionStore) Delete(ctx context.Context, tenantID, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if ok && entry.session.TenantID == tenantID {
		delete(s.sessions, sessionID)
	}
	return nil
}

// Sweep removes expired sessions. Call periodically from a background goroutine.
func (s *InMemorySessionStore) Sweep() int {
	now := time.Now()
	removed := 0

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

var _ appdoc.SessionStore = (*InMemorySessionStore)(nil)
