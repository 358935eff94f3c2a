// Package session implements server-side session identity: each logged-in
// browser holds a signed cookie whose subject is a session id, and the
// session id maps to a user id in a server-side store with TTL.
package session

import (
	"context"
	"sync"
	"time"
)

// Store persists session-id to user-id mappings with a TTL.
type Store interface {
	Create(ctx context.Context, sid string, userID uint, ttl time.Duration) error
	Get(ctx context.Context, sid string) (uint, bool, error)
	Destroy(ctx context.Context, sid string) error
}

// MemoryStore keeps sessions in process memory. It is the fallback when
// Redis is not configured and the default in tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

type memorySession struct {
	userID    uint
	expiresAt time.Time
}

// NewMemoryStore returns an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memorySession)}
}

// Create records the session.
func (s *MemoryStore) Create(_ context.Context, sid string, userID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = memorySession{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Get resolves the session id; expired sessions are dropped on access.
func (s *MemoryStore) Get(_ context.Context, sid string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sid]
	if !ok {
		return 0, false, nil
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, sid)
		return 0, false, nil
	}
	return sess.userID, true, nil
}

// Destroy removes the session.
func (s *MemoryStore) Destroy(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
