package session

import (
	"context"
	"sync"
)

// MemoryStore keeps sessions in a process-local map. Used when no Redis host
// is configured; sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (s *MemoryStore) Save(_ context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return Session{}, ErrNotFound
	}
	if sess.Expired() {
		// Lazy expiry; no background janitor.
		_ = s.Delete(context.Background(), id)
		return Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
