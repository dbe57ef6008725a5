package session

import (
	"context"
	"sync"

	"github.com/tripwise/tripwise/internal/domain"
)

// MemoryStore keeps sessions in an in-process map. State is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*domain.Session)}
}

// GetOrCreate implements Store.
func (s *MemoryStore) GetOrCreate(ctx context.Context, key string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[key]; ok {
		return sess.Clone(), nil
	}
	sess := newSession(key)
	s.sessions[key] = sess.Clone()
	return sess, nil
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, key string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[key]
	if !ok {
		return nil, ErrNotFound
	}
	return sess.Clone(), nil
}

// Update implements Store.
func (s *MemoryStore) Update(ctx context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.Key] = sess.Clone()
	return nil
}

// Reset implements Store.
func (s *MemoryStore) Reset(ctx context.Context, key string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := newSession(key)
	s.sessions[key] = sess.Clone()
	return sess, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	return nil
}
