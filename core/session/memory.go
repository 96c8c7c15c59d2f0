package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store implementation. It backs tests and
// single-instance deployments that can afford to drop sessions on
// restart. Writes are last-write-wins: concurrent saves of the same
// session do not merge.
type MemoryStore[Data any] struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]Session[Data]
	byToken map[string]uuid.UUID
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore[Data any]() *MemoryStore[Data] {
	return &MemoryStore[Data]{
		byID:    make(map[uuid.UUID]Session[Data]),
		byToken: make(map[string]uuid.UUID),
	}
}

func (s *MemoryStore[Data]) GetByID(ctx context.Context, id uuid.UUID) (*Session[Data], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *MemoryStore[Data]) GetByToken(ctx context.Context, token string) (*Session[Data], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byToken[token]
	if !ok {
		return nil, ErrNotFound
	}

	sess, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *MemoryStore[Data]) Save(ctx context.Context, session *Session[Data]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Token rotation leaves a stale index entry behind; drop it.
	if prev, ok := s.byID[session.ID]; ok && prev.Token != session.Token {
		delete(s.byToken, prev.Token)
	}

	// Stored state is clean by definition; database-backed stores get
	// this for free because only exported fields round-trip.
	stored := *session
	stored.isModified = false

	s.byID[session.ID] = stored
	s.byToken[session.Token] = session.ID
	return nil
}

func (s *MemoryStore[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}

	delete(s.byToken, sess.Token)
	delete(s.byID, id)
	return nil
}

func (s *MemoryStore[Data]) DeleteExpired(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, sess := range s.byID {
		if sess.IsExpired() {
			delete(s.byToken, sess.Token)
			delete(s.byID, id)
			deleted++
		}
	}
	return deleted, nil
}
