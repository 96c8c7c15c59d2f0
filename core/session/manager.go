package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Manager owns session lifecycle policy: TTL, touch throttling, and
// when store writes actually happen. Transports call it; handlers work
// with Session values.
type Manager[Data any] struct {
	store         Store[Data]
	ttl           time.Duration
	touchInterval time.Duration
}

// NewManager creates a session manager over the given store. Defaults:
// 24h TTL, 5m touch interval.
func NewManager[Data any](store Store[Data], opts ...Option) *Manager[Data] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Manager[Data]{
		store:         store,
		ttl:           cfg.TTL,
		touchInterval: cfg.TouchInterval,
	}
}

// New creates an anonymous session with the manager's TTL. Nothing is
// persisted until Save runs; fresh sessions are born modified, so the
// first save after request handling writes them.
func (m *Manager[Data]) New(params NewSessionParams) (Session[Data], error) {
	return New[Data](params, m.ttl)
}

// GetByID retrieves a session by its stable ID, rejecting expired ones.
func (m *Manager[Data]) GetByID(ctx context.Context, id uuid.UUID) (Session[Data], error) {
	sess, err := m.store.GetByID(ctx, id)
	if err != nil {
		return Session[Data]{}, err
	}

	if sess.IsExpired() {
		return Session[Data]{}, ErrExpired
	}

	return *sess, nil
}

// GetByToken retrieves a session by its client-held token, rejecting
// expired ones.
func (m *Manager[Data]) GetByToken(ctx context.Context, token string) (Session[Data], error) {
	sess, err := m.store.GetByToken(ctx, token)
	if err != nil {
		return Session[Data]{}, err
	}

	if sess.IsExpired() {
		return Session[Data]{}, ErrExpired
	}

	return *sess, nil
}

// Save slides the expiration window (throttled by the touch interval)
// and persists the session if it carries changes. The passed session is
// updated in place so callers see the new expiry.
func (m *Manager[Data]) Save(ctx context.Context, sess *Session[Data]) error {
	sess.Touch(m.ttl, m.touchInterval)

	if !sess.IsModified() {
		return nil
	}

	if err := m.store.Save(ctx, sess); err != nil {
		return errors.Join(ErrSaveSession, err)
	}
	sess.isModified = false
	return nil
}

// Delete removes a session from the store. A session that is already
// gone is not an error.
func (m *Manager[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}

// CleanupExpired removes expired sessions and reports how many went
// away. Run it periodically to keep the session table bounded.
func (m *Manager[Data]) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

// TTL returns the configured session time-to-live.
func (m *Manager[Data]) TTL() time.Duration {
	return m.ttl
}
