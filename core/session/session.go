package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session is a user session with application-defined data. The Data
// type parameter carries whatever the application keeps per visitor:
// CSRF token, flash messages, rate-limit buckets.
type Session[Data any] struct {
	// ID is the stable session identifier. It never changes across the
	// session's lifetime, even when the token rotates.
	ID uuid.UUID

	// Token is the secret the client holds (32 random bytes,
	// base64url). It rotates on privilege changes.
	Token string

	// UserID identifies the authenticated user; uuid.Nil for visitors.
	UserID uuid.UUID

	IP        string
	UserAgent string

	// Data holds application session state, serialized by the store.
	Data Data

	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt time.Time

	// isModified tracks whether the session needs saving.
	isModified bool
}

// NewSessionParams carries request-derived attributes for a fresh
// session.
type NewSessionParams struct {
	IP        string
	UserAgent string
}

// New creates an anonymous session with a generated ID and token. The
// session is marked modified so the next save persists it.
func New[Data any](params NewSessionParams, ttl time.Duration) (Session[Data], error) {
	if params.IP == "" {
		return Session[Data]{}, ErrMissingIP
	}

	token, err := generateToken()
	if err != nil {
		return Session[Data]{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session[Data]{
		ID:         uuid.New(),
		Token:      token,
		UserID:     uuid.Nil,
		IP:         params.IP,
		UserAgent:  params.UserAgent,
		Data:       *new(Data),
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
		UpdatedAt:  now,
		isModified: true,
	}, nil
}

// Authenticate binds the session to a user and rotates the token, so a
// pre-login token can never act as a logged-in one. The session ID is
// preserved.
func (s *Session[Data]) Authenticate(userID uuid.UUID, data ...Data) error {
	if err := s.rotateToken(); err != nil {
		return err
	}
	s.UserID = userID
	if len(data) > 0 {
		s.Data = data[0]
	}
	s.UpdatedAt = time.Now()
	s.isModified = true
	return nil
}

// Logout marks the session for deletion. The store row and the client
// cookie go away on the next save.
func (s *Session[Data]) Logout() {
	s.DeletedAt = time.Now()
	s.isModified = true
}

// SetData replaces the session's application data.
func (s *Session[Data]) SetData(data Data) {
	s.Data = data
	s.UpdatedAt = time.Now()
	s.isModified = true
}

// Touch slides the expiration window forward when at least
// touchInterval has passed since the last update. The interval keeps
// busy clients from writing the store on every request.
func (s *Session[Data]) Touch(ttl, touchInterval time.Duration) {
	if time.Since(s.UpdatedAt) >= touchInterval {
		s.ExpiresAt = time.Now().Add(ttl)
		s.UpdatedAt = time.Now()
		s.isModified = true
	}
}

// IsAuthenticated reports whether the session belongs to a signed-in
// user.
func (s Session[Data]) IsAuthenticated() bool {
	return s.UserID != uuid.Nil && s.Token != ""
}

// IsDeleted reports whether the session is marked for deletion.
func (s Session[Data]) IsDeleted() bool {
	return !s.DeletedAt.IsZero()
}

// IsModified reports whether the session has unsaved changes.
func (s Session[Data]) IsModified() bool {
	return s.isModified
}

// IsExpired reports whether the session's idle window has lapsed.
func (s Session[Data]) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

func (s *Session[Data]) rotateToken() error {
	newToken, err := generateToken()
	if err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}
	s.Token = newToken
	s.isModified = true
	return nil
}

// generateToken returns 32 bytes (256 bits) of crypto/rand output as an
// unpadded base64url string.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
