package session

import "errors"

var (
	// ErrExpired is returned when a session's idle window has lapsed.
	ErrExpired = errors.New("session has expired")
	// ErrNotFound is returned when a session is not in the store.
	ErrNotFound = errors.New("session not found")
	// ErrMissingIP is returned when creating a session without a client IP.
	ErrMissingIP = errors.New("IP address is required")
	// ErrTokenGeneration is returned when the random source fails.
	ErrTokenGeneration = errors.New("failed to generate token")
	// ErrSaveSession wraps store failures during save.
	ErrSaveSession = errors.New("failed to save session")
	// ErrDeleteSession wraps store failures during delete.
	ErrDeleteSession = errors.New("failed to delete session")
)
