package ratelimiter

import "errors"

var (
	ErrInvalidMaxAttempts = errors.New("ratelimiter: max attempts must be positive")
	ErrInvalidWindow      = errors.New("ratelimiter: window must be positive")
)
