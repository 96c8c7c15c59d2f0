package ratelimiter

import "time"

// Limiter implements a sliding-window rate limit over a list of attempt
// timestamps. The list itself lives with the caller, typically inside
// the visitor's session, which keeps the limiter stateless and safe to
// share across requests.
//
// Expired timestamps are filtered lazily on each read and never pruned
// from the stored list. Growth is bounded in practice because the
// window is short and each list belongs to a single session.
type Limiter struct {
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces the limiter's time source. Tests use it to move
// through the window without sleeping.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// New creates a limiter allowing maxAttempts hits per sliding window.
func New(maxAttempts int, window time.Duration, opts ...Option) (*Limiter, error) {
	if maxAttempts <= 0 {
		return nil, ErrInvalidMaxAttempts
	}
	if window <= 0 {
		return nil, ErrInvalidWindow
	}

	l := &Limiter{
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// Hit records an attempt and returns the updated timestamp list. The
// caller stores the result back where the list came from.
func (l *Limiter) Hit(attempts []time.Time) []time.Time {
	return append(attempts, l.now())
}

// TooManyAttempts reports whether the attempts inside the current
// window have reached the configured maximum.
func (l *Limiter) TooManyAttempts(attempts []time.Time) bool {
	return l.CountAttempts(attempts) >= l.maxAttempts
}

// CountAttempts returns how many attempts fall inside the current
// window.
func (l *Limiter) CountAttempts(attempts []time.Time) int {
	cutoff := l.now().Add(-l.window)

	count := 0
	for _, at := range attempts {
		if at.After(cutoff) {
			count++
		}
	}
	return count
}

// Remaining returns how many attempts are left before the limit trips.
func (l *Limiter) Remaining(attempts []time.Time) int {
	remaining := l.maxAttempts - l.CountAttempts(attempts)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RetryAfter returns how long until the oldest in-window attempt slides
// out and frees a slot. Zero means the caller is not limited.
func (l *Limiter) RetryAfter(attempts []time.Time) time.Duration {
	if !l.TooManyAttempts(attempts) {
		return 0
	}

	now := l.now()
	cutoff := now.Add(-l.window)

	var oldest time.Time
	for _, at := range attempts {
		if at.After(cutoff) && (oldest.IsZero() || at.Before(oldest)) {
			oldest = at
		}
	}
	if oldest.IsZero() {
		return 0
	}
	return oldest.Add(l.window).Sub(now)
}

// MaxAttempts returns the configured attempt ceiling.
func (l *Limiter) MaxAttempts() int {
	return l.maxAttempts
}

// Window returns the configured sliding-window length.
func (l *Limiter) Window() time.Duration {
	return l.window
}
