// Package ratelimiter throttles repeated actions with a sliding window
// over attempt timestamps.
//
// The limiter holds only policy (attempt ceiling, window length); the
// attempt list lives with the caller. Web handlers keep one list per
// named bucket in the visitor's session, so limits follow the session
// rather than the connection:
//
//	limiter, _ := ratelimiter.New(5, 5*time.Minute)
//
//	attempts := sess.Data.Attempts["login"]
//	if limiter.TooManyAttempts(attempts) {
//		return tooManyRequests(ctx)
//	}
//	sess.Data.Attempts["login"] = limiter.Hit(attempts)
//
// Reads filter expired timestamps lazily; Hit only appends. Stored
// lists may briefly hold expired entries, which is fine for short
// windows and per-session scope.
package ratelimiter
