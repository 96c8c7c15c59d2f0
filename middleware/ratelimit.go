package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/portfolio/core/handler"
	"github.com/dmitrymomot/portfolio/core/response"
	"github.com/dmitrymomot/portfolio/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limiting middleware. Attempt
// timestamps live in the session data under a named bucket, so limits
// follow the visitor's session across requests.
type RateLimitConfig[C handler.Context, Data any] struct {
	// Skip disables the middleware for specific requests.
	Skip func(ctx C) bool
	// Limiter holds the window policy (required).
	Limiter *ratelimiter.Limiter
	// Bucket names the attempt list inside the session (required).
	Bucket string
	// AttemptsFromData reads the bucket's attempts (required).
	AttemptsFromData func(data Data, bucket string) []time.Time
	// SetAttemptsInData returns the data with the attempts applied
	// (required).
	SetAttemptsInData func(data Data, bucket string, attempts []time.Time) Data
	// ErrorHandler builds the rejection response.
	// Default: 429 with a retry_after detail.
	ErrorHandler func(ctx C, retryAfter time.Duration) handler.Response
	// SetHeaders adds X-RateLimit-* headers to responses.
	SetHeaders bool
}

// RateLimit creates middleware that throttles requests against a
// session-stored attempt bucket. Each request first checks the bucket;
// a full one is rejected before the handler runs. Otherwise the attempt
// is recorded and the request proceeds, so failed and successful
// attempts count alike.
//
// Requests without a session pass through unlimited: the bucket lives
// in the session, and a missing session already means something
// upstream degraded.
//
// Must run inside the session middleware:
//
//	login.Use(middleware.RateLimit[*web.Context](middleware.RateLimitConfig[*web.Context, web.SessionData]{
//		Limiter: limiter,
//		Bucket:  "login",
//		AttemptsFromData: func(d web.SessionData, b string) []time.Time { return d.Attempts[b] },
//		SetAttemptsInData: func(d web.SessionData, b string, a []time.Time) web.SessionData {
//			if d.Attempts == nil {
//				d.Attempts = make(map[string][]time.Time)
//			}
//			d.Attempts[b] = a
//			return d
//		},
//	}))
func RateLimit[C handler.Context, Data any](cfg RateLimitConfig[C, Data]) handler.Middleware[C] {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}
	if cfg.Bucket == "" {
		panic("ratelimit middleware: bucket name is required")
	}
	if cfg.AttemptsFromData == nil || cfg.SetAttemptsInData == nil {
		panic("ratelimit middleware: attempt accessors are required")
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx C, retryAfter time.Duration) handler.Response {
			err := response.ErrTooManyRequests
			if retryAfter > 0 {
				err = err.WithDetails(map[string]any{
					"retry_after": fmt.Sprintf("%.0f", retryAfter.Seconds()),
				})
			}
			return response.Error(err)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			sess, ok := GetSession[Data](ctx)
			if !ok {
				return next(ctx)
			}

			attempts := cfg.AttemptsFromData(sess.Data, cfg.Bucket)

			if cfg.Limiter.TooManyAttempts(attempts) {
				retryAfter := cfg.Limiter.RetryAfter(attempts)
				resp := cfg.ErrorHandler(ctx, retryAfter)
				if cfg.SetHeaders {
					return withRateLimitHeaders(resp, cfg.Limiter, attempts, retryAfter)
				}
				return resp
			}

			attempts = cfg.Limiter.Hit(attempts)
			sess.SetData(cfg.SetAttemptsInData(sess.Data, cfg.Bucket, attempts))
			SetSession(ctx, sess)

			resp := next(ctx)

			if cfg.SetHeaders {
				return withRateLimitHeaders(resp, cfg.Limiter, attempts, 0)
			}
			return resp
		}
	}
}

// withRateLimitHeaders decorates the response with the standard
// X-RateLimit-* headers, plus Retry-After when the request was blocked.
func withRateLimitHeaders(resp handler.Response, limiter *ratelimiter.Limiter, attempts []time.Time, retryAfter time.Duration) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.MaxAttempts()))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(attempts)))

		if retryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		}

		return resp(w, r)
	}
}
