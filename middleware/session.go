package middleware

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/portfolio/core/handler"
	"github.com/dmitrymomot/portfolio/core/response"
	"github.com/dmitrymomot/portfolio/core/session"
)

type sessionKey struct{}

// SessionTransport loads the request's session and persists it after
// the handler runs. sessiontransport.Cookie implements it.
type SessionTransport[Data any] interface {
	Load(handler.Context) (session.Session[Data], error)
	Store(handler.Context, session.Session[Data]) error
}

// SessionConfig configures the session middleware.
type SessionConfig[C handler.Context, Data any] struct {
	// Skip disables the middleware for specific requests.
	Skip func(ctx C) bool
	// Transport implements session load and store (required).
	Transport SessionTransport[Data]
	// Logger for load/store failures (default: discard).
	Logger *slog.Logger
	// RequireAuth rejects requests without an authenticated session.
	RequireAuth bool
	// RequireGuest rejects requests from authenticated sessions.
	RequireGuest bool
	// ErrorHandler builds the response for auth and store failures.
	// Default: response.Error(response.ErrUnauthorized).
	ErrorHandler func(ctx C, err error) handler.Response
}

// Session creates middleware that loads the session from the transport,
// exposes it via GetSession, and persists it after the handler runs.
// Load failures degrade to an empty session so public pages still
// render; store failures go to the error handler.
//
//	r.Use(middleware.Session[*web.Context, web.SessionData](transport))
func Session[C handler.Context, Data any](transport SessionTransport[Data]) handler.Middleware[C] {
	return SessionWithConfig[C](SessionConfig[C, Data]{
		Transport: transport,
	})
}

// SessionWithConfig creates session middleware with authentication
// enforcement and custom error handling. Gate rejections run with the
// session already in context, so an error handler can flash a notice
// into it before redirecting.
//
//	// Admin-only routes redirect anonymous visitors to the login form.
//	admin := r.With(middleware.SessionWithConfig(middleware.SessionConfig[*web.Context, web.SessionData]{
//		Transport:   transport,
//		RequireAuth: true,
//		ErrorHandler: func(ctx *web.Context, err error) handler.Response {
//			return response.RedirectSeeOther("/login")
//		},
//	}))
func SessionWithConfig[C handler.Context, Data any](cfg SessionConfig[C, Data]) handler.Middleware[C] {
	if cfg.Transport == nil {
		panic("session middleware: transport is required")
	}

	if cfg.RequireAuth && cfg.RequireGuest {
		panic("session middleware: RequireAuth and RequireGuest cannot both be true")
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx C, err error) handler.Response {
			return response.Error(response.ErrUnauthorized)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			sess, err := cfg.Transport.Load(ctx)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return response.Error(ctxErr)
				}
				cfg.Logger.ErrorContext(ctx, "session load failed", "error", err)
				// Degrade to an empty session instead of failing the request.
				sess = session.Session[Data]{}
			}

			// The session goes into the context before the gates run, so
			// a gate's error handler can still flash into it; the store
			// pass below persists whatever the rejection wrote.
			ctx.SetValue(sessionKey{}, sess)

			var resp handler.Response
			switch {
			case cfg.RequireAuth && !sess.IsAuthenticated():
				resp = cfg.ErrorHandler(ctx, response.ErrUnauthorized)
			case cfg.RequireGuest && sess.IsAuthenticated():
				resp = cfg.ErrorHandler(ctx, response.ErrForbidden)
			default:
				resp = next(ctx)
			}

			// The handler may have swapped the session via SetSession.
			currentSess, ok := GetSession[Data](ctx)
			if !ok {
				return resp
			}

			// A zero-ID session means load degraded; nothing to persist.
			if currentSess.ID == uuid.Nil {
				return resp
			}

			if err := cfg.Transport.Store(ctx, currentSess); err != nil {
				cfg.Logger.ErrorContext(ctx, "session store failed", "error", err)
				return cfg.ErrorHandler(ctx, err)
			}

			return resp
		}
	}
}

// GetSession retrieves the session from the request context.
func GetSession[Data any](ctx handler.Context) (session.Session[Data], bool) {
	if ctx == nil {
		return session.Session[Data]{}, false
	}

	if sess, ok := ctx.Value(sessionKey{}).(session.Session[Data]); ok {
		return sess, true
	}

	return session.Session[Data]{}, false
}

// MustGetSession retrieves the session or panics. Use it in handlers
// guaranteed to run behind the session middleware.
func MustGetSession[Data any](ctx handler.Context) session.Session[Data] {
	sess, ok := GetSession[Data](ctx)
	if !ok {
		panic("session not found in context")
	}
	return sess
}

// SetSession replaces the session in the request context. Handlers call
// it after mutating the session so the middleware persists the change.
func SetSession[Data any](ctx handler.Context, sess session.Session[Data]) {
	ctx.SetValue(sessionKey{}, sess)
}
