package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/dmitrymomot/portfolio/core/handler"
	"github.com/dmitrymomot/portfolio/core/response"
)

// CSRFFormField is the form input carrying the token back to the
// server.
const CSRFFormField = "_token"

var (
	// ErrCSRFTokenMissing is returned when the session holds no token or
	// the request submitted none.
	ErrCSRFTokenMissing = errors.New("csrf: token missing")

	// ErrCSRFTokenInvalid is returned when the submitted token does not
	// match the session's.
	ErrCSRFTokenInvalid = errors.New("csrf: token mismatch")
)

// CSRFConfig configures the CSRF middleware. The middleware keeps the
// token inside the session data, so the config carries accessors for
// the application's data type.
type CSRFConfig[C handler.Context, Data any] struct {
	// Skip disables the middleware for specific requests.
	Skip func(ctx C) bool
	// TokenFromData reads the stored token (required).
	TokenFromData func(data Data) string
	// SetTokenInData returns the data with the token applied (required).
	SetTokenInData func(data Data, token string) Data
	// FormField overrides the submitted-token input name.
	// Default: CSRFFormField.
	FormField string
	// ErrorHandler builds the rejection response.
	// Default: response.Error(response.ErrTooManyRequests).
	ErrorHandler func(ctx C, err error) handler.Response
}

// CSRF creates middleware that guards state-changing requests with a
// session-bound token. Safe methods (GET, HEAD, OPTIONS) ensure the
// session carries a token for forms to embed; every other method must
// echo that token back in the form field or the X-CSRF-Token header.
// Tokens are compared in constant time and both sides must be
// non-empty.
//
// The token is stable for the session's lifetime. Login and logout
// rotate it by storing a fresh one, which keeps a leaked pre-auth token
// from crossing the privilege boundary.
//
// Must run inside the session middleware:
//
//	r.Use(middleware.Session[*web.Context, web.SessionData](transport))
//	r.Use(middleware.CSRF[*web.Context](middleware.CSRFConfig[*web.Context, web.SessionData]{
//		TokenFromData:  func(d web.SessionData) string { return d.CSRFToken },
//		SetTokenInData: func(d web.SessionData, t string) web.SessionData { d.CSRFToken = t; return d },
//	}))
func CSRF[C handler.Context, Data any](cfg CSRFConfig[C, Data]) handler.Middleware[C] {
	if cfg.TokenFromData == nil || cfg.SetTokenInData == nil {
		panic("csrf middleware: token accessors are required")
	}

	if cfg.FormField == "" {
		cfg.FormField = CSRFFormField
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx C, err error) handler.Response {
			return response.Error(response.ErrTooManyRequests)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			sess, ok := GetSession[Data](ctx)
			if !ok {
				// No session middleware above us; nothing to validate
				// against, so reject unsafe methods outright.
				if isSafeMethod(ctx.Request().Method) {
					return next(ctx)
				}
				return cfg.ErrorHandler(ctx, ErrCSRFTokenMissing)
			}

			if isSafeMethod(ctx.Request().Method) {
				if cfg.TokenFromData(sess.Data) == "" {
					token, err := NewCSRFToken()
					if err != nil {
						return response.Error(err)
					}
					sess.SetData(cfg.SetTokenInData(sess.Data, token))
					SetSession(ctx, sess)
				}
				return next(ctx)
			}

			if err := validateCSRF(ctx.Request(), cfg.TokenFromData(sess.Data), cfg.FormField); err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			return next(ctx)
		}
	}
}

// NewCSRFToken returns a fresh random token. Handlers rotating the
// token on privilege changes use it directly.
func NewCSRFToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func validateCSRF(r *http.Request, sessionToken, formField string) error {
	if sessionToken == "" {
		return ErrCSRFTokenMissing
	}

	submitted := r.PostFormValue(formField)
	if submitted == "" {
		submitted = r.Header.Get("X-CSRF-Token")
	}
	if submitted == "" {
		return ErrCSRFTokenMissing
	}

	if subtle.ConstantTimeCompare([]byte(sessionToken), []byte(submitted)) != 1 {
		return ErrCSRFTokenInvalid
	}

	return nil
}
