package middleware

import (
	"net/http"

	"github.com/dmitrymomot/portfolio/core/handler"
)

// SecurityHeadersConfig configures the security headers middleware.
// Empty fields leave the corresponding header unset.
type SecurityHeadersConfig struct {
	// Skip disables the middleware for specific requests.
	Skip func(ctx handler.Context) bool

	ContentTypeOptions      string
	FrameOptions            string
	ReferrerPolicy          string
	ContentSecurityPolicy   string
	StrictTransportSecurity string
	PermissionsPolicy       string
}

// DefaultSecurity suits a server-rendered site: inline styles allowed,
// scripts and frames locked to the origin, HSTS left to the deployment
// to enable.
var DefaultSecurity = SecurityHeadersConfig{
	ContentTypeOptions:    "nosniff",
	FrameOptions:          "SAMEORIGIN",
	ReferrerPolicy:        "strict-origin-when-cross-origin",
	ContentSecurityPolicy: "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:",
	PermissionsPolicy:     "geolocation=(), microphone=(), camera=()",
}

// SecurityHeaders creates middleware applying the DefaultSecurity
// header set.
func SecurityHeaders[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](DefaultSecurity)
}

// SecurityHeadersWithConfig creates security headers middleware with
// custom configuration.
func SecurityHeadersWithConfig[C handler.Context](cfg SecurityHeadersConfig) handler.Middleware[C] {
	headers := map[string]string{
		"X-Content-Type-Options":    cfg.ContentTypeOptions,
		"X-Frame-Options":           cfg.FrameOptions,
		"Referrer-Policy":           cfg.ReferrerPolicy,
		"Content-Security-Policy":   cfg.ContentSecurityPolicy,
		"Strict-Transport-Security": cfg.StrictTransportSecurity,
		"Permissions-Policy":        cfg.PermissionsPolicy,
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			resp := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				for name, value := range headers {
					if value != "" {
						w.Header().Set(name, value)
					}
				}
				return resp(w, r)
			}
		}
	}
}
