package sessiontransport

import (
	"github.com/dmitrymomot/portfolio/core/cookie"
	"github.com/dmitrymomot/portfolio/core/session"
)

// Config provides environment-based configuration for the cookie
// transport.
type Config struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"__session"`
}

// NewCookieFromConfig creates a cookie transport from configuration.
// The session and cookie managers are provided by the caller.
func NewCookieFromConfig[Data any](cfg Config, mgr *session.Manager[Data], cookieMgr *cookie.Manager) *Cookie[Data] {
	name := cfg.CookieName
	if name == "" {
		name = "__session"
	}
	return NewCookie(mgr, cookieMgr, name)
}
