package main

import (
	"time"

	"github.com/dmitrymomot/portfolio/core/cookie"
	"github.com/dmitrymomot/portfolio/core/server"
	"github.com/dmitrymomot/portfolio/core/sessiontransport"
	"github.com/dmitrymomot/portfolio/internal/storage"
	"github.com/dmitrymomot/portfolio/internal/web"
)

type Config struct {
	AppName string `env:"APP_NAME" envDefault:"portfolio"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`

	// Session configuration
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"168h"` // 7 days
	SessionTouchInterval time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"5m"`
	SessionGCInterval    time.Duration `env:"SESSION_GC_INTERVAL" envDefault:"1h"`

	// Where the development email sender drops outgoing messages.
	EmailDir string `env:"EMAIL_DIR" envDefault:"./data/emails"`

	Web              web.Config
	Cookie           cookie.Config
	DB               storage.Config
	Server           server.Config
	SessionTransport sessiontransport.Config
}
