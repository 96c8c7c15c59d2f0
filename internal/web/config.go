package web

import "time"

// Config carries the application-level settings. Infrastructure
// configs (server, cookies, storage) compose separately in cmd/server.
type Config struct {
	SiteName string `env:"SITE_NAME" envDefault:"Dmitry Momot"`

	// Admin credentials. The password is bcrypt-hashed once at startup;
	// the plaintext never leaves the config struct.
	AdminEmail    string `env:"ADMIN_EMAIL,required"`
	AdminPassword string `env:"ADMIN_PASSWORD,required"`

	// NotifyEmail receives a notification for each contact submission.
	// Empty disables notifications. Takes effect only when an email
	// sender is wired in.
	NotifyEmail string `env:"NOTIFY_EMAIL" envDefault:""`

	// Per-form rate-limit buckets.
	ContactRateLimitAttempts int           `env:"CONTACT_RATELIMIT_ATTEMPTS" envDefault:"3"`
	ContactRateLimitWindow   time.Duration `env:"CONTACT_RATELIMIT_WINDOW" envDefault:"10m"`
	LoginRateLimitAttempts   int           `env:"LOGIN_RATELIMIT_ATTEMPTS" envDefault:"5"`
	LoginRateLimitWindow     time.Duration `env:"LOGIN_RATELIMIT_WINDOW" envDefault:"5m"`
}
