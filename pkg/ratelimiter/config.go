package ratelimiter

import "time"

// Config provides environment-based limiter configuration.
type Config struct {
	// MaxAttempts is the attempt ceiling per sliding window.
	MaxAttempts int `env:"RATELIMIT_MAX_ATTEMPTS" envDefault:"5"`

	// Window is the sliding-window length.
	Window time.Duration `env:"RATELIMIT_WINDOW" envDefault:"5m"`
}

// NewFromConfig creates a limiter from configuration.
func NewFromConfig(cfg Config, opts ...Option) (*Limiter, error) {
	return New(cfg.MaxAttempts, cfg.Window, opts...)
}
