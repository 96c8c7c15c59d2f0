package session

import "time"

// Config holds session manager settings.
type Config struct {
	TTL           time.Duration // idle timeout
	TouchInterval time.Duration // min time between expiry extensions (0 = extend every save)
}

func defaultConfig() *Config {
	return &Config{
		TTL:           24 * time.Hour,
		TouchInterval: 5 * time.Minute,
	}
}

// Option configures the session manager.
type Option func(*Config)

// WithTTL sets the session time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.TTL = ttl
	}
}

// WithTouchInterval sets the minimum time between expiry extensions.
// Zero extends on every save.
func WithTouchInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.TouchInterval = interval
	}
}
