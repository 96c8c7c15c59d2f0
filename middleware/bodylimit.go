package middleware

import (
	"fmt"
	"io"

	"github.com/dmitrymomot/portfolio/core/handler"
	"github.com/dmitrymomot/portfolio/core/response"
)

// Size constants for limit configuration.
const (
	KB int64 = 1024
	MB       = 1024 * KB
)

// BodyLimitConfig configures the request body limit middleware.
type BodyLimitConfig struct {
	// Skip disables the middleware for specific requests.
	Skip func(ctx handler.Context) bool
	// MaxSize is the maximum allowed body size in bytes (default: 4MB).
	MaxSize int64
	// ErrorHandler handles requests exceeding the limit.
	ErrorHandler func(ctx handler.Context, maxSize int64) handler.Response
}

// BodyLimit creates a body limit middleware with the default 4MB limit.
func BodyLimit[C handler.Context]() handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{})
}

// BodyLimitWithSize creates a body limit middleware with the given
// limit.
func BodyLimitWithSize[C handler.Context](maxSize int64) handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig creates a body limit middleware with custom
// configuration. Requests declaring an oversized Content-Length are
// rejected before any body reading; bodies without a declared length
// are capped during reading.
func BodyLimitWithConfig[C handler.Context](cfg BodyLimitConfig) handler.Middleware[C] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 4 * MB
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx handler.Context, maxSize int64) handler.Response {
			return response.Error(response.ErrRequestEntityTooLarge.WithDetails(map[string]any{
				"limit": maxSize,
			}))
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()

			if req.ContentLength > cfg.MaxSize {
				return cfg.ErrorHandler(ctx, cfg.MaxSize)
			}

			if req.Body != nil {
				req.Body = &limitedReader{reader: req.Body, limit: cfg.MaxSize}
			}

			return next(ctx)
		}
	}
}

// limitedReader caps reads at the configured limit. Exceeding it turns
// into a read error, which binders surface as a parse failure.
type limitedReader struct {
	reader io.ReadCloser
	limit  int64
	read   int64
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("request body exceeds %d bytes", lr.limit)
	}

	if remaining := lr.limit - lr.read; int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := lr.reader.Read(p)
	lr.read += int64(n)
	return n, err
}

func (lr *limitedReader) Close() error {
	return lr.reader.Close()
}
