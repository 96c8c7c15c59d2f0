package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/portfolio/core/handler"
	"github.com/dmitrymomot/portfolio/core/logger"
	"github.com/dmitrymomot/portfolio/pkg/clientip"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip disables the middleware for specific requests.
	Skip func(ctx handler.Context) bool
	// Logger is the slog logger to use (default: slog.Default()).
	Logger *slog.Logger
	// LogLevel for completed requests (default: slog.LevelInfo).
	LogLevel slog.Level
	// SlowRequestThreshold raises slow requests to warning level
	// (default: 5s).
	SlowRequestThreshold time.Duration
	// Component tags every log line (default: "http").
	Component string
}

// Logging creates request logging middleware with defaults. One line
// per completed request: method, path, status, size, duration.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger creates logging middleware with a custom logger.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig creates request logging middleware with custom
// configuration. Responses with 5xx status log at error level, 4xx at
// warning, and anything slower than the threshold gets a slow_request
// marker.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			req := ctx.Request()
			requestID, _ := GetRequestID(ctx)

			resp := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
				err := resp(wrapped, r)

				duration := time.Since(start)

				// Errors render after this closure returns, so the
				// written status is not yet known; derive it from the
				// error the way the router's error handler will.
				status := wrapped.status
				if err != nil && !wrapped.headerWritten {
					status = statusFromError(err)
				}

				attrs := []slog.Attr{
					logger.Component(cfg.Component),
					logger.Method(req.Method),
					logger.Path(req.URL.Path),
					logger.ClientIP(clientip.GetIP(req)),
					logger.StatusCode(status),
					logger.BytesOut(wrapped.size),
					logger.Duration(duration),
				}
				if requestID != "" {
					attrs = append(attrs, logger.RequestID(requestID))
				}

				level := cfg.LogLevel
				switch {
				case status >= 500:
					level = slog.LevelError
					if err != nil {
						attrs = append(attrs, logger.Error(err))
					}
				case status >= 400:
					level = slog.LevelWarn
				case duration > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow_request", true))
				}

				cfg.Logger.LogAttrs(req.Context(), level, "request completed", attrs...)

				return err
			}
		}
	}
}

// statusFromError mirrors the router's error-to-status mapping for
// errors that carry their own status code.
func statusFromError(err error) int {
	if sc, ok := err.(interface{ StatusCode() int }); ok {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// statusWriter captures the status code and body size for logging.
type statusWriter struct {
	http.ResponseWriter
	status        int
	size          int64
	headerWritten bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.headerWritten {
		w.status = status
		w.headerWritten = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.headerWritten = true
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}
