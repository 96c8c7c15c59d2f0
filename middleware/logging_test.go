package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/core/handler"
	"github.com/dmitrymomot/portfolio/core/response"
	"github.com/dmitrymomot/portfolio/core/router"
	"github.com/dmitrymomot/portfolio/middleware"
)

func newLoggingRouter(buf *bytes.Buffer) router.Router[*router.Context] {
	log := slog.New(slog.NewTextHandler(buf, nil))

	r := router.New[*router.Context]()
	r.Use(middleware.RequestID[*router.Context]())
	r.Use(middleware.LoggingWithLogger[*router.Context](log))
	r.Get("/ok", func(ctx *router.Context) handler.Response {
		return response.String("hello")
	})
	r.Get("/missing-thing", func(ctx *router.Context) handler.Response {
		return response.Error(response.ErrNotFound)
	})
	r.Get("/boom", func(ctx *router.Context) handler.Response {
		return response.Error(response.ErrInternalServerError)
	})
	return r
}

func TestLoggingRecordsCompletedRequest(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggingRouter(&buf)

	rec := serve(r, http.MethodGet, "/ok")
	require.Equal(t, http.StatusOK, rec.Code)

	out := buf.String()
	assert.Contains(t, out, "request completed")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/ok")
	assert.Contains(t, out, "status_code=200")
	assert.Contains(t, out, "request_id=")
	assert.Contains(t, out, "level=INFO")
}

func TestLoggingWarnsOnClientError(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggingRouter(&buf)

	serve(r, http.MethodGet, "/missing-thing")

	out := buf.String()
	assert.Contains(t, out, "status_code=404")
	assert.Contains(t, out, "level=WARN")
}

func TestLoggingErrorsOnServerError(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggingRouter(&buf)

	serve(r, http.MethodGet, "/boom")

	out := buf.String()
	assert.Contains(t, out, "status_code=500")
	assert.Contains(t, out, "level=ERROR")
}

func TestLoggingSkip(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	r := router.New[*router.Context]()
	r.Use(middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
		Logger: log,
		Skip: func(ctx handler.Context) bool {
			return ctx.Request().URL.Path == "/healthz"
		},
	}))
	r.Get("/healthz", func(ctx *router.Context) handler.Response {
		return response.String("ok")
	})

	serve(r, http.MethodGet, "/healthz")
	assert.Empty(t, buf.String())
}
