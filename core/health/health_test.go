package health_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/core/health"
	"github.com/dmitrymomot/portfolio/core/router"
)

func serveHealth(r router.Router[*router.Context], target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestLiveness(t *testing.T) {
	r := router.New[*router.Context]()
	r.Get("/healthz", health.Liveness[*router.Context])

	rec := serveHealth(r, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
}

func TestNoContent(t *testing.T) {
	r := router.New[*router.Context]()
	r.Get("/ping", health.NoContent[*router.Context])

	rec := serveHealth(r, "/ping")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestReadinessAllChecksPass(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := router.New[*router.Context]()
	r.Get("/ready", health.Readiness[*router.Context](
		log,
		func(context.Context) error { return nil },
		func(context.Context) error { return nil },
	))

	rec := serveHealth(r, "/ready")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "READY", rec.Body.String())
}

func TestReadinessFailingCheck(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := router.New[*router.Context]()
	r.Get("/ready", health.Readiness[*router.Context](
		log,
		func(context.Context) error { return errors.New("db unreachable") },
	))

	rec := serveHealth(r, "/ready")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
