package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/core/handler"
	"github.com/dmitrymomot/portfolio/core/response"
	"github.com/dmitrymomot/portfolio/core/router"
	"github.com/dmitrymomot/portfolio/core/session"
	"github.com/dmitrymomot/portfolio/middleware"
)

type testData struct {
	Theme string
}

// stubTransport implements the session transport contract with
// function fields, so each test controls load and store behavior.
type stubTransport struct {
	load  func(handler.Context) (session.Session[testData], error)
	store func(handler.Context, session.Session[testData]) error
}

func (s *stubTransport) Load(ctx handler.Context) (session.Session[testData], error) {
	return s.load(ctx)
}

func (s *stubTransport) Store(ctx handler.Context, sess session.Session[testData]) error {
	if s.store == nil {
		return nil
	}
	return s.store(ctx, sess)
}

func newSession(t *testing.T) session.Session[testData] {
	t.Helper()
	sess, err := session.New[testData](session.NewSessionParams{IP: "192.0.2.1"}, time.Hour)
	require.NoError(t, err)
	return sess
}

func serve(r http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "192.0.2.1:40000"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSessionExposesSessionToHandler(t *testing.T) {
	sess := newSession(t)
	transport := &stubTransport{
		load: func(handler.Context) (session.Session[testData], error) { return sess, nil },
	}

	r := router.New[*router.Context]()
	r.Use(middleware.Session[*router.Context, testData](transport))
	r.Get("/", func(ctx *router.Context) handler.Response {
		got := middleware.MustGetSession[testData](ctx)
		assert.Equal(t, sess.ID, got.ID)
		return response.NoContent()
	})

	rec := serve(r, http.MethodGet, "/")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSessionStoresMutatedSession(t *testing.T) {
	sess := newSession(t)
	var stored session.Session[testData]
	transport := &stubTransport{
		load: func(handler.Context) (session.Session[testData], error) { return sess, nil },
		store: func(_ handler.Context, s session.Session[testData]) error {
			stored = s
			return nil
		},
	}

	r := router.New[*router.Context]()
	r.Use(middleware.Session[*router.Context, testData](transport))
	r.Get("/", func(ctx *router.Context) handler.Response {
		s := middleware.MustGetSession[testData](ctx)
		s.SetData(testData{Theme: "dark"})
		middleware.SetSession(ctx, s)
		return response.NoContent()
	})

	rec := serve(r, http.MethodGet, "/")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "dark", stored.Data.Theme)
}

func TestSessionLoadFailureDegrades(t *testing.T) {
	transport := &stubTransport{
		load: func(handler.Context) (session.Session[testData], error) {
			return session.Session[testData]{}, assert.AnError
		},
		store: func(handler.Context, session.Session[testData]) error {
			t.Fatal("empty session must not be stored")
			return nil
		},
	}

	r := router.New[*router.Context]()
	r.Use(middleware.Session[*router.Context, testData](transport))
	r.Get("/", func(ctx *router.Context) handler.Response {
		_, ok := middleware.GetSession[testData](ctx)
		assert.True(t, ok, "handler still sees a session value")
		return response.NoContent()
	})

	rec := serve(r, http.MethodGet, "/")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSessionRequireAuth(t *testing.T) {
	anon := newSession(t)
	transport := &stubTransport{
		load: func(handler.Context) (session.Session[testData], error) { return anon, nil },
	}

	r := router.New[*router.Context]()
	r.Use(middleware.SessionWithConfig(middleware.SessionConfig[*router.Context, testData]{
		Transport:   transport,
		RequireAuth: true,
	}))
	r.Get("/admin", func(ctx *router.Context) handler.Response {
		return response.NoContent()
	})

	rec := serve(r, http.MethodGet, "/admin")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionRequireAuthCustomErrorHandler(t *testing.T) {
	anon := newSession(t)
	transport := &stubTransport{
		load: func(handler.Context) (session.Session[testData], error) { return anon, nil },
	}

	r := router.New[*router.Context]()
	r.Use(middleware.SessionWithConfig(middleware.SessionConfig[*router.Context, testData]{
		Transport:   transport,
		RequireAuth: true,
		ErrorHandler: func(ctx *router.Context, err error) handler.Response {
			return response.RedirectSeeOther("/login")
		},
	}))
	r.Get("/admin", func(ctx *router.Context) handler.Response {
		return response.NoContent()
	})

	rec := serve(r, http.MethodGet, "/admin")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestSessionGateErrorHandlerCanMutateSession(t *testing.T) {
	anon := newSession(t)
	var stored session.Session[testData]
	transport := &stubTransport{
		load: func(handler.Context) (session.Session[testData], error) { return anon, nil },
		store: func(_ handler.Context, s session.Session[testData]) error {
			stored = s
			return nil
		},
	}

	r := router.New[*router.Context]()
	r.Use(middleware.SessionWithConfig(middleware.SessionConfig[*router.Context, testData]{
		Transport:   transport,
		RequireAuth: true,
		ErrorHandler: func(ctx *router.Context, err error) handler.Response {
			s := middleware.MustGetSession[testData](ctx)
			s.SetData(testData{Theme: "denied"})
			middleware.SetSession(ctx, s)
			return response.RedirectSeeOther("/login")
		},
	}))
	r.Get("/admin", func(ctx *router.Context) handler.Response {
		return response.NoContent()
	})

	rec := serve(r, http.MethodGet, "/admin")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "denied", stored.Data.Theme, "rejection flash persists")
}

func TestSessionRequireAuthPassesAuthenticated(t *testing.T) {
	sess := newSession(t)
	require.NoError(t, sess.Authenticate(uuid.New()))
	transport := &stubTransport{
		load: func(handler.Context) (session.Session[testData], error) { return sess, nil },
	}

	r := router.New[*router.Context]()
	r.Use(middleware.SessionWithConfig(middleware.SessionConfig[*router.Context, testData]{
		Transport:   transport,
		RequireAuth: true,
	}))
	r.Get("/admin", func(ctx *router.Context) handler.Response {
		return response.NoContent()
	})

	rec := serve(r, http.MethodGet, "/admin")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSessionRequireGuest(t *testing.T) {
	sess := newSession(t)
	require.NoError(t, sess.Authenticate(uuid.New()))
	transport := &stubTransport{
		load: func(handler.Context) (session.Session[testData], error) { return sess, nil },
	}

	r := router.New[*router.Context]()
	r.Use(middleware.SessionWithConfig(middleware.SessionConfig[*router.Context, testData]{
		Transport:    transport,
		RequireGuest: true,
		ErrorHandler: func(ctx *router.Context, err error) handler.Response {
			return response.RedirectSeeOther("/admin")
		},
	}))
	r.Get("/login", func(ctx *router.Context) handler.Response {
		return response.NoContent()
	})

	rec := serve(r, http.MethodGet, "/login")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestSessionStoreFailure(t *testing.T) {
	sess := newSession(t)
	transport := &stubTransport{
		load: func(handler.Context) (session.Session[testData], error) { return sess, nil },
		store: func(handler.Context, session.Session[testData]) error {
			return assert.AnError
		},
	}

	r := router.New[*router.Context]()
	r.Use(middleware.Session[*router.Context, testData](transport))
	r.Get("/", func(ctx *router.Context) handler.Response {
		return response.NoContent()
	})

	rec := serve(r, http.MethodGet, "/")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionSkip(t *testing.T) {
	transport := &stubTransport{
		load: func(handler.Context) (session.Session[testData], error) {
			t.Fatal("transport must not load on skipped routes")
			return session.Session[testData]{}, nil
		},
	}

	r := router.New[*router.Context]()
	r.Use(middleware.SessionWithConfig(middleware.SessionConfig[*router.Context, testData]{
		Transport: transport,
		Skip: func(ctx *router.Context) bool {
			return ctx.Request().URL.Path == "/healthz"
		},
	}))
	r.Get("/healthz", func(ctx *router.Context) handler.Response {
		_, ok := middleware.GetSession[testData](ctx)
		assert.False(t, ok)
		return response.NoContent()
	})

	rec := serve(r, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
