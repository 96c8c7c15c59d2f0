package sessiontransport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/core/cookie"
	"github.com/dmitrymomot/portfolio/core/handler"
	"github.com/dmitrymomot/portfolio/core/response"
	"github.com/dmitrymomot/portfolio/core/router"
	"github.com/dmitrymomot/portfolio/core/session"
	"github.com/dmitrymomot/portfolio/core/sessiontransport"
	"github.com/dmitrymomot/portfolio/middleware"
)

type appData struct {
	Theme string
}

const cookieName = "__session"

type testStack struct {
	router router.Router[*router.Context]
	store  *session.MemoryStore[appData]
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	cookieMgr, err := cookie.New([]string{"test-secret-key-of-sufficient-length"})
	require.NoError(t, err)

	store := session.NewMemoryStore[appData]()
	manager := session.NewManager(store, session.WithTTL(time.Hour))
	transport := sessiontransport.NewCookie(manager, cookieMgr, cookieName)

	r := router.New[*router.Context]()
	r.Use(middleware.Session[*router.Context, appData](transport))

	r.Get("/whoami", func(ctx *router.Context) handler.Response {
		sess := middleware.MustGetSession[appData](ctx)
		return response.JSON(map[string]any{
			"id":            sess.ID.String(),
			"authenticated": sess.IsAuthenticated(),
			"theme":         sess.Data.Theme,
		})
	})

	r.Post("/login", func(ctx *router.Context) handler.Response {
		sess := middleware.MustGetSession[appData](ctx)
		if err := sess.Authenticate(uuid.New(), appData{Theme: "dark"}); err != nil {
			return response.Error(err)
		}
		middleware.SetSession(ctx, sess)
		return response.NoContent()
	})

	r.Post("/logout", func(ctx *router.Context) handler.Response {
		sess := middleware.MustGetSession[appData](ctx)
		sess.Logout()
		middleware.SetSession(ctx, sess)
		return response.NoContent()
	})

	return &testStack{router: r, store: store}
}

// do performs a request, carrying over cookies from the previous
// response the way a browser would.
func (s *testStack) do(method, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "192.0.2.1:50000"
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestFirstRequestCreatesAnonymousSession(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(http.MethodGet, "/whoami", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	c := sessionCookie(t, rec)
	assert.NotEmpty(t, c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Positive(t, c.MaxAge)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}

func TestCookieResolvesSameSession(t *testing.T) {
	stack := newTestStack(t)

	first := stack.do(http.MethodGet, "/whoami", nil)
	c := sessionCookie(t, first)

	second := stack.do(http.MethodGet, "/whoami", []*http.Cookie{c})
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestTamperedCookieFallsBackToFreshSession(t *testing.T) {
	stack := newTestStack(t)

	first := stack.do(http.MethodGet, "/whoami", nil)
	c := sessionCookie(t, first)
	c.Value += "tampered"

	second := stack.do(http.MethodGet, "/whoami", []*http.Cookie{c})
	require.Equal(t, http.StatusOK, second.Code)
	assert.NotEqual(t, first.Body.String(), second.Body.String())
}

func TestLoginRotatesCookie(t *testing.T) {
	stack := newTestStack(t)

	anon := stack.do(http.MethodGet, "/whoami", nil)
	anonCookie := sessionCookie(t, anon)

	login := stack.do(http.MethodPost, "/login", []*http.Cookie{anonCookie})
	require.Equal(t, http.StatusNoContent, login.Code)
	authedCookie := sessionCookie(t, login)
	assert.NotEqual(t, anonCookie.Value, authedCookie.Value, "token rotation must reach the cookie")

	after := stack.do(http.MethodGet, "/whoami", []*http.Cookie{authedCookie})
	assert.Contains(t, after.Body.String(), `"authenticated":true`)
	assert.Contains(t, after.Body.String(), `"theme":"dark"`)

	// The pre-login cookie now points at a rotated-out token.
	stale := stack.do(http.MethodGet, "/whoami", []*http.Cookie{anonCookie})
	assert.Contains(t, stale.Body.String(), `"authenticated":false`)
}

func TestLogoutDeletesSessionAndCookie(t *testing.T) {
	stack := newTestStack(t)

	anon := stack.do(http.MethodGet, "/whoami", nil)
	login := stack.do(http.MethodPost, "/login", []*http.Cookie{sessionCookie(t, anon)})
	authedCookie := sessionCookie(t, login)

	logout := stack.do(http.MethodPost, "/logout", []*http.Cookie{authedCookie})
	require.Equal(t, http.StatusNoContent, logout.Code)

	expired := sessionCookie(t, logout)
	assert.Negative(t, expired.MaxAge, "logout must expire the cookie")

	// The old cookie no longer resolves to an authenticated session.
	after := stack.do(http.MethodGet, "/whoami", []*http.Cookie{authedCookie})
	assert.Contains(t, after.Body.String(), `"authenticated":false`)
}

func TestExpiredSessionGetsFreshOne(t *testing.T) {
	cookieMgr, err := cookie.New([]string{"test-secret-key-of-sufficient-length"})
	require.NoError(t, err)

	store := session.NewMemoryStore[appData]()
	manager := session.NewManager(store, session.WithTTL(time.Hour))
	transport := sessiontransport.NewCookie(manager, cookieMgr, cookieName)

	// Seed an already expired session and sign its token into a cookie.
	expired, err := session.New[appData](session.NewSessionParams{IP: "192.0.2.1"}, -time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), &expired))

	r := router.New[*router.Context]()
	r.Use(middleware.Session[*router.Context, appData](transport))
	r.Get("/whoami", func(ctx *router.Context) handler.Response {
		sess := middleware.MustGetSession[appData](ctx)
		return response.String(sess.ID.String())
	})

	rec := httptest.NewRecorder()
	require.NoError(t, cookieMgr.SetSigned(rec, cookieName, expired.Token))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.RemoteAddr = "192.0.2.1:50000"
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	out := httptest.NewRecorder()
	r.ServeHTTP(out, req)

	require.Equal(t, http.StatusOK, out.Code)
	assert.NotEqual(t, expired.ID.String(), out.Body.String())
}
