package web_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/core/cookie"
	"github.com/dmitrymomot/portfolio/core/email"
	"github.com/dmitrymomot/portfolio/core/session"
	"github.com/dmitrymomot/portfolio/core/sessiontransport"
	"github.com/dmitrymomot/portfolio/internal/storage"
	"github.com/dmitrymomot/portfolio/internal/web"
)

// recordingSender captures outgoing notifications for assertions.
type recordingSender struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
}

func (r *recordingSender) SendEmail(ctx context.Context, p email.SendEmailParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, p)
	return nil
}

func (r *recordingSender) all() []email.SendEmailParams {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]email.SendEmailParams(nil), r.sent...)
}

const (
	adminEmail    = "admin@example.com"
	adminPassword = "correct-horse-battery"
)

var csrfRe = regexp.MustCompile(`name="_token" value="([^"]+)"`)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer boots the full application over an in-memory database
// and returns a cookie-carrying client that does not follow redirects.
func newTestServer(t *testing.T, opts ...web.Option) (*http.Client, string, *storage.MessageRepository) {
	t.Helper()

	db, err := storage.Open(storage.Config{Path: "file::memory:?mode=memory&cache=shared", PoolSize: 1}, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := storage.NewMessageRepository(db)

	manager := session.NewManager(
		storage.NewSessionStore[web.SessionData](db),
		session.WithTTL(time.Hour),
	)

	cookieMgr, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)

	transport := sessiontransport.NewCookie(manager, cookieMgr, "sid")

	app, err := web.NewApp(web.Config{
		SiteName:                 "Test Portfolio",
		AdminEmail:               adminEmail,
		AdminPassword:            adminPassword,
		NotifyEmail:              "owner@example.com",
		ContactRateLimitAttempts: 3,
		ContactRateLimitWindow:   10 * time.Minute,
		LoginRateLimitAttempts:   5,
		LoginRateLimitWindow:     5 * time.Minute,
	}, testLogger(), repo, transport, opts...)
	require.NoError(t, err)

	srv := httptest.NewServer(app.Router(db.Ping))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return client, srv.URL, repo
}

func get(t *testing.T, client *http.Client, target string) (int, string) {
	t.Helper()

	resp, err := client.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func getResp(t *testing.T, client *http.Client, target string) *http.Response {
	t.Helper()

	resp, err := client.Get(target)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) *http.Response {
	t.Helper()
	return postFormReferer(t, client, target, "", form)
}

func postFormReferer(t *testing.T, client *http.Client, target, referer string, form url.Values) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func csrfToken(t *testing.T, body string) string {
	t.Helper()

	m := csrfRe.FindStringSubmatch(body)
	require.NotNil(t, m, "page carries a csrf token")
	return m[1]
}

// signIn authenticates the admin through the real login flow.
func signIn(t *testing.T, client *http.Client, base string) {
	t.Helper()

	_, body := get(t, client, base+"/login")
	token := csrfToken(t, body)

	resp := postForm(t, client, base+"/login", url.Values{
		"_token":   {token},
		"email":    {adminEmail},
		"password": {adminPassword},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/dashboard", resp.Header.Get("Location"))
}

func validContactForm(token string) url.Values {
	return url.Values{
		"_token":  {token},
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"subject": {"Analytical engine"},
		"message": {"I have a proposal for a new kind of machine."},
	}
}

func TestPublicPagesRender(t *testing.T) {
	client, base, _ := newTestServer(t)

	pages := map[string]string{
		"/":         "Recent work",
		"/about":    "What I work with",
		"/projects": "Forge",
		"/contact":  "Send message",
	}

	for path, marker := range pages {
		status, body := get(t, client, base+path)
		assert.Equal(t, http.StatusOK, status, path)
		assert.Contains(t, body, marker, path)
		assert.Contains(t, body, "Test Portfolio", path)
	}
}

func TestContactFormValidation(t *testing.T) {
	t.Run("empty fields flash required errors", func(t *testing.T) {
		client, base, repo := newTestServer(t)

		_, body := get(t, client, base+"/contact")
		token := csrfToken(t, body)

		resp := postForm(t, client, base+"/contact", url.Values{"_token": {token}})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		require.Equal(t, "/contact", resp.Header.Get("Location"))

		status, body := get(t, client, base+"/contact")
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "field is required")

		count, err := repo.Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("email without at sign is rejected and input preserved", func(t *testing.T) {
		client, base, repo := newTestServer(t)

		_, body := get(t, client, base+"/contact")
		form := validContactForm(csrfToken(t, body))
		form.Set("email", "ada.example.com")

		resp := postForm(t, client, base+"/contact", form)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)

		_, body = get(t, client, base+"/contact")
		assert.Contains(t, body, "must be a valid email address")
		assert.Contains(t, body, `value="Ada"`)
		assert.Contains(t, body, "ada.example.com")

		count, err := repo.Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("message over 3000 characters is rejected", func(t *testing.T) {
		client, base, repo := newTestServer(t)

		_, body := get(t, client, base+"/contact")
		form := validContactForm(csrfToken(t, body))
		form.Set("message", strings.Repeat("a", 3001))

		resp := postForm(t, client, base+"/contact", form)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)

		_, body = get(t, client, base+"/contact")
		assert.Contains(t, body, "must be at most 3000 characters long")

		count, err := repo.Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("valid submission persists and flashes the name", func(t *testing.T) {
		client, base, repo := newTestServer(t)

		_, body := get(t, client, base+"/contact")
		resp := postForm(t, client, base+"/contact", validContactForm(csrfToken(t, body)))
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		require.Equal(t, "/contact", resp.Header.Get("Location"))

		_, body = get(t, client, base+"/contact")
		assert.Contains(t, body, "Thanks, Ada!")

		msgs, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "Ada", msgs[0].Name)
		assert.Equal(t, "ada@example.com", msgs[0].Email)
		assert.Equal(t, "Analytical engine", msgs[0].Subject)
		assert.False(t, msgs[0].Read)
	})
}

func TestContactSubmissionNotifiesOwner(t *testing.T) {
	sender := &recordingSender{}
	client, base, _ := newTestServer(t, web.WithEmailSender(sender))

	_, body := get(t, client, base+"/contact")
	resp := postForm(t, client, base+"/contact", validContactForm(csrfToken(t, body)))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	sent := sender.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "owner@example.com", sent[0].SendTo)
	assert.Equal(t, "New contact message from Ada", sent[0].Subject)
	assert.Contains(t, sent[0].BodyHTML, "Analytical engine")
	assert.Contains(t, sent[0].BodyHTML, "ada@example.com")
}

func TestFlashIsOneShot(t *testing.T) {
	client, base, _ := newTestServer(t)

	_, body := get(t, client, base+"/contact")
	resp := postForm(t, client, base+"/contact", validContactForm(csrfToken(t, body)))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, first := get(t, client, base+"/contact")
	assert.Contains(t, first, "Thanks, Ada!")

	_, second := get(t, client, base+"/contact")
	assert.NotContains(t, second, "Thanks, Ada!")
}

func TestContactRejectsBadCSRF(t *testing.T) {
	client, base, repo := newTestServer(t)

	// Prime a session so the rejection has somewhere to flash.
	_, body := get(t, client, base+"/contact")
	form := validContactForm(csrfToken(t, body))

	t.Run("missing token", func(t *testing.T) {
		broken := url.Values{}
		for k, v := range form {
			if k != "_token" {
				broken[k] = v
			}
		}

		resp := postFormReferer(t, client, base+"/contact", base+"/contact", broken)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		assert.Equal(t, "/contact", resp.Header.Get("Location"))
	})

	t.Run("forged token", func(t *testing.T) {
		forged := url.Values{}
		for k, v := range form {
			forged[k] = v
		}
		forged.Set("_token", "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")

		resp := postFormReferer(t, client, base+"/contact", base+"/contact", forged)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	})

	_, body = get(t, client, base+"/contact")
	assert.Contains(t, body, "could not be processed")

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestContactRateLimit(t *testing.T) {
	client, base, repo := newTestServer(t)

	_, body := get(t, client, base+"/contact")
	form := validContactForm(csrfToken(t, body))

	for i := range 3 {
		resp := postForm(t, client, base+"/contact", form)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode, "submission %d", i+1)
	}

	resp := postFormReferer(t, client, base+"/contact", base+"/contact", form)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "/contact", resp.Header.Get("Location"))
	assert.Equal(t, "3", resp.Header.Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestLoginWrongPassword(t *testing.T) {
	client, base, _ := newTestServer(t)

	_, body := get(t, client, base+"/login")
	token := csrfToken(t, body)

	resp := postForm(t, client, base+"/login", url.Values{
		"_token":   {token},
		"email":    {adminEmail},
		"password": {"not-the-password"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))

	_, body = get(t, client, base+"/login")
	assert.Contains(t, body, "Invalid email or password.")
	assert.Contains(t, body, `value="`+adminEmail+`"`, "email is preserved")

	// Still anonymous.
	resp = getResp(t, client, base+"/admin/dashboard")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginLogoutFlow(t *testing.T) {
	client, base, _ := newTestServer(t)

	signIn(t, client, base)

	status, body := get(t, client, base+"/admin/dashboard")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Dashboard")
	assert.Contains(t, body, "Welcome back.")

	// The guest gate bounces an authenticated admin off the login form.
	resp := getResp(t, client, base+"/login")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/dashboard", resp.Header.Get("Location"))

	// Sign out through the nav form.
	token := csrfToken(t, body)
	resp = postForm(t, client, base+"/logout", url.Values{"_token": {token}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))

	resp = getResp(t, client, base+"/admin/dashboard")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginRotatesCSRFToken(t *testing.T) {
	client, base, _ := newTestServer(t)

	_, body := get(t, client, base+"/contact")
	before := csrfToken(t, body)

	// The token is stable for the session, so the login page carries
	// the same one.
	_, body = get(t, client, base+"/login")
	assert.Equal(t, before, csrfToken(t, body))

	signIn(t, client, base)

	_, body = get(t, client, base+"/admin/dashboard")
	assert.NotEqual(t, before, csrfToken(t, body), "login rotates the csrf token")
}

func TestAdminRequiresAuth(t *testing.T) {
	client, base, _ := newTestServer(t)

	for _, path := range []string{"/admin/dashboard", "/admin/messages"} {
		resp := getResp(t, client, base+path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}

	_, body := get(t, client, base+"/login")
	assert.Contains(t, body, "Please sign in to continue.")
}

func TestAdminInboxLifecycle(t *testing.T) {
	client, base, repo := newTestServer(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, "Alice", "alice@example.com", "First subject", "body one")
	require.NoError(t, err)
	second, err := repo.Create(ctx, "Bob", "bob@example.com", "Second subject", "body two")
	require.NoError(t, err)

	signIn(t, client, base)

	status, inbox := get(t, client, base+"/admin/messages")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, inbox, "2 unread of 2")
	assert.Less(t, strings.Index(inbox, "Second subject"), strings.Index(inbox, "First subject"),
		"newest message renders first")

	token := csrfToken(t, inbox)

	// Mark the newest message read.
	resp := postForm(t, client, base+"/admin/messages/"+strconv.FormatInt(second.ID, 10)+"/toggle-read",
		url.Values{"_token": {token}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/messages", resp.Header.Get("Location"))

	_, inbox = get(t, client, base+"/admin/messages")
	assert.Contains(t, inbox, "1 unread of 2")

	read, err := repo.Find(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	// Delete the older one.
	resp = postForm(t, client, base+"/admin/messages/"+strconv.FormatInt(first.ID, 10)+"/delete",
		url.Values{"_token": {token}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, inbox = get(t, client, base+"/admin/messages")
	assert.Contains(t, inbox, "Message deleted.")
	assert.NotContains(t, inbox, "First subject")

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestAdminActionOnUnknownID(t *testing.T) {
	client, base, repo := newTestServer(t)

	signIn(t, client, base)
	_, body := get(t, client, base+"/admin/dashboard")
	token := csrfToken(t, body)

	resp := postFormReferer(t, client, base+"/admin/messages/9999/delete", base+"/admin/messages",
		url.Values{"_token": {token}})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "/admin/messages", resp.Header.Get("Location"))

	_, inbox := get(t, client, base+"/admin/messages")
	assert.Contains(t, inbox, "could not be processed")

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAdminActionNonNumericIDDoesNotRoute(t *testing.T) {
	client, base, _ := newTestServer(t)

	signIn(t, client, base)
	_, body := get(t, client, base+"/admin/dashboard")
	token := csrfToken(t, body)

	resp := postForm(t, client, base+"/admin/messages/abc/delete", url.Values{"_token": {token}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	client, base, _ := newTestServer(t)

	status, body := get(t, client, base+"/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ALIVE", body)

	status, body = get(t, client, base+"/readyz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "READY", body)
}

func TestStaticAssets(t *testing.T) {
	client, base, _ := newTestServer(t)

	resp := getResp(t, client, base+"/static/css/site.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")

	resp = getResp(t, client, base+"/static/nope.css")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnknownRouteReturns404(t *testing.T) {
	client, base, _ := newTestServer(t)

	status, body := get(t, client, base+"/no-such-page")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "404 page not found")
}
