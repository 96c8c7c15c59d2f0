package static_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/core/router"
	"github.com/dmitrymomot/portfolio/core/static"
)

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"assets/css/site.css":    {Data: []byte("body { margin: 0 }")},
		"assets/img/avatar.svg":  {Data: []byte("<svg></svg>")},
		"assets/docs/index.html": {Data: []byte("<html>docs</html>")},
		"assets/private/note.md": {Data: []byte("internal")},
	}
}

func serveStatic(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()

	r := router.New[*router.Context]()
	r.Get("/static/*", static.FS[*router.Context](
		testAssets(),
		static.WithSubFS("assets"),
		static.WithStripPrefix("/static"),
	))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestFSServesEmbeddedFile(t *testing.T) {
	rec := serveStatic(t, "/static/css/site.css")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body { margin: 0 }", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}

func TestFSMissingFileReturns404(t *testing.T) {
	rec := serveStatic(t, "/static/css/missing.css")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFSDirectoryListingDisabled(t *testing.T) {
	rec := serveStatic(t, "/static/private/")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "note.md")
}

func TestFSServesDirectoryIndex(t *testing.T) {
	rec := serveStatic(t, "/static/docs/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>docs</html>", rec.Body.String())
}

func TestFSWithoutOptionsServesRoot(t *testing.T) {
	r := router.New[*router.Context]()
	r.Get("/*", static.FS[*router.Context](fstest.MapFS{
		"robots.txt": {Data: []byte("User-agent: *")},
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User-agent: *", rec.Body.String())
}

func TestFSPanicsOnInvalidSubPath(t *testing.T) {
	assert.Panics(t, func() {
		static.FS[*router.Context](testAssets(), static.WithSubFS("missing-dir"))
	})
}
