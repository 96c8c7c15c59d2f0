package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/core/response"
	"github.com/dmitrymomot/portfolio/core/templates"
)

func testEngine(t *testing.T) *templates.Engine {
	t.Helper()
	engine, err := templates.New(fstest.MapFS{
		"layout.html": &fstest.MapFile{Data: []byte(`<main>{{content}}</main>`)},
		"home.html":   &fstest.MapFile{Data: []byte(`Hello {{.Name}}`)},
		"bad.html":    &fstest.MapFile{Data: []byte(`{{.Value.Missing}}`)},
	})
	require.NoError(t, err)
	return engine
}

func TestView(t *testing.T) {
	rec := execute(t, response.View(testEngine(t), "home", map[string]string{"Name": "Go"}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<main>Hello Go</main>", rec.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestViewWithStatus(t *testing.T) {
	rec := execute(t, response.ViewWithStatus(testEngine(t), "home", map[string]string{"Name": "Go"}, http.StatusUnprocessableEntity))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestViewRenderErrorWritesNothing(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	err := response.View(testEngine(t), "bad", map[string]string{"Value": "str"})(rec, req)
	assert.Error(t, err)
	assert.Zero(t, rec.Body.Len())
}

func TestViewNilEngine(t *testing.T) {
	assert.Nil(t, response.View(nil, "home", nil))
}
