package response

import (
	"bytes"
	"net/http"

	"github.com/dmitrymomot/portfolio/core/handler"
	"github.com/dmitrymomot/portfolio/core/templates"
)

// View renders the named view inside the engine's layout with 200 OK
// status.
func View(engine *templates.Engine, view string, data any) handler.Response {
	return ViewWithStatus(engine, view, data, http.StatusOK)
}

// ViewWithStatus renders the named view inside the engine's layout with
// a custom status code. Output is buffered so a render failure reaches
// the error handler before anything is written.
func ViewWithStatus(engine *templates.Engine, view string, data any, status int) handler.Response {
	if engine == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		var buf bytes.Buffer
		if err := engine.Render(&buf, view, data); err != nil {
			return err
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, err := w.Write(buf.Bytes())
		return err
	}
}
