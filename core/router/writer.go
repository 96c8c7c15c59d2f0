package router

import (
	"fmt"
	"net/http"
)

// responseWriter wraps http.ResponseWriter and tracks response state.
// A response is sent at most once: the second WriteHeader call is a
// programming error and panics, surfacing the bug at the offending call
// site instead of silently corrupting the response.
type responseWriter struct {
	http.ResponseWriter
	status  int
	written bool
	bytes   int64
}

// newResponseWriter creates a new response writer wrapper.
func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
	}
}

func (w *responseWriter) WriteHeader(status int) {
	if w.written {
		panic(fmt.Sprintf("router: response already sent with status %d, refusing to send %d", w.status, status))
	}
	w.status = status
	w.written = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += int64(n)
	return n, err
}

// Written reports whether the status line has been sent.
func (w *responseWriter) Written() bool {
	return w.written
}

// Status returns the HTTP status code that was sent.
func (w *responseWriter) Status() int {
	return w.status
}

// BytesWritten returns the number of body bytes written so far.
func (w *responseWriter) BytesWritten() int64 {
	return w.bytes
}

// Flush implements http.Flusher when the underlying writer supports it.
func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
