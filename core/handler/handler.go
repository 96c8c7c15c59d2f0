package handler

import "net/http"

// Response renders an HTTP response. It sets headers, writes the status
// code, and streams the body. Errors returned from rendering are passed
// to the router's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is a type-safe request handler over a custom context type.
// Handlers return a Response describing what to write instead of writing
// directly, which keeps them testable and lets middleware wrap the
// rendering step.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler handles errors raised while processing a request.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps handlers to add cross-cutting behavior.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
