package handler

import (
	"context"
	"net/http"
)

// Context is the contract request contexts must satisfy. It extends the
// standard context.Context with access to the underlying request and
// response writer, named path parameters, and request-scoped values.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
