package router

import (
	"context"
	"net/http"
)

// Context is the default request context. Applications with their own
// context type embed it and register a factory via WithContextFactory.
type Context struct {
	context.Context
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
	values map[any]any
}

// NewContext builds a Context around the request, carrying the path
// parameters captured by the matched route. Custom context factories
// call it to construct the embedded base.
func NewContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{
		Context: r.Context(),
		w:       w,
		r:       r,
		params:  params,
	}
}

// Request returns the underlying HTTP request.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the underlying response writer.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the named path parameter captured by the route pattern,
// or the empty string when absent.
func (c *Context) Param(key string) string {
	return c.params[key]
}

// SetValue stores a request-scoped value, retrievable through Value.
func (c *Context) SetValue(key, val any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}

// Value returns values stored with SetValue, falling back to the
// request's context.
func (c *Context) Value(key any) any {
	if c.values != nil {
		if val, ok := c.values[key]; ok {
			return val
		}
	}
	return c.Context.Value(key)
}
