package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/portfolio/core/handler"
)

// mux is the private implementation of the Router interface.
type mux[C handler.Context] struct {
	reg          *registry[C]
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger
	parent       *mux[C] // for inline groups
	inline       bool
	hasRoutes    bool
}

// newMux creates a new router instance.
func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		reg:          &registry[C]{},
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	// Without a factory only the default *Context type can be served.
	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r, params)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// ServeHTTP implements the http.Handler interface.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	// Routing considers the path component only; the query string never
	// participates in matching.
	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	rt, params := m.reg.match(r.Method, path)

	ctx := m.newContext(ww, r, params)

	// Recover from panics so a single request cannot crash the server.
	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{
				value: p,
				stack: debug.Stack(),
			}

			if ww.Written() {
				// The status line is already on the wire, nothing can
				// be sent anymore. Log and abandon the request.
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
			} else {
				m.errorHandler(ctx, panicErr)
			}
		}
	}()

	if rt == nil {
		m.errorHandler(ctx, ErrNotFound)
		return
	}

	fn := rt.handler
	if len(m.middlewares) > 0 {
		fn = chain(m.middlewares, fn)
	}

	response := fn(ctx)
	if response == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := response(ww, r); err != nil {
		m.errorHandler(ctx, err)
	}
}

// Get registers a handler for GET requests.
func (m *mux[C]) Get(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, handler)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, handler)
}

// Put registers a handler for PUT requests.
func (m *mux[C]) Put(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, handler)
}

// Delete registers a handler for DELETE requests.
func (m *mux[C]) Delete(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, handler)
}

// Patch registers a handler for PATCH requests.
func (m *mux[C]) Patch(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(http.MethodPatch, pattern, handler)
}

// Head registers a handler for HEAD requests.
func (m *mux[C]) Head(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(http.MethodHead, pattern, handler)
}

// Options registers a handler for OPTIONS requests.
func (m *mux[C]) Options(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(http.MethodOptions, pattern, handler)
}

// Handle registers a handler for all HTTP methods.
func (m *mux[C]) Handle(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(anyMethod, pattern, handler)
}

// Use appends middleware to the router. All middleware must be
// registered before any route.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.hasRoutes {
		panic("router: all middlewares must be defined before routes")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With creates an inline router with additional middleware applied to
// routes registered through it.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	// Only the additional middlewares are stored; parent middlewares
	// are collected at registration time by walking the parent chain.
	return &mux[C]{
		inline:       true,
		parent:       m,
		reg:          m.reg,
		middlewares:  middlewares,
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
	}
}

// Group creates an inline router for grouping routes.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Routes returns all registered routes in registration order.
func (m *mux[C]) Routes() []Route {
	routes := make([]Route, 0, len(m.reg.routes))
	for _, rt := range m.reg.routes {
		routes = append(routes, Route{Method: rt.method, Pattern: rt.pattern})
	}
	return routes
}

// handle compiles the pattern and appends the route to the shared
// registry. Invalid patterns are programming errors and panic.
func (m *mux[C]) handle(method, pattern string, fn handler.HandlerFunc[C]) {
	if fn == nil {
		panic(fmt.Errorf("%w: %q", ErrNilHandler, pattern))
	}

	matcher, params, err := compilePattern(pattern)
	if err != nil {
		panic(err)
	}

	if !m.inline {
		m.hasRoutes = true
	}

	// Inline groups bake their middleware chain into the handler at
	// registration time, walking the parent chain so outer group
	// middleware runs first.
	h := fn
	if m.inline {
		var all []handler.Middleware[C]
		for curr := m; curr != nil && curr.inline; curr = curr.parent {
			if len(curr.middlewares) > 0 {
				all = append(append([]handler.Middleware[C]{}, curr.middlewares...), all...)
			}
		}
		if len(all) > 0 {
			h = chain(all, fn)
		}
	}

	m.reg.routes = append(m.reg.routes, &route[C]{
		method:  method,
		pattern: pattern,
		matcher: matcher,
		params:  params,
		handler: h,
	})
}

// chain wraps a handler with middleware so the first middleware in the
// slice is the outermost.
func chain[C handler.Context](middlewares []handler.Middleware[C], h handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
