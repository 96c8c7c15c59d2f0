// Package handler defines the core abstractions for HTTP request
// processing: a Context interface carrying request state, type-safe
// handler functions over custom context types, and composable
// middleware.
//
// Handlers return a Response function instead of writing to the
// ResponseWriter directly:
//
//	func hello(ctx handler.Context) handler.Response {
//		name := ctx.Param("name")
//		return func(w http.ResponseWriter, r *http.Request) error {
//			_, err := fmt.Fprintf(w, "Hello, %s!", name)
//			return err
//		}
//	}
//
// The split between producing and rendering a response lets middleware
// decorate either phase, and lets the router funnel rendering errors
// into a single error handler.
//
// Applications typically define their own context type embedding the
// router's default implementation and adding request-scoped helpers
// (session access, flash messages, body binding). Generic middleware
// stays reusable across context types via the Context interface.
package handler
