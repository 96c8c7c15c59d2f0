// Package response provides constructors for handler.Response values:
// plain text, HTML, JSON, rendered views, redirects, file downloads,
// and error propagation.
//
// Each constructor returns a closure that performs the actual write
// when the router renders it:
//
//	func hello(ctx handler.Context) handler.Response {
//		return response.String("hello")
//	}
//
//	func show(ctx *web.Context) handler.Response {
//		return response.View(engine, "projects", data)
//	}
//
//	func submit(ctx *web.Context) handler.Response {
//		return response.RedirectSeeOther("/contact")
//	}
//
// Errors flow through response.Error or through HTTPError values, which
// carry their status code to the router's error handler. Decorators
// (WithHeaders, WithCookie, WithCache) layer additional headers onto an
// existing response without touching its body.
package response
