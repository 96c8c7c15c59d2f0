// Package router provides a regex-based HTTP router with type-safe
// handlers and composable middleware.
//
// Patterns are path templates where each {name} placeholder occupies a
// whole segment and matches one or more digits:
//
//	r := router.New[*router.Context]()
//	r.Get("/projects/{id}", showProject)
//	r.Post("/admin/messages/{id}/delete", deleteMessage)
//
// Matching is anchored and literal outside placeholders: trailing
// slashes are significant and the query string is ignored. Routes are
// tried in registration order and the first match wins, so overlapping
// patterns are resolved by the order they were registered, not by
// specificity.
//
// A trailing "*" segment matches any remainder of the path, which is
// how static asset trees are mounted:
//
//	r.Get("/static/*", static.FS[*router.Context](assets))
//
// Handlers are resolved to function values at registration time, so a
// request can only ever hit a route that has a real handler attached;
// there is no runtime lookup that could fail. Unmatched requests get a
// plain-text 404 from the error handler.
//
// Middleware applies router-wide via Use, or to a subset of routes via
// With and Group:
//
//	r.Use(middleware.Logging[*router.Context](logCfg))
//	r.Group(func(r router.Router[*router.Context]) {
//		r.Use(requireAuth)
//		r.Get("/admin", dashboard)
//	})
//
// Panics raised by handlers are recovered per request and routed to the
// error handler as a PanicError carrying the stack trace. If the
// response status line was already written when the panic happened, the
// router only logs; nothing else can be sent on the wire at that point.
package router
