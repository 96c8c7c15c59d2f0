// Package middleware provides composable HTTP middleware for the
// cross-cutting concerns of a server-rendered site: request IDs,
// logging, client IP resolution, body limits, security headers,
// sessions, CSRF protection, and rate limiting.
//
// All middleware follow the same pattern: a generic function over the
// application's context type, a Config struct for customization, a
// default constructor for the common case, and context helpers for
// retrieving stored values.
//
//	r.Use(middleware.RequestID[*web.Context]())
//	r.Use(middleware.LoggingWithLogger[*web.Context](log))
//	r.Use(middleware.ClientIP[*web.Context]())
//	r.Use(middleware.SecurityHeaders[*web.Context]())
//	r.Use(middleware.Session[*web.Context, web.SessionData](transport))
//	r.Use(middleware.CSRF[*web.Context](csrfConfig))
//
// Ordering matters: RequestID before Logging so log lines carry the ID,
// Session before CSRF and RateLimit because both keep their state in
// the session.
//
// Session-dependent middleware (CSRF, RateLimit) are generic over the
// application's session data type and receive accessor functions
// instead of reaching into concrete fields, so the package stays free
// of application imports.
package middleware
