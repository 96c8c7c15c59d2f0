// Package health provides HTTP handlers for service health monitoring.
//
// Handlers:
//   - Liveness: process is running (no dependency checks)
//   - Readiness: all dependencies are available
//   - NoContent: returns 204 for minimal overhead
//
// Usage:
//
//	r.Get("/healthz", health.Liveness[*web.Context])
//	r.Get("/healthz/ready", health.Readiness[*web.Context](log, db.Ping))
//
// Dependency checks follow the func(context.Context) error signature.
package health
