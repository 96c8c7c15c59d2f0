package web

import (
	"context"
	"time"

	"github.com/dmitrymomot/portfolio/core/handler"
	"github.com/dmitrymomot/portfolio/core/health"
	"github.com/dmitrymomot/portfolio/core/logger"
	"github.com/dmitrymomot/portfolio/core/response"
	"github.com/dmitrymomot/portfolio/core/router"
	"github.com/dmitrymomot/portfolio/core/static"
	"github.com/dmitrymomot/portfolio/middleware"
	"github.com/dmitrymomot/portfolio/pkg/ratelimiter"
)

// Router assembles the route table. Optional readiness checks, such as
// the storage ping, back the /readyz endpoint.
func (a *App) Router(readyChecks ...func(context.Context) error) router.Router[*Context] {
	r := router.New[*Context](
		router.WithContextFactory[*Context](NewContext),
		router.WithErrorHandler[*Context](a.errorHandler()),
		router.WithLogger[*Context](a.logger),
		router.WithMiddleware(
			middleware.RequestID[*Context](),
			middleware.ClientIP[*Context](),
			middleware.SecurityHeaders[*Context](),
			middleware.BodyLimitWithSize[*Context](64<<10),
			middleware.LoggingWithLogger[*Context](a.logger.With(logger.Component("http"))),
		),
	)

	// Plumbing outside the session: probes and static assets.
	r.Get("/healthz", health.Liveness[*Context])
	r.Get("/readyz", health.Readiness[*Context](a.logger, readyChecks...))
	r.Get("/static/*", static.FS[*Context](assets,
		static.WithSubFS("static"),
		static.WithStripPrefix("/static"),
	))

	// Public pages. Every route carries the session; CSRF guards the
	// contact and logout POSTs.
	r.Group(func(pages router.Router[*Context]) {
		pages.Use(
			middleware.SessionWithConfig(middleware.SessionConfig[*Context, SessionData]{
				Transport: a.transport,
				Logger:    a.logger,
			}),
			a.csrf(),
		)

		pages.Get("/", homeHandler(a))
		pages.Get("/about", aboutHandler(a))
		pages.Get("/projects", projectsHandler(a))
		pages.Get("/contact", contactFormHandler(a))
		pages.With(a.rateLimit(a.contactLimit, bucketContact)).Post("/contact", submitContactHandler(a))
		pages.Post("/logout", logoutHandler(a))
	})

	// Sign-in is for guests; an authenticated admin goes straight to
	// the dashboard.
	r.Group(func(guest router.Router[*Context]) {
		guest.Use(
			middleware.SessionWithConfig(middleware.SessionConfig[*Context, SessionData]{
				Transport:    a.transport,
				Logger:       a.logger,
				RequireGuest: true,
				ErrorHandler: func(ctx *Context, err error) handler.Response {
					return response.RedirectSeeOther("/admin/dashboard")
				},
			}),
			a.csrf(),
		)

		guest.Get("/login", loginFormHandler(a))
		guest.With(a.rateLimit(a.loginLimit, bucketLogin)).Post("/login", loginHandler(a))
	})

	// The admin inbox, behind the auth gate.
	r.Group(func(admin router.Router[*Context]) {
		admin.Use(
			middleware.SessionWithConfig(middleware.SessionConfig[*Context, SessionData]{
				Transport:   a.transport,
				Logger:      a.logger,
				RequireAuth: true,
				ErrorHandler: func(ctx *Context, err error) handler.Response {
					ctx.Flash(flashError, "Please sign in to continue.")
					return response.RedirectSeeOther("/login")
				},
			}),
			a.csrf(),
		)

		admin.Get("/admin/dashboard", dashboardHandler(a))
		admin.Get("/admin/messages", messagesHandler(a))
		admin.Post("/admin/messages/{id}/toggle-read", toggleReadHandler(a))
		admin.Post("/admin/messages/{id}/delete", deleteMessageHandler(a))
	})

	return r
}

// csrf builds the token guard shared by every sessioned group.
// Failures walk the security-rejection path.
func (a *App) csrf() handler.Middleware[*Context] {
	return middleware.CSRF[*Context](middleware.CSRFConfig[*Context, SessionData]{
		TokenFromData:  csrfTokenFromData,
		SetTokenInData: setCSRFTokenInData,
		ErrorHandler: func(ctx *Context, err error) handler.Response {
			return a.securityReject(ctx)
		},
	})
}

// rateLimit throttles a POST route against a named session bucket.
// Exhausted buckets walk the security-rejection path.
func (a *App) rateLimit(limiter *ratelimiter.Limiter, bucket string) handler.Middleware[*Context] {
	return middleware.RateLimit[*Context](middleware.RateLimitConfig[*Context, SessionData]{
		Limiter:           limiter,
		Bucket:            bucket,
		AttemptsFromData:  attemptsFromData,
		SetAttemptsInData: setAttemptsInData,
		ErrorHandler: func(ctx *Context, retryAfter time.Duration) handler.Response {
			return a.securityReject(ctx)
		},
		SetHeaders: true,
	})
}
