package web

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/portfolio/core/email"
	"github.com/dmitrymomot/portfolio/core/templates"
	"github.com/dmitrymomot/portfolio/internal/storage"
	"github.com/dmitrymomot/portfolio/middleware"
	"github.com/dmitrymomot/portfolio/pkg/ratelimiter"
)

// App wires the handlers' shared dependencies and owns the route table.
type App struct {
	cfg       Config
	logger    *slog.Logger
	views     *templates.Engine
	messages  *storage.MessageRepository
	admin     *Admin
	transport middleware.SessionTransport[SessionData]
	mail      email.EmailSender

	contactLimit *ratelimiter.Limiter
	loginLimit   *ratelimiter.Limiter
}

// Option customizes optional application dependencies.
type Option func(*App)

// WithEmailSender enables new-message notifications through the given
// sender. Without it submissions are stored but nobody is emailed.
func WithEmailSender(sender email.EmailSender) Option {
	return func(a *App) {
		a.mail = sender
	}
}

// NewApp builds the application: admin credentials from config, the
// embedded template engine, and the per-form rate limiters.
func NewApp(cfg Config, logger *slog.Logger, messages *storage.MessageRepository, transport middleware.SessionTransport[SessionData], opts ...Option) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	admin, err := NewAdmin(cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return nil, err
	}

	views, err := templates.New(templatesFS())
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	contactLimit, err := ratelimiter.New(cfg.ContactRateLimitAttempts, cfg.ContactRateLimitWindow)
	if err != nil {
		return nil, fmt.Errorf("contact rate limiter: %w", err)
	}

	loginLimit, err := ratelimiter.New(cfg.LoginRateLimitAttempts, cfg.LoginRateLimitWindow)
	if err != nil {
		return nil, fmt.Errorf("login rate limiter: %w", err)
	}

	app := &App{
		cfg:          cfg,
		logger:       logger,
		views:        views,
		messages:     messages,
		admin:        admin,
		transport:    transport,
		contactLimit: contactLimit,
		loginLimit:   loginLimit,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app, nil
}

// basePage is the chrome every view and the layout read: site identity,
// nav state, the session's one-shot flash state, and the CSRF token for
// forms. Page types embed it and add their own payload.
type basePage struct {
	Site   string
	Title  string
	Active string
	Flash  map[string]string
	Errors map[string][]string
	Old    map[string]string
	CSRF   string
	Authed bool
}

// page builds the chrome for a render, consuming the session's pending
// flash state. The layout shows flashes on every page, so pulling here
// keeps them one-shot.
func (a *App) page(ctx *Context, title, active string) basePage {
	fl := ctx.PullFlashes()
	return basePage{
		Site:   a.cfg.SiteName,
		Title:  title,
		Active: active,
		Flash:  fl.Notices,
		Errors: fl.Errors,
		Old:    fl.Old,
		CSRF:   ctx.CSRFToken(),
		Authed: ctx.IsAuthenticated(),
	}
}
