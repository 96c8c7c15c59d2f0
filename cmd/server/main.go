package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/portfolio/core/config"
	"github.com/dmitrymomot/portfolio/core/cookie"
	"github.com/dmitrymomot/portfolio/core/email"
	"github.com/dmitrymomot/portfolio/core/logger"
	"github.com/dmitrymomot/portfolio/core/server"
	"github.com/dmitrymomot/portfolio/core/session"
	"github.com/dmitrymomot/portfolio/core/sessiontransport"
	"github.com/dmitrymomot/portfolio/internal/storage"
	"github.com/dmitrymomot/portfolio/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	logOpt := logger.WithDevelopment(cfg.AppName)
	if cfg.AppEnv == "production" {
		logOpt = logger.WithProduction(cfg.AppName)
	}
	log := logger.New(logOpt)

	// Open the database and prepare the schema
	db, err := storage.Open(cfg.DB, log.With(logger.Component("storage")))
	if err != nil {
		log.Error("Failed to open database", logger.Component("storage"), logger.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	messages := storage.NewMessageRepository(db)

	// Setup session manager backed by the same database
	sesMgr := session.NewManager(
		storage.NewSessionStore[web.SessionData](db),
		session.WithTTL(cfg.SessionTTL),
		session.WithTouchInterval(cfg.SessionTouchInterval),
	)

	// Setup cookie manager
	cookieMgr, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		log.Error("Failed to create cookie manager", logger.Component("cookie"), logger.Error(err))
		os.Exit(1)
	}

	// Setup cookie-based session transport
	sesCookie := sessiontransport.NewCookieFromConfig(cfg.SessionTransport, sesMgr, cookieMgr)

	var appOpts []web.Option
	if cfg.Web.NotifyEmail != "" {
		appOpts = append(appOpts, web.WithEmailSender(email.NewDevSender(cfg.EmailDir)))
	}

	app, err := web.NewApp(cfg.Web, log, messages, sesCookie, appOpts...)
	if err != nil {
		log.Error("Failed to build application", logger.Component("web"), logger.Error(err))
		os.Exit(1)
	}

	r := app.Router(db.Ping)

	eg, ctx := errgroup.WithContext(ctx)

	s, err := server.NewFromConfig(cfg.Server)
	if err != nil {
		log.Error("Failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}
	eg.Go(s.Run(ctx, r))

	// Drop expired sessions in the background so the table does not
	// grow without bound.
	eg.Go(func() error {
		ticker := time.NewTicker(cfg.SessionGCInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				n, err := sesMgr.CleanupExpired(ctx)
				if err != nil {
					log.Warn("Session cleanup failed", logger.Component("session.gc"), logger.Error(err))
					continue
				}
				if n > 0 {
					log.Info("Expired sessions removed", logger.Component("session.gc"), slog.Int64("count", n))
				}
			}
		}
	})

	if err := eg.Wait(); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}
