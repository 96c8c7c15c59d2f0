package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/portfolio/core/handler"
	"github.com/dmitrymomot/portfolio/core/logger"
	"github.com/dmitrymomot/portfolio/core/response"
	"github.com/dmitrymomot/portfolio/core/router"
)

// securityReject answers forged or replayed requests: CSRF failures,
// exhausted rate-limit buckets, and admin actions on unknown ids. It
// flashes one general notice and sends 429 with a Location header back
// to the referring page, so a browser lands where it came from.
func (a *App) securityReject(ctx *Context) handler.Response {
	ctx.Flash(flashError, "Your request could not be processed. Please try again.")
	return response.RedirectWithStatus(refererPath(ctx.Request()), http.StatusTooManyRequests)
}

// refererPath resolves the bounce-back target for rejections. Only the
// path of an on-site Referer is used; anything else falls back to /.
func refererPath(r *http.Request) string {
	ref := r.Header.Get("Referer")
	if ref == "" {
		return "/"
	}

	u, err := url.Parse(ref)
	if err != nil || u.Path == "" {
		return "/"
	}
	if u.IsAbs() && u.Host != r.Host {
		return "/"
	}

	return u.Path
}

// errorHandler turns unhandled errors into plain-text responses. Pages
// that matter render through handlers; everything landing here is
// either a missing route, a recovered panic, or a failed dependency.
func (a *App) errorHandler() handler.ErrorHandler[*Context] {
	return func(ctx *Context, err error) {
		w := ctx.ResponseWriter()

		if ww, ok := w.(interface{ Written() bool }); ok && ww.Written() {
			return
		}

		var panicErr router.PanicError
		if errors.As(err, &panicErr) {
			a.logger.ErrorContext(ctx, "panic recovered",
				logger.Component("web"),
				logger.Error(err),
				"stack", string(panicErr.Stack()),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if errors.Is(err, router.ErrNotFound) {
			http.Error(w, "404 page not found", http.StatusNotFound)
			return
		}

		var httpErr response.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.Status >= http.StatusInternalServerError {
				a.logger.ErrorContext(ctx, "request failed",
					logger.Component("web"),
					logger.Error(err),
				)
			}
			msg := httpErr.Message
			if msg == "" {
				msg = http.StatusText(httpErr.Status)
			}
			http.Error(w, msg, httpErr.Status)
			return
		}

		a.logger.ErrorContext(ctx, "request failed",
			logger.Component("web"),
			logger.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
