package web

import (
	"github.com/dmitrymomot/portfolio/core/handler"
	"github.com/dmitrymomot/portfolio/core/logger"
	"github.com/dmitrymomot/portfolio/core/response"
	"github.com/dmitrymomot/portfolio/core/validator"
	"github.com/dmitrymomot/portfolio/middleware"
)

// loginFormHandler renders the sign-in form. The route group keeps
// authenticated visitors out.
func loginFormHandler(app *App) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		return response.View(app.views, "views/login", app.page(ctx, "Sign in", "login"))
	}
}

// loginHandler authenticates the admin and upgrades the session. Both
// the session token and the CSRF token rotate across the privilege
// boundary.
func loginHandler(app *App) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		var form LoginForm
		if err := ctx.Bind(&form); err != nil {
			if validator.IsValidationError(err) {
				ctx.FlashForm(validator.ExtractValidationErrors(err).Fields(), form.Old())
				return response.RedirectSeeOther("/login")
			}
			return response.Error(response.ErrBadRequest.WithError(err))
		}

		if err := app.admin.Authenticate(form.Email, form.Password); err != nil {
			ip, _ := middleware.GetClientIP(ctx)
			app.logger.WarnContext(ctx, "failed login attempt",
				logger.Component("web.auth"),
				logger.ClientIP(ip),
			)
			ctx.Flash(flashError, "Invalid email or password.")
			ctx.FlashForm(nil, form.Old())
			return response.RedirectSeeOther("/login")
		}

		sess, ok := ctx.Session()
		if !ok {
			return response.Error(response.ErrInternalServerError)
		}

		token, err := middleware.NewCSRFToken()
		if err != nil {
			return response.Error(err)
		}

		// Authenticate swaps in fresh session data, dropping the
		// anonymous flash and rate-limit state along with the old CSRF
		// token.
		if err := sess.Authenticate(app.admin.ID, SessionData{CSRFToken: token}); err != nil {
			return response.Error(err)
		}
		ctx.SetSession(sess)

		app.logger.InfoContext(ctx, "admin signed in", logger.Component("web.auth"))

		ctx.Flash(flashSuccess, "Welcome back.")
		return response.RedirectSeeOther("/admin/dashboard")
	}
}

// logoutHandler destroys the session. The transport deletes both the
// store row and the cookie on save.
func logoutHandler(app *App) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		if sess, ok := ctx.Session(); ok {
			sess.Logout()
			ctx.SetSession(sess)
			app.logger.InfoContext(ctx, "admin signed out", logger.Component("web.auth"))
		}
		return response.RedirectSeeOther("/")
	}
}
