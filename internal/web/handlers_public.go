package web

import (
	"fmt"

	"github.com/dmitrymomot/portfolio/core/handler"
	"github.com/dmitrymomot/portfolio/core/logger"
	"github.com/dmitrymomot/portfolio/core/response"
	"github.com/dmitrymomot/portfolio/core/validator"
)

type homePage struct {
	basePage
	Featured []Project
}

type projectsPage struct {
	basePage
	Projects []Project
}

// homeHandler renders the landing page with a couple of featured
// projects.
func homeHandler(app *App) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		all := projects()
		if len(all) > 2 {
			all = all[:2]
		}
		return response.View(app.views, "views/home", homePage{
			basePage: app.page(ctx, "Home", "home"),
			Featured: all,
		})
	}
}

func aboutHandler(app *App) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		return response.View(app.views, "views/about", app.page(ctx, "About", "about"))
	}
}

func projectsHandler(app *App) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		return response.View(app.views, "views/projects", projectsPage{
			basePage: app.page(ctx, "Projects", "projects"),
			Projects: projects(),
		})
	}
}

// contactFormHandler renders the contact form together with any field
// errors and input flashed by a failed submission.
func contactFormHandler(app *App) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		return response.View(app.views, "views/contact", app.page(ctx, "Contact", "contact"))
	}
}

// submitContactHandler persists a valid submission and bounces back to
// the form. A validation failure flashes the field errors plus the
// typed input and redirects, so the next GET re-renders the form with
// them at 200.
func submitContactHandler(app *App) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		var form ContactForm
		if err := ctx.Bind(&form); err != nil {
			if validator.IsValidationError(err) {
				ctx.FlashForm(validator.ExtractValidationErrors(err).Fields(), form.Old())
				return response.RedirectSeeOther("/contact")
			}
			return response.Error(response.ErrBadRequest.WithError(err))
		}

		msg, err := app.messages.Create(ctx, form.Name, form.Email, form.Subject, form.Message)
		if err != nil {
			return response.Error(err)
		}

		app.logger.InfoContext(ctx, "contact message received",
			logger.Component("web.contact"),
			logger.ID("message_id", msg.ID),
		)

		app.notifyNewMessage(ctx, msg)

		ctx.Flash(flashSuccess, fmt.Sprintf("Thanks, %s! Your message has been sent.", form.Name))
		return response.RedirectSeeOther("/contact")
	}
}
