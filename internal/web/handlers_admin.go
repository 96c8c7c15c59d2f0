package web

import (
	"errors"
	"strconv"

	"github.com/dmitrymomot/portfolio/core/handler"
	"github.com/dmitrymomot/portfolio/core/logger"
	"github.com/dmitrymomot/portfolio/core/response"
	"github.com/dmitrymomot/portfolio/internal/storage"
)

type dashboardPage struct {
	basePage
	Total  int64
	Unread int64
}

type messagesPage struct {
	basePage
	Messages []storage.Message
	Total    int64
	Unread   int64
}

// dashboardHandler shows the inbox counters.
func dashboardHandler(app *App) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		total, err := app.messages.Count(ctx)
		if err != nil {
			return response.Error(err)
		}
		unread, err := app.messages.CountUnread(ctx)
		if err != nil {
			return response.Error(err)
		}

		return response.View(app.views, "views/dashboard", dashboardPage{
			basePage: app.page(ctx, "Dashboard", "dashboard"),
			Total:    total,
			Unread:   unread,
		})
	}
}

// messagesHandler lists the inbox newest-first.
func messagesHandler(app *App) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		msgs, err := app.messages.FindAll(ctx)
		if err != nil {
			return response.Error(err)
		}
		unread, err := app.messages.CountUnread(ctx)
		if err != nil {
			return response.Error(err)
		}

		return response.View(app.views, "views/messages", messagesPage{
			basePage: app.page(ctx, "Messages", "messages"),
			Messages: msgs,
			Total:    int64(len(msgs)),
			Unread:   unread,
		})
	}
}

// toggleReadHandler flips a message's read flag. An unknown id walks
// the security-rejection path, the same as a forged token: the id was
// either guessed or belongs to a stale page.
func toggleReadHandler(app *App) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
		if err != nil {
			return app.securityReject(ctx)
		}

		msg, err := app.messages.Find(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrMessageNotFound) {
				return app.securityReject(ctx)
			}
			return response.Error(err)
		}

		if err := app.messages.UpdateReadStatus(ctx, id, !msg.Read); err != nil {
			if errors.Is(err, storage.ErrMessageNotFound) {
				return app.securityReject(ctx)
			}
			return response.Error(err)
		}

		return response.RedirectSeeOther("/admin/messages")
	}
}

// deleteMessageHandler removes a message. Unknown ids reject like any
// other forged admin action.
func deleteMessageHandler(app *App) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
		if err != nil {
			return app.securityReject(ctx)
		}

		if err := app.messages.Delete(ctx, id); err != nil {
			if errors.Is(err, storage.ErrMessageNotFound) {
				return app.securityReject(ctx)
			}
			return response.Error(err)
		}

		app.logger.InfoContext(ctx, "message deleted",
			logger.Component("web.admin"),
			logger.ID("message_id", id),
		)

		ctx.Flash(flashSuccess, "Message deleted.")
		return response.RedirectSeeOther("/admin/messages")
	}
}
