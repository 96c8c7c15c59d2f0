package web

import (
	"fmt"
	"html/template"

	"github.com/dmitrymomot/portfolio/core/email"
	"github.com/dmitrymomot/portfolio/core/logger"
	"github.com/dmitrymomot/portfolio/internal/storage"
)

// notifyNewMessage emails the site owner about a fresh contact message.
// Delivery is best effort: a failure is logged and the visitor flow is
// unaffected. No-op unless both a sender and a recipient are configured.
func (a *App) notifyNewMessage(ctx *Context, msg storage.Message) {
	if a.mail == nil || a.cfg.NotifyEmail == "" {
		return
	}

	esc := template.HTMLEscapeString
	body := fmt.Sprintf(
		"<p><strong>%s</strong> &lt;%s&gt; wrote:</p><h3>%s</h3><pre>%s</pre>",
		esc(msg.Name), esc(msg.Email), esc(msg.Subject), esc(msg.Body),
	)

	err := a.mail.SendEmail(ctx, email.SendEmailParams{
		SendTo:   a.cfg.NotifyEmail,
		Subject:  fmt.Sprintf("New contact message from %s", msg.Name),
		BodyHTML: body,
		Tag:      "contact-message",
	})
	if err != nil {
		a.logger.WarnContext(ctx, "contact notification failed",
			logger.Component("web.contact"),
			logger.ID("message_id", msg.ID),
			logger.Error(err),
		)
	}
}
