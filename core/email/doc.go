// Package email abstracts outbound email behind the EmailSender interface
// so the application never depends on a concrete provider.
//
// DevSender is the built-in development implementation: it writes each
// email to disk as an HTML file plus a JSON metadata sidecar, which makes
// locally triggered notifications inspectable without an SMTP server.
//
//	sender := email.NewDevSender("./tmp/emails")
//
//	err := sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "owner@example.com",
//		Subject:  "New message from your portfolio",
//		BodyHTML: body,
//		Tag:      "contact_notification",
//	})
//
// Production deployments implement EmailSender against their provider of
// choice and swap it in at wiring time.
package email
