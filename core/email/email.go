package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
)

// EmailSender abstracts email delivery so callers stay provider-agnostic.
// Production deployments plug in a real provider; development uses DevSender.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams carries everything needed to deliver one email.
type SendEmailParams struct {
	SendTo   string // recipient address
	Subject  string
	BodyHTML string
	Tag      string // optional category for filtering and filenames
}

// Validate checks the params before any provider work happens.
// The recipient must parse as an RFC 5322 address.
func (p SendEmailParams) Validate() error {
	if strings.TrimSpace(p.SendTo) == "" {
		return fmt.Errorf("%w: recipient address is required", ErrInvalidParams)
	}
	if _, err := mail.ParseAddress(p.SendTo); err != nil {
		return fmt.Errorf("%w: recipient address %q: %v", ErrInvalidParams, p.SendTo, err)
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.BodyHTML) == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidParams)
	}
	return nil
}
