// Package mail delivers the service's transactional email (verification
// links, duplicate-account warnings, password-reset links) through a
// configurable provider: plain SMTP, SendGrid, or Mailgun.
package mail

import (
	"context"
	"errors"
	"fmt"
)

// Dispatcher sends a single plain-text message. Implementations must be safe
// for concurrent use.
type Dispatcher interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// Config selects and configures a provider. Exactly the block named by
// Provider is consulted.
type Config struct {
	Provider string
	From     string
	SMTP     SMTPConfig
	SendGrid SendGridConfig
	Mailgun  MailgunConfig
}

// NewDispatcher builds the Dispatcher named by cfg.Provider.
func NewDispatcher(cfg Config) (Dispatcher, error) {
	if cfg.From == "" {
		return nil, errors.New("mail: from address is required")
	}
	switch cfg.Provider {
	case "smtp":
		return newSMTPSender(cfg.SMTP, cfg.From)
	case "sendgrid":
		return newSendGridSender(cfg.SendGrid, cfg.From)
	case "mailgun":
		return newMailgunSender(cfg.Mailgun, cfg.From)
	default:
		return nil, fmt.Errorf("mail: unknown provider %q", cfg.Provider)
	}
}
