package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
)

// MailgunConfig holds the Mailgun API key and sending domain.
type MailgunConfig struct {
	Key    string
	Domain string
}

// MailgunSender delivers mail through the Mailgun API.
type MailgunSender struct {
	mg   *mailgun.MailgunImpl
	from string
}

func newMailgunSender(cfg MailgunConfig, from string) (*MailgunSender, error) {
	if cfg.Key == "" || cfg.Domain == "" {
		return nil, errors.New("mail: incomplete Mailgun configuration")
	}
	return &MailgunSender{mg: mailgun.NewMailgun(cfg.Domain, cfg.Key), from: from}, nil
}

func (s *MailgunSender) Send(ctx context.Context, recipient, subject, body string) error {
	message := s.mg.NewMessage(s.from, subject, body, recipient)

	if _, _, err := s.mg.Send(ctx, message); err != nil {
		return fmt.Errorf("mail: mailgun send: %w", err)
	}
	return nil
}
