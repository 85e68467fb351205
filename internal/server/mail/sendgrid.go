package mail

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridConfig holds the SendGrid API key.
type SendGridConfig struct {
	Key string
}

// SendGridSender delivers mail through the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
	from   string
}

func newSendGridSender(cfg SendGridConfig, from string) (*SendGridSender, error) {
	if cfg.Key == "" {
		return nil, errors.New("mail: SendGrid key is required")
	}
	return &SendGridSender{client: sendgrid.NewSendClient(cfg.Key), from: from}, nil
}

func (s *SendGridSender) Send(ctx context.Context, recipient, subject, body string) error {
	message := sgmail.NewSingleEmail(
		sgmail.NewEmail("Murof", s.from),
		subject,
		sgmail.NewEmail("", recipient),
		body,
		"",
	)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("mail: sendgrid send: %w", err)
	}
	if response.StatusCode != http.StatusAccepted {
		return fmt.Errorf("mail: sendgrid send: status %d", response.StatusCode)
	}
	return nil
}
