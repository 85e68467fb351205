package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
)

// SMTPConfig holds settings for delivery through a plain SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
}

// SMTPSender delivers mail via net/smtp with PLAIN auth.
type SMTPSender struct {
	cfg  SMTPConfig
	from string
}

func newSMTPSender(cfg SMTPConfig, from string) (*SMTPSender, error) {
	if cfg.Host == "" || cfg.Port == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("mail: incomplete SMTP configuration")
	}
	return &SMTPSender{cfg: cfg, from: from}, nil
}

// sendMail is a seam for testing smtp.SendMail.
var sendMail = smtp.SendMail

func (s *SMTPSender) Send(ctx context.Context, recipient, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	msg := fmt.Appendf(nil, "From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.from, recipient, subject, body)

	addr := s.cfg.Host + ":" + s.cfg.Port
	if err := sendMail(addr, auth, s.from, []string{recipient}, msg); err != nil {
		return fmt.Errorf("mail: smtp send: %w", err)
	}
	return nil
}
