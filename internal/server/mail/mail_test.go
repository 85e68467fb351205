package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(provider string) Config {
	return Config{
		Provider: provider,
		From:     "no-reply@murof.net",
		SMTP: SMTPConfig{
			Host:     "smtp.example.com",
			Port:     "587",
			Username: "user",
			Password: "pass",
		},
		SendGrid: SendGridConfig{Key: "sg-key"},
		Mailgun:  MailgunConfig{Key: "mg-key", Domain: "mg.murof.net"},
	}
}

func TestNewDispatcher_ProviderSelection(t *testing.T) {
	tests := []struct {
		provider string
		want     any
	}{
		{"smtp", &SMTPSender{}},
		{"sendgrid", &SendGridSender{}},
		{"mailgun", &MailgunSender{}},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			d, err := NewDispatcher(validConfig(tt.provider))
			require.NoError(t, err)
			require.IsType(t, tt.want, d)
		})
	}
}

func TestNewDispatcher_Errors(t *testing.T) {
	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewDispatcher(validConfig("pigeon"))
		require.Error(t, err)
	})

	t.Run("missing from", func(t *testing.T) {
		cfg := validConfig("smtp")
		cfg.From = ""
		_, err := NewDispatcher(cfg)
		require.Error(t, err)
	})

	t.Run("incomplete smtp", func(t *testing.T) {
		cfg := validConfig("smtp")
		cfg.SMTP.Password = ""
		_, err := NewDispatcher(cfg)
		require.Error(t, err)
	})

	t.Run("missing sendgrid key", func(t *testing.T) {
		cfg := validConfig("sendgrid")
		cfg.SendGrid.Key = ""
		_, err := NewDispatcher(cfg)
		require.Error(t, err)
	})

	t.Run("incomplete mailgun", func(t *testing.T) {
		cfg := validConfig("mailgun")
		cfg.Mailgun.Domain = ""
		_, err := NewDispatcher(cfg)
		require.Error(t, err)
	})
}

func TestSMTPSender_Send(t *testing.T) {
	orig := sendMail
	defer func() { sendMail = orig }()

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	d, err := NewDispatcher(validConfig("smtp"))
	require.NoError(t, err)

	err = d.Send(context.Background(), "a@x.com", "Subject line", "body text")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "no-reply@murof.net", gotFrom)
	assert.Equal(t, []string{"a@x.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Subject line")
	assert.Contains(t, string(gotMsg), "body text")
}

func TestSMTPSender_SendError(t *testing.T) {
	orig := sendMail
	defer func() { sendMail = orig }()
	sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		return errors.New("relay down")
	}

	d, err := NewDispatcher(validConfig("smtp"))
	require.NoError(t, err)

	require.Error(t, d.Send(context.Background(), "a@x.com", "s", "b"))
}

func TestSMTPSender_CancelledContext(t *testing.T) {
	d, err := NewDispatcher(validConfig("smtp"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, d.Send(ctx, "a@x.com", "s", "b"))
}

func TestTemplates(t *testing.T) {
	base := "https://api.murof.net"

	t.Run("verification", func(t *testing.T) {
		subject, body := VerificationEmail(base, "alice", "a@x.com", "tok123")
		assert.Equal(t, "Activating your Murof account", subject)
		assert.Contains(t, body, base+"/auth/verify/tok123")
		assert.Contains(t, body, "alice")
	})

	t.Run("warning", func(t *testing.T) {
		subject, body := WarningEmail("mallory", "a@x.com")
		assert.Equal(t, "Murof account warning", subject)
		assert.Contains(t, body, "mallory")
		assert.Contains(t, body, "a@x.com")
		assert.False(t, strings.Contains(body, "/auth/verify/"), "warning mail must not carry a verification link")
	})

	t.Run("reset", func(t *testing.T) {
		subject, body := PasswordResetEmail(base, "alice", "a@x.com", "tok456")
		assert.Equal(t, "Resetting your Murof password", subject)
		assert.Contains(t, body, base+"/auth/reset?token=tok456")
	})
}
