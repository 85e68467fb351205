package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors the environment variables recognized by the server.
// Fields are seeded with the current Config values, so variables that are
// absent from the environment leave the earlier layers untouched.
type envConfig struct {
	EndpointAddrHTTP string `env:"RUN_ADDRESS"`
	DatabaseDSN      string `env:"DATABASE_DSN"`
	SecretKey        string `env:"SECRET_KEY"`
	SigningAlgorithm string `env:"ALGORITHM"`

	AccessTokenExpireMinutes int `env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	RefreshTokenExpireDays   int `env:"REFRESH_TOKEN_EXPIRE_DAYS"`

	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	MailProvider  string `env:"MAIL_PROVIDER"`
	MailFrom      string `env:"MAIL_FROM"`
	SMTPHost      string `env:"SMTP_HOST"`
	SMTPPort      string `env:"SMTP_PORT"`
	SMTPUsername  string `env:"MAIL_USERNAME"`
	SMTPPassword  string `env:"MAIL_PASSWORD"`
	SendGridKey   string `env:"SENDGRID_KEY"`
	MailgunDomain string `env:"MAILGUN_DOMAIN"`
	MailgunKey    string `env:"MAILGUN_KEY"`
}

// parseEnv overlays environment variables onto the config.
func parseEnv(config *Config) error {
	e := envConfig{
		EndpointAddrHTTP:         config.EndpointAddrHTTP,
		DatabaseDSN:              config.DatabaseDSN,
		SecretKey:                config.SecretKey,
		SigningAlgorithm:         config.SigningAlgorithm,
		AccessTokenExpireMinutes: int(config.AccessTokenValidityDuration.Minutes()),
		RefreshTokenExpireDays:   int(config.RefreshTokenValidityDuration.Hours() / 24),
		PublicBaseURL:            config.PublicBaseURL,
		MailProvider:             config.MailProvider,
		MailFrom:                 config.MailFrom,
		SMTPHost:                 config.SMTPHost,
		SMTPPort:                 config.SMTPPort,
		SMTPUsername:             config.SMTPUsername,
		SMTPPassword:             config.SMTPPassword,
		SendGridKey:              config.SendGridKey,
		MailgunDomain:            config.MailgunDomain,
		MailgunKey:               config.MailgunKey,
	}

	if err := env.Parse(&e); err != nil {
		return err
	}

	config.EndpointAddrHTTP = e.EndpointAddrHTTP
	config.DatabaseDSN = e.DatabaseDSN
	config.SecretKey = e.SecretKey
	config.SigningAlgorithm = e.SigningAlgorithm
	config.AccessTokenValidityDuration = time.Duration(e.AccessTokenExpireMinutes) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(e.RefreshTokenExpireDays) * 24 * time.Hour
	config.PublicBaseURL = e.PublicBaseURL
	config.MailProvider = e.MailProvider
	config.MailFrom = e.MailFrom
	config.SMTPHost = e.SMTPHost
	config.SMTPPort = e.SMTPPort
	config.SMTPUsername = e.SMTPUsername
	config.SMTPPassword = e.SMTPPassword
	config.SendGridKey = e.SendGridKey
	config.MailgunDomain = e.MailgunDomain
	config.MailgunKey = e.MailgunKey

	return nil
}
