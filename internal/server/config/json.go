package config

import (
	"encoding/json"
	"os"

	"github.com/murof-net/auth/internal/flagx"
	"github.com/murof-net/auth/internal/timex"
)

// JsonConfig is the DTO used for reading a JSON configuration file. Duration
// fields accept both "30m"-style strings and integer nanoseconds. Values are
// copied into the runtime Config; zero-valued fields are skipped so the file
// may override only a subset of settings.
type JsonConfig struct {
	EndpointAddrHTTP string `json:"endpoint_addr_http"`
	DatabaseDSN      string `json:"database_dsn"`
	SecretKey        string `json:"secret_key"`
	SigningAlgorithm string `json:"signing_algorithm"`

	AccessTokenValidityDuration       timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration      timex.Duration `json:"refresh_token_validity_duration"`
	VerificationTokenValidityDuration timex.Duration `json:"verification_token_validity_duration"`
	ResetTokenValidityDuration        timex.Duration `json:"reset_token_validity_duration"`

	PublicBaseURL string `json:"public_base_url"`

	MailProvider  string `json:"mail_provider"`
	MailFrom      string `json:"mail_from"`
	SMTPHost      string `json:"smtp_host"`
	SMTPPort      string `json:"smtp_port"`
	SMTPUsername  string `json:"smtp_username"`
	SMTPPassword  string `json:"smtp_password"`
	SendGridKey   string `json:"sendgrid_key"`
	MailgunDomain string `json:"mailgun_domain"`
	MailgunKey    string `json:"mailgun_key"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flags. When neither flag is present, nothing is loaded.
func parseJson(config *Config) error {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.SigningAlgorithm, c.SigningAlgorithm)
	setString(&config.PublicBaseURL, c.PublicBaseURL)
	setString(&config.MailProvider, c.MailProvider)
	setString(&config.MailFrom, c.MailFrom)
	setString(&config.SMTPHost, c.SMTPHost)
	setString(&config.SMTPPort, c.SMTPPort)
	setString(&config.SMTPUsername, c.SMTPUsername)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.SendGridKey, c.SendGridKey)
	setString(&config.MailgunDomain, c.MailgunDomain)
	setString(&config.MailgunKey, c.MailgunKey)

	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration != 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.VerificationTokenValidityDuration.Duration != 0 {
		config.VerificationTokenValidityDuration = c.VerificationTokenValidityDuration.Duration
	}
	if c.ResetTokenValidityDuration.Duration != 0 {
		config.ResetTokenValidityDuration = c.ResetTokenValidityDuration.Duration
	}

	return nil
}
