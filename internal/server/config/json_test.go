package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestParseJson_Overlay(t *testing.T) {
	path := writeConfigFile(t, `{
		"endpoint_addr_http": ":7070",
		"secret_key": "json-secret",
		"access_token_validity_duration": "10m",
		"refresh_token_validity_duration": "48h",
		"mail_provider": "mailgun",
		"mailgun_domain": "mg.murof.net",
		"mailgun_key": "mg-key"
	}`)

	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"authserver", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseJson(cfg))

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 10*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 48*time.Hour, cfg.RefreshTokenValidityDuration)
	assert.Equal(t, "mailgun", cfg.MailProvider)

	// fields absent from the file keep their defaults
	assert.Equal(t, 24*time.Hour, cfg.VerificationTokenValidityDuration)
	assert.Equal(t, "no-reply@murof.net", cfg.MailFrom)
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"authserver"}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseJson(cfg))
	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
}

func TestParseJson_MissingFile(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"authserver", "-c", "/nonexistent/server.json"}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.Error(t, parseJson(cfg))
}

func TestParseJson_InvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"authserver", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.Error(t, parseJson(cfg))
}
