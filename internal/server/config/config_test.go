package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 10*time.Minute, c.OTPValidityDuration)
	assert.NotEmpty(t, c.DatabaseDSN)
	assert.NotEmpty(t, c.S3Bucket)
}

func TestParseJSON_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	body := `{
		"endpoint_addr": ":9999",
		"secret_key": "k2",
		"access_token_validity_duration": "30m",
		"email_api_key": "mailkey"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	oldArgs := os.Args
	os.Args = []string{"server", "-c", path}
	defer func() { os.Args = oldArgs }()

	c := &Config{}
	c.LoadDefaults()
	parseJSON(c)

	assert.Equal(t, ":9999", c.EndpointAddr)
	assert.Equal(t, "k2", c.SecretKey)
	assert.Equal(t, 30*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "mailkey", c.EmailAPIKey)
	// untouched fields keep their defaults
	assert.Equal(t, 24*time.Hour, c.RefreshTokenValidityDuration)
}

func TestParseJSON_NoFlag(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"server"}
	defer func() { os.Args = oldArgs }()

	c := &Config{}
	c.LoadDefaults()
	parseJSON(c)
	assert.Equal(t, ":8080", c.EndpointAddr)
}

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"server", "-a", ":7070", "-t", "5", "-k", "secret-mail"}
	defer func() { os.Args = oldArgs }()

	c := &Config{}
	c.LoadDefaults()
	parseFlags(c)

	assert.Equal(t, ":7070", c.EndpointAddr)
	assert.Equal(t, 5*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "secret-mail", c.EmailAPIKey)
}
