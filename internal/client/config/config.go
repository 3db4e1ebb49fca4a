// Package config handles configuration for the terminal client.
package config

import "time"

// Config holds runtime settings for the snackswap CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend HTTP API.
//   - RequestTimeout: per-request timeout on API calls.
//   - ResendCooldown: minimum wait between "resend code" requests.
//   - OTPCountdown: how long the client counts down before a code expires.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	ResendCooldown     time.Duration
	OTPCountdown       time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.ResendCooldown = 60 * time.Second
	c.OTPCountdown = 600 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
