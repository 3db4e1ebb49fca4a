package config

import (
	"encoding/json"
	"os"

	"github.com/snackswap/snackswap/internal/flagx"
	"github.com/snackswap/snackswap/internal/timex"
)

// JSONConfig is an intermediate DTO used only for reading JSON configuration
// files. Interval fields use timex.Duration so both "15m" strings and integer
// nanoseconds parse. After unmarshalling, values are copied into the runtime
// Config.
type JSONConfig struct {
	EndpointAddr                 string         `json:"endpoint_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	OTPValidityDuration          timex.Duration `json:"otp_validity_duration"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	S3PublicBaseURL              string         `json:"s3_public_base_url"`
	EmailAPIEndpoint             string         `json:"email_api_endpoint"`
	EmailAPIKey                  string         `json:"email_api_key"`
	EmailSignupTemplate          string         `json:"email_signup_template"`
	EmailResetTemplate           string         `json:"email_reset_template"`
}

// parseJSON overlays values from the JSON file named by -c/-config, if any.
// A missing flag means no file is loaded; an unreadable or invalid file
// panics, since the server cannot safely guess at half a configuration.
func parseJSON(config *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JSONConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration != 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.OTPValidityDuration.Duration != 0 {
		config.OTPValidityDuration = c.OTPValidityDuration.Duration
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.S3PublicBaseURL != "" {
		config.S3PublicBaseURL = c.S3PublicBaseURL
	}
	if c.EmailAPIEndpoint != "" {
		config.EmailAPIEndpoint = c.EmailAPIEndpoint
	}
	if c.EmailAPIKey != "" {
		config.EmailAPIKey = c.EmailAPIKey
	}
	if c.EmailSignupTemplate != "" {
		config.EmailSignupTemplate = c.EmailSignupTemplate
	}
	if c.EmailResetTemplate != "" {
		config.EmailResetTemplate = c.EmailResetTemplate
	}
}
