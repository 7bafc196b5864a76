// Package config handles runtime configuration for the Lambda functions,
// including defaults and the environment overlay.
package config

// Config holds runtime settings for the webhook Lambda.
//
// Fields:
//   - SecretName: Secrets Manager identifier holding the LINE channel
//     credentials. Required; there is no usable default in production.
//   - UploadBucket: S3 bucket receiving uploaded message files. Empty
//     disables the file-upload path (file messages are then ignored).
//   - S3Endpoint: optional custom S3 endpoint for local object storage
//     such as MinIO. Empty means the regular AWS endpoint.
//   - S3AccessKey / S3SecretKey: static credentials, only consulted when
//     S3Endpoint is set.
//   - LogLevel: minimum log level ("debug", "info", "warn", "error").
type Config struct {
	SecretName   string
	UploadBucket string
	S3Endpoint   string
	S3AccessKey  string
	S3SecretKey  string
	LogLevel     string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretName must be overridden via the environment in a real deploy.
func (c *Config) LoadDefaults() {
	c.SecretName = ""
	c.UploadBucket = ""
	c.S3Endpoint = ""
	c.S3AccessKey = ""
	c.S3SecretKey = ""
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults and then overlaying
// values from the environment. Lambda has no command line, so the
// environment is the only overlay source.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	return cfg
}
