package config

import "os"

// parseEnv populates selected Config fields from environment variables.
//
// Supported variables:
//
//	SECRET_NAME    Secrets Manager identifier with the channel credentials
//	UPLOAD_BUCKET  S3 bucket for uploaded message files
//	S3_ENDPOINT    custom S3 endpoint (e.g. "http://127.0.0.1:9000/")
//	S3_ACCESS_KEY  static access key for the custom endpoint
//	S3_SECRET_KEY  static secret key for the custom endpoint
//	LOG_LEVEL      minimum log level
//
// Unset variables leave the current (default) value untouched.
func parseEnv(config *Config) {
	setIfPresent(&config.SecretName, "SECRET_NAME")
	setIfPresent(&config.UploadBucket, "UPLOAD_BUCKET")
	setIfPresent(&config.S3Endpoint, "S3_ENDPOINT")
	setIfPresent(&config.S3AccessKey, "S3_ACCESS_KEY")
	setIfPresent(&config.S3SecretKey, "S3_SECRET_KEY")
	setIfPresent(&config.LogLevel, "LOG_LEVEL")
}

func setIfPresent(target *string, name string) {
	if v, ok := os.LookupEnv(name); ok {
		*target = v
	}
}
