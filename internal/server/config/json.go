package config

import (
	"encoding/json"
	"os"
	"time"

	"gestoria/internal/flagx"
	"gestoria/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the token lifetime either
// as a string like "15m" or as integer nanoseconds. Fields are pointers so
// an absent key leaves the current Config value untouched while an explicit
// zero still overrides it.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	UploadBase                  *string         `json:"upload_base"`
	MaxUploadBytes              *int64          `json:"max_upload_bytes"`
	FileStore                   *string         `json:"file_store"`
	S3RootUser                  *string         `json:"s3_root_user"`
	S3RootPassword              *string         `json:"s3_root_password"`
	S3Bucket                    *string         `json:"s3_bucket"`
	S3Region                    *string         `json:"s3_region"`
	S3BaseEndpoint              *string         `json:"s3_base_endpoint"`
	WebhookURL                  *string         `json:"webhook_url"`
	WebhookSecret               *string         `json:"webhook_secret"`
	DisplayTimeZone             *string         `json:"display_tz"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.ConfigFilePath().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies the keys present in the file into the provided Config.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseEnv -> parseFlags, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.ConfigFilePath()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddrHTTP != nil {
		cfg.EndpointAddrHTTP = *jc.EndpointAddrHTTP
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.AccessTokenValidityDuration != nil {
		cfg.AccessTokenValidityDuration = time.Duration(jc.AccessTokenValidityDuration.Duration)
	}
	if jc.UploadBase != nil {
		cfg.UploadBase = *jc.UploadBase
	}
	if jc.MaxUploadBytes != nil {
		cfg.MaxUploadBytes = *jc.MaxUploadBytes
	}
	if jc.FileStore != nil {
		cfg.FileStore = *jc.FileStore
	}
	if jc.S3RootUser != nil {
		cfg.S3RootUser = *jc.S3RootUser
	}
	if jc.S3RootPassword != nil {
		cfg.S3RootPassword = *jc.S3RootPassword
	}
	if jc.S3Bucket != nil {
		cfg.S3Bucket = *jc.S3Bucket
	}
	if jc.S3Region != nil {
		cfg.S3Region = *jc.S3Region
	}
	if jc.S3BaseEndpoint != nil {
		cfg.S3BaseEndpoint = *jc.S3BaseEndpoint
	}
	if jc.WebhookURL != nil {
		cfg.WebhookURL = *jc.WebhookURL
	}
	if jc.WebhookSecret != nil {
		cfg.WebhookSecret = *jc.WebhookSecret
	}
	if jc.DisplayTimeZone != nil {
		cfg.DisplayTimeZone = *jc.DisplayTimeZone
	}
}
