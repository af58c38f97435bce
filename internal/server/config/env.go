package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment.
// An optional .env file in the working directory is loaded first; variables
// already present in the environment are never overridden by the file.
//
// Recognized variables:
//
//	BIND_ADDR                    HTTP bind address
//	DATABASE_DSN                 PostgreSQL DSN
//	JWT_SECRET_KEY               HMAC secret for signing tokens
//	ACCESS_TOKEN_EXPIRE_MINUTES  bearer token lifetime, minutes
//	UPLOAD_BASE                  local file store base directory
//	MAX_UPLOAD_BYTES             upper bound for one upload body
//	FILE_STORE                   storage driver, "local" or "s3"
//	S3_ROOT_USER                 S3 credentials
//	S3_ROOT_PASSWORD
//	S3_BUCKET                    S3 object storage settings
//	S3_REGION
//	S3_BASE_ENDPOINT
//	N8N_WEBHOOK_URL              processing trigger endpoint
//	N8N_WEBHOOK_SECRET           shared secret sent with the trigger
//	DISPLAY_TZ                   IANA zone for history timestamps
//
// Malformed numeric values panic, matching the flag and JSON stages.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("BIND_ADDR"); v != "" {
		cfg.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.AccessTokenValidityDuration = time.Duration(m) * time.Minute
	}
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		cfg.UploadBase = v
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			panic(err)
		}
		cfg.MaxUploadBytes = n
	}
	if v := os.Getenv("FILE_STORE"); v != "" {
		cfg.FileStore = v
	}
	if v := os.Getenv("S3_ROOT_USER"); v != "" {
		cfg.S3RootUser = v
	}
	if v := os.Getenv("S3_ROOT_PASSWORD"); v != "" {
		cfg.S3RootPassword = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		cfg.S3Bucket = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		cfg.S3Region = v
	}
	if v := os.Getenv("S3_BASE_ENDPOINT"); v != "" {
		cfg.S3BaseEndpoint = v
	}
	if v := os.Getenv("N8N_WEBHOOK_URL"); v != "" {
		cfg.WebhookURL = v
	}
	if v := os.Getenv("N8N_WEBHOOK_SECRET"); v != "" {
		cfg.WebhookSecret = v
	}
	if v := os.Getenv("DISPLAY_TZ"); v != "" {
		cfg.DisplayTimeZone = v
	}
}
