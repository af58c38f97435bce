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
//	API_URL                    base URL of the backend HTTP API
//	UPLOAD_DELAY_MS            pause between queued uploads, milliseconds
//	VALIDATE_INTERVAL_SECONDS  session validation interval, seconds
//	HISTORY_LIMIT              rows per history refresh
//
// Malformed numeric values panic, matching the flag and JSON stages.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("API_URL"); v != "" {
		cfg.ServerEndpointAddr = v
	}
	if v := os.Getenv("UPLOAD_DELAY_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.UploadDelay = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("VALIDATE_INTERVAL_SECONDS"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.ValidateInterval = time.Duration(s) * time.Second
	}
	if v := os.Getenv("HISTORY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.HistoryLimit = n
	}
}
