package config

import (
	"encoding/json"
	"os"
	"time"

	"gestoria/internal/flagx"
	"gestoria/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "5m" or as integer nanoseconds. Fields are pointers so an
// absent key leaves the current Config value untouched while an explicit
// zero (e.g. "upload_delay": 0) still overrides it.
type JsonConfig struct {
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	UploadDelay        *timex.Duration `json:"upload_delay"`
	ValidateInterval   *timex.Duration `json:"validate_interval"`
	HistoryLimit       *int            `json:"history_limit"`
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

	if jc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *jc.ServerEndpointAddr
	}
	if jc.UploadDelay != nil {
		cfg.UploadDelay = time.Duration(jc.UploadDelay.Duration)
	}
	if jc.ValidateInterval != nil {
		cfg.ValidateInterval = time.Duration(jc.ValidateInterval.Duration)
	}
	if jc.HistoryLimit != nil {
		cfg.HistoryLimit = *jc.HistoryLimit
	}
}
