package config

import "time"

// Config holds runtime settings for the Gestoria CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend HTTP API.
//   - UploadDelay: pause inserted between consecutive queued uploads.
//   - ValidateInterval: how often the client re-validates the stored session.
//   - HistoryLimit: number of rows requested on each history refresh.
//
// Units: UploadDelay and ValidateInterval are time.Duration values
// (e.g., 500*time.Millisecond, 5*time.Minute).
type Config struct {
	ServerEndpointAddr string
	UploadDelay        time.Duration
	ValidateInterval   time.Duration
	HistoryLimit       int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8000"
	c.UploadDelay = 500 * time.Millisecond
	c.ValidateInterval = 5 * time.Minute
	c.HistoryLimit = 20
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the process environment, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
