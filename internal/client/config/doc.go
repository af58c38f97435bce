// Package config loads runtime configuration for the Gestoria CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables, with an optional .env file (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend HTTP API
//	-d int      pause between queued uploads (milliseconds)
//	-i int      session validation interval (seconds)
//	-l int      rows per history refresh
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "5m" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:8000",
//	  "upload_delay": "500ms",
//	  "validate_interval": "5m",
//	  "history_limit": 20
//	}
//
// Primary API
//
//   - type Config                     — holds the CLI runtime settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, env, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
