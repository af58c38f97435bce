package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":             ":9001",
		"database_dsn":                   "postgres://json:json@db/gestoria",
		"secret_key":                     "json-secret",
		"access_token_validity_duration": "20m",
		"file_store":                     "s3",
		"s3_bucket":                      "docs",
		"webhook_url":                    "https://n8n.example/hook",
		"display_tz":                     "UTC",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, ":9001", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres://json:json@db/gestoria", cfg.DatabaseDSN)
		assert.Equal(t, "json-secret", cfg.SecretKey)
		assert.Equal(t, 20*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, "s3", cfg.FileStore)
		assert.Equal(t, "docs", cfg.S3Bucket)
		assert.Equal(t, "https://n8n.example/hook", cfg.WebhookURL)
		assert.Equal(t, "UTC", cfg.DisplayTimeZone)
	})

	t.Run("absent keys keep current values, explicit zero overrides", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"max_upload_bytes": 0,
		})
		os.Args = []string{"testbin", "-config", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, int64(0), cfg.MaxUploadBytes)
		assert.Equal(t, ":8000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "supersecretkey", cfg.SecretKey)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddrHTTP: ":7777", SecretKey: "keep"}
		parseJson(cfg)

		assert.Equal(t, ":7777", cfg.EndpointAddrHTTP)
		assert.Equal(t, "keep", cfg.SecretKey)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
