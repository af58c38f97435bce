package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-a", ":9090", "-d", "postgres://x", "-s", "k", "-t", "5", "-f", "s3", "-w", "https://n8n/hook"}, expectPanic: false,
			expected: &Config{EndpointAddrHTTP: ":9090", DatabaseDSN: "postgres://x", SecretKey: "k",
				AccessTokenValidityDuration: 5 * time.Minute, FileStore: "s3", WebhookURL: "https://n8n/hook"}},
		{name: "Test2 store flags", args: []string{"cmd", "-o", "/srv/up", "-u", "root", "-p", "pw", "-b", "docs", "-g", "eu-west-1", "-e", "http://minio:9000/"}, expectPanic: false,
			expected: &Config{UploadBase: "/srv/up", S3RootUser: "root", S3RootPassword: "pw",
				S3Bucket: "docs", S3Region: "eu-west-1", S3BaseEndpoint: "http://minio:9000/"}},
		{name: "Test3 incorrect token validity", args: []string{"cmd", "-a", ":9090", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Equal(t, tt.expected, config)
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
