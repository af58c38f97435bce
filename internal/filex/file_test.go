package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFolder(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"email kept intact", "demo@demo.com", "demo@demo.com"},
		{"slashes replaced", `a/b\c`, "a_b_c"},
		{"spaces replaced", "mi gestoria", "mi_gestoria"},
		{"empty defaults", "", "user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFolder(tt.in); got != tt.want {
				t.Fatalf("SanitizeFolder(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name kept", "factura-2025.pdf", "factura-2025.pdf"},
		{"spaces collapse to one underscore", "factura  enero.pdf", "factura_enero.pdf"},
		{"path separators replaced", "../../etc/passwd", ".._.._etc_passwd"},
		{"empty defaults", "", "file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Fatalf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnsureDir_CreatesNestedDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads", "demo@demo.com", "factura")
	require.NoError(t, EnsureDir(dir))

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "uploads")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o660))

	require.Error(t, EnsureDir(path), "should fail when a file exists with the same name")
}
