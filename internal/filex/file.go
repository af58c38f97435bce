// Package filex holds filename and directory helpers for the upload store.
// Uploaded names come straight from operators' machines, so anything that
// ends up in a storage path is sanitized first.
package filex

import (
	"fmt"
	"os"
	"regexp"
)

var (
	folderUnsafe = regexp.MustCompile(`[^a-zA-Z0-9@.\-_]`)
	nameUnsafe   = regexp.MustCompile(`[^\w\-.]+`)
)

// SanitizeFolder maps an account name to a directory-safe form. Characters
// outside [a-zA-Z0-9@.-_] become underscores; an empty name becomes "user".
func SanitizeFolder(name string) string {
	if name == "" {
		name = "user"
	}
	return folderUnsafe.ReplaceAllString(name, "_")
}

// SanitizeFilename maps an uploaded filename to a storage-safe form. Runs of
// characters outside [\w\-.] collapse to one underscore; an empty name
// becomes "file".
func SanitizeFilename(name string) string {
	if name == "" {
		name = "file"
	}
	return nameUnsafe.ReplaceAllString(name, "_")
}

// EnsureDir creates dir (and parents) if missing.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
