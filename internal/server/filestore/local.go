package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gestoria/internal/api"
	"gestoria/internal/filex"
)

// LocalStore writes uploads under a base directory on the server's disk.
type LocalStore struct {
	base string
}

func NewLocalStore(base string) *LocalStore {
	return &LocalStore{base: base}
}

func (s *LocalStore) Save(ctx context.Context, user string, kind api.DocumentKind, filename string, data []byte) (string, error) {
	dir := filepath.Join(s.base, filex.SanitizeFolder(user), string(kind))
	if err := filex.EnsureDir(dir); err != nil {
		return "", err
	}

	dest := filepath.Join(dir, filename)
	if err := os.WriteFile(dest, data, 0o660); err != nil {
		return "", fmt.Errorf("write %s: %w", dest, err)
	}

	return dest, nil
}
