// Package filestore persists uploaded documents. The local driver mirrors
// the <base>/<user>/<tipo>/<filename> tree the processor watches; the s3
// driver writes the same layout as object keys for deployments backed by
// MinIO or S3.
package filestore

import (
	"context"
	"fmt"

	"gestoria/internal/api"
	sc "gestoria/internal/server/config"
)

// Store saves one uploaded document and returns the storage path recorded
// on the upload row. Filenames arrive already sanitized; each driver only
// derives the account folder itself.
type Store interface {
	Save(ctx context.Context, user string, kind api.DocumentKind, filename string, data []byte) (string, error)
}

// New selects the driver named by cfg.FileStore. An empty value means local.
func New(cfg *sc.Config) (Store, error) {
	switch cfg.FileStore {
	case "", "local":
		return NewLocalStore(cfg.UploadBase), nil
	case "s3":
		return NewS3Store(cfg), nil
	}
	return nil, fmt.Errorf("unknown file store %q", cfg.FileStore)
}
