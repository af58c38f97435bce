package uploads

import (
	"context"
	"errors"

	"gestoria/internal/api"
	"gestoria/internal/server/models"
)

// ErrNotFound is returned when no upload record matches the lookup.
var ErrNotFound = errors.New("upload not found")

// Repository persists upload records. Status transitions always go through
// SetStatus/LinkByFilename so the lifecycle stays in one place.
type Repository interface {
	Create(ctx context.Context, upload *models.Upload) (*models.Upload, error)
	GetByID(ctx context.Context, id string) (*models.Upload, error)
	ListRecent(ctx context.Context, limit int) ([]models.Upload, error)
	SetStatus(ctx context.Context, id string, status api.UploadStatus, detail string) error
	// LinkByFilename updates every record with the given original filename,
	// optionally linking a factura. It returns the number of rows touched;
	// zero is not an error because processor callbacks guess the filename.
	LinkByFilename(ctx context.Context, filename string, status api.UploadStatus, facturaID *string) (int64, error)
}
