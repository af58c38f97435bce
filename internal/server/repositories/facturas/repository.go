package facturas

import (
	"context"

	"gestoria/internal/server/models"
)

// Repository persists invoice rows. External ids stay unique: callback
// deliveries for an id already stored are reported as duplicates instead
// of overwriting the row.
type Repository interface {
	Insert(ctx context.Context, factura *models.Factura) (*models.Factura, error)
	// InsertIgnoreDuplicate inserts the row unless another one already
	// carries the same non-empty external id. The bool reports whether a
	// row was actually inserted.
	InsertIgnoreDuplicate(ctx context.Context, factura *models.Factura) (*models.Factura, bool, error)
	List(ctx context.Context, desde, hasta string) ([]models.Factura, error)
}
