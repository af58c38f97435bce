package users

import (
	"context"
	"errors"

	"gestoria/internal/server/models"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// Repository reads operator accounts. Accounts are provisioned through
// migrations, so there is no create path here.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
