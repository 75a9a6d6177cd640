package users

import (
	"context"

	"postboard/internal/server/models"
)

// Repository persists identity records. Exists is an optimization only;
// the database uniqueness constraint is the authoritative guard against
// concurrent registrations of the same identity.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUserID(ctx context.Context, userID string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Exists(ctx context.Context, userID string) (bool, error)
	UpdateCredentials(ctx context.Context, userID, hash, salt string) (int64, error)
	Delete(ctx context.Context, userID string) (int64, error)
}
