package posts

import (
	"context"

	"postboard/internal/server/models"
)

// Repository persists posts. Ownership checks happen in the service layer;
// the repository takes the post ID the service already authorized.
type Repository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Update(ctx context.Context, id, title, content string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
