// Package lists declares the repository contract for task lists.
package lists

import (
	"context"

	"github.com/aleksivanovs/taskvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, list *models.List) (*models.List, error)
	GetAllByUser(ctx context.Context, userID string) ([]models.List, error)
	GetByID(ctx context.Context, id string) (*models.List, error)
	Update(ctx context.Context, id string, title string) error
	Delete(ctx context.Context, id string) error
}
