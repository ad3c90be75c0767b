// Package tasks declares the repository contract for tasks within lists.
package tasks

import (
	"context"

	"github.com/aleksivanovs/taskvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetAllByList(ctx context.Context, listID string) ([]models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	Update(ctx context.Context, id string, title string, completed bool) error
	Delete(ctx context.Context, id string) error
}
