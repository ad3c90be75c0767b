// Package users declares the server-side repository contract for user
// accounts.
package users

import (
	"context"

	"github.com/aleksivanovs/taskvault/internal/server/models"
)

// Repository defines operations for creating and resolving user accounts.
type Repository interface {
	// Create inserts a new user. The email must be unique; a conflict yields
	// common.ErrorEmailTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email, or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given ID, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// FindByIDAndToken returns the user with the given ID that has a session
	// row with exactly the given token, or common.ErrorNotFound. Session
	// expiry is deliberately not checked here.
	FindByIDAndToken(ctx context.Context, id string, token string) (*models.User, error)

	// UpdatePassword replaces the stored password hash for the user.
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
