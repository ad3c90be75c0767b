// Package sessions provides the repository contract for the server-side
// session store: one row per issued refresh token.
package sessions

import (
	"context"
	"time"

	"github.com/aleksivanovs/taskvault/internal/server/models"
)

// Repository defines operations over a user's session list. Sessions are
// append-only; expired rows stay in place and simply fail validation.
type Repository interface {
	// Create appends a session for userID with an expiry of now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// GetAllByUser returns every session row for userID in creation order,
	// including expired ones.
	GetAllByUser(ctx context.Context, userID string) ([]models.Session, error)

	// Delete revokes the session with the given token for userID. Deleting a
	// non-existent session is not an error.
	Delete(ctx context.Context, userID string, token string) error
}
