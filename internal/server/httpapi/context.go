package httpapi

import (
	"context"

	"github.com/aleksivanovs/taskvault/internal/server/models"
)

type ctxKey string

const (
	userKey         ctxKey = "user"
	refreshTokenKey ctxKey = "refreshToken"
)

// withSession stores the resolved user and the refresh token it presented on
// the request context for downstream handlers.
func withSession(ctx context.Context, user *models.User, token string) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, refreshTokenKey, token)
}

func userFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok
}

func refreshTokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(refreshTokenKey).(string)
	return t, ok
}
