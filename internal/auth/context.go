package auth

import (
	"context"

	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/models"
)

type contextKey struct{}

// WithUser returns a copy of ctx carrying the authenticated session user.
func WithUser(ctx context.Context, user models.SessionUser) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext returns the session user attached by the authentication middleware.
func UserFromContext(ctx context.Context) (models.SessionUser, bool) {
	user, ok := ctx.Value(contextKey{}).(models.SessionUser)
	return user, ok
}
