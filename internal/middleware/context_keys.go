package middleware

import (
	"context"

	"github.com/edujournal/journal_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for request context keys. Using a custom type
// prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	authUserKey  = contextKey("authUser")
)

// AuthUser is the identity decoded from a verified bearer token. The role is
// normalized to uppercase exactly once, when the token is verified.
type AuthUser struct {
	UserID string
	Name   string
	Email  string
	Role   domain.Role
}

// GetAuthUserFromContext retrieves the authenticated identity attached by
// AuthMiddleware. The boolean reports whether an identity is present.
func GetAuthUserFromContext(c *gin.Context) (AuthUser, bool) {
	val := c.Request.Context().Value(authUserKey)
	if val == nil {
		return AuthUser{}, false
	}
	user, ok := val.(AuthUser)
	return user, ok
}

// withAuthUser returns a context carrying the authenticated identity.
func withAuthUser(ctx context.Context, user AuthUser) context.Context {
	return context.WithValue(ctx, authUserKey, user)
}
