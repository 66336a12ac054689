package auth

import (
	"context"

	"github.com/ferromax/backoffice-api/internal/domain"
	"github.com/google/uuid"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
	RoleID      *uuid.UUID
	RoleName    string
	IsOJT       bool
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// IsAdmin reports whether the user's role bypasses permission checks
func (u *UserContext) IsAdmin() bool {
	return u.RoleName == domain.AdminRoleName
}

// UserIDFromContext returns the authenticated user ID, or nil when unauthenticated
func UserIDFromContext(ctx context.Context) *uuid.UUID {
	if user, ok := FromContext(ctx); ok {
		id := user.UserID
		return &id
	}
	return nil
}
