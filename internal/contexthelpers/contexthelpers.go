// Package contexthelpers holds the request-scoped values shared between
// middleware and handlers.
package contexthelpers

import (
	"context"
)

type contextKey string

const IsAuthenticatedContextKey = contextKey("isAuthenticated")
const AuthenticatedUserIDContextKey = contextKey("authenticatedUserID")

// IsAuthenticated reports whether the request carries an authenticated user.
func IsAuthenticated(ctx context.Context) bool {
	isAuthenticated, ok := ctx.Value(IsAuthenticatedContextKey).(bool)
	if !ok {
		return false
	}
	return isAuthenticated
}

// AuthenticatedUserID returns the authenticated user's id, or 0 when the
// request is anonymous.
func AuthenticatedUserID(ctx context.Context) int64 {
	userID, ok := ctx.Value(AuthenticatedUserIDContextKey).(int64)
	if !ok {
		return 0
	}
	return userID
}

// SetAuthenticatedUser marks ctx as carrying an authenticated user.
func SetAuthenticatedUser(ctx context.Context, userID int64) context.Context {
	ctx = context.WithValue(ctx, IsAuthenticatedContextKey, true)
	return context.WithValue(ctx, AuthenticatedUserIDContextKey, userID)
}
