// Package auth provides the authentication context carried through a request.
package auth

import "context"

// =============================================================================
// Context Key
// =============================================================================

type contextKey string

const authContextKey contextKey = "auth"

// =============================================================================
// Types
// =============================================================================

// Context identifies the dashboard admin behind a request. It is set by
// the JWT middleware after token verification.
type Context struct {
	// AdminID is the admins table ID of the authenticated operator.
	AdminID string

	// Email is the admin's login email, taken from the token claims.
	Email string

	// Authenticated indicates whether a valid token was presented.
	Authenticated bool
}

// =============================================================================
// Context Helpers
// =============================================================================

// WithContext stores the auth context in the request context.
func WithContext(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, authContextKey, ac)
}

// FromContext retrieves the auth context. Returns an unauthenticated
// context when none is stored.
func FromContext(ctx context.Context) Context {
	if ac, ok := ctx.Value(authContextKey).(Context); ok {
		return ac
	}
	return Context{}
}
