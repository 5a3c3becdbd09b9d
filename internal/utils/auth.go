package utils

import (
	"context"
	"slices"
)

type contextKey string

// SetUserContext stores the authenticated user id (called by middleware)
func SetUserContext(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

// GetUserIDFromContext retrieves userID safely
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(UserIDKey).(int)
	return id, ok
}

func HasRole(roles []string, role string) bool {
	return slices.Contains(roles, role)
}
