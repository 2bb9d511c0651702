// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

// Package ctxkeys defines typed context keys used across packages.
package ctxkeys

import "context"

// UserID is the context key for the authenticated user's id.
type UserID struct{}

// WithUserID stores the authenticated user's id on the context.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, UserID{}, id)
}

// UserIDFrom extracts the authenticated user's id, if any.
func UserIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserID{}).(string)
	return id, ok
}
