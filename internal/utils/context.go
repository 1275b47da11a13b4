// Package utils holds small helpers shared by the HTTP adapter: context keys,
// JSON responses, session tokens and id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/crimewatch-access/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// PrincipalCtxKey holds the models.Principal of an authenticated request.
	PrincipalCtxKey = contextKey("principal")

	// SessionIDCtxKey holds the int64 session id carried by the token.
	SessionIDCtxKey = contextKey("sessionID")
)

// WithPrincipal returns a copy of ctx carrying p and its session id.
func WithPrincipal(ctx context.Context, p models.Principal, sessionID int64) context.Context {
	ctx = context.WithValue(ctx, PrincipalCtxKey, p)
	return context.WithValue(ctx, SessionIDCtxKey, sessionID)
}

// GetPrincipalFromContext returns the principal stored by WithPrincipal.
// ok is false when it is missing or has an unexpected type.
func GetPrincipalFromContext(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(PrincipalCtxKey).(models.Principal)
	return p, ok
}

// GetSessionIDFromContext returns the session id stored by WithPrincipal.
func GetSessionIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(SessionIDCtxKey).(int64)
	return id, ok
}
