// Package utils holds small helpers shared by the client and the record
// backend: context keys, HMAC signing, JSON responses, the resty client
// wrapper, JWT helpers and ID generation.
package utils

import (
	"context"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// PrincipalCtxKey stores the authenticated principal identity taken from the
// bearer token.
var PrincipalCtxKey = contextKey("principal")

// WithPrincipal returns a copy of ctx carrying principal.
func WithPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, PrincipalCtxKey, principal)
}

// GetPrincipalFromContext returns the principal stored by the auth
// middleware. ok is false when the value is missing or empty.
func GetPrincipalFromContext(ctx context.Context) (string, bool) {
	principal, ok := ctx.Value(PrincipalCtxKey).(string)
	return principal, ok && principal != ""
}
