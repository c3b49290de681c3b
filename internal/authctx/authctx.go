// Package authctx carries the caller's bearer credential through a request
// context so outbound clients can forward it.
package authctx

import "context"

type bearerKey struct{}

// WithBearer returns a copy of ctx holding token.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

// BearerFromContext returns the bearer token stored in ctx, if any.
func BearerFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerKey{}).(string)
	return token, ok && token != ""
}
