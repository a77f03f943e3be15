package middleware

import "context"

type contextKey string

const identityContextKey contextKey = "identity"

// Identity is the authenticated caller for one request. Populated by
// AuthValidator from a verified token; read-only downstream; never outlives
// the request.
type Identity struct {
	ID       string
	Username string
}

// WithIdentity injects the authenticated identity into the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFromContext returns the identity, or false when the request was
// not authenticated.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	v := ctx.Value(identityContextKey)
	if v == nil {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
