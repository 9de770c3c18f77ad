package common

import "context"

type ctxKey string

const identityKey ctxKey = "auth/identity"

// Identity describes the caller as resolved by the auth middleware: the
// provider uid, the email claim, and the role looked up from master data.
type Identity struct {
	UID   string
	Email string
	Role  string
	Admin bool
}

// WithIdentity stores the caller identity on the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom extracts the caller identity from the context if present.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	v := ctx.Value(identityKey)
	if v == nil {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
