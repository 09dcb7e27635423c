package middleware

import (
	"context"

	"github.com/jobhive/auth-service/internal/domain"
)

type ctxKey int

const identityKey ctxKey = iota

// Identity is the authenticated caller, as established by the Auth
// middleware from the session token's claims.
type Identity struct {
	ID    string
	Role  domain.Role
	Name  string
	Email string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
