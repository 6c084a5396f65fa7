package auth

import "context"

type contextKey string

const identityContextKey contextKey = "dadi_identity"

// Identity is the per-request authenticated caller placed in the request
// context by the middleware.
type Identity struct {
	Principal *Principal
	Email     string
	Name      string
}

func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(*Identity)
	return id, ok
}
