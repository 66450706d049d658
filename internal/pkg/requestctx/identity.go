// Package requestctx carries the authenticated caller through context.Context.
package requestctx

import (
	"context"

	"github.com/fintrack/finance-api/internal/core/domain"
)

type identityContextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFrom returns the identity stored by WithIdentity. ok is false when
// the request never passed the auth middleware.
func IdentityFrom(ctx context.Context) (id domain.Identity, ok bool) {
	if ctx == nil {
		return domain.Identity{}, false
	}
	id, ok = ctx.Value(identityContextKey{}).(domain.Identity)
	return id, ok && id.UserID != ""
}
