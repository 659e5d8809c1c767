package ctxutil

import "context"

type ownerKey struct{}

// Owner identifies whose cart a request addresses.
type Owner struct {
	TenantID string
	UserID   string
}

func WithOwner(ctx context.Context, o *Owner) context.Context {
	return context.WithValue(ctx, ownerKey{}, o)
}

func GetOwner(ctx context.Context) *Owner {
	if o, ok := ctx.Value(ownerKey{}).(*Owner); ok {
		return o
	}
	return nil
}

// Default returns context.Background() when ctx is nil.
func Default(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
