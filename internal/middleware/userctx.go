package middleware

import "context"

type userKey struct{}

// UserCtx is the authenticated caller, set by Auth and read by every
// handler behind it.
type UserCtx struct {
	UserID string
	Email  string
}

func WithUser(ctx context.Context, u UserCtx) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func FromCtx(ctx context.Context) UserCtx {
	if v := ctx.Value(userKey{}); v != nil {
		if u, ok := v.(UserCtx); ok {
			return u
		}
	}
	return UserCtx{}
}
