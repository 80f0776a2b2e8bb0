package users

import "context"

type contextKey struct{}

// WithCurrent returns a context carrying the authenticated user.
func WithCurrent(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// Current returns the authenticated user attached to the context, if any.
func Current(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextKey{}).(*User)
	return u, ok
}
