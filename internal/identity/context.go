package identity

import "context"

type ctxKey struct{}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the user stored by WithUser, or ErrNoSession.
func UserFromContext(ctx context.Context) (*User, error) {
	u, ok := ctx.Value(ctxKey{}).(*User)
	if !ok || u == nil {
		return nil, ErrNoSession
	}

	return u, nil
}
