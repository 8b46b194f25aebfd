package session

import "context"

type contextKey struct{}

// WithManager returns a copy of ctx carrying m.
func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

// FromContext returns the manager stored by WithManager.
func FromContext(ctx context.Context) (*Manager, bool) {
	m, ok := ctx.Value(contextKey{}).(*Manager)
	return m, ok && m != nil
}
