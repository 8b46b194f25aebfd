package server

import (
	"context"
	"net/http"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUserID stores the user id read from the session token
	ContextKeyUserID ContextKey = "user_id"
	// ContextKeyScope stores the browser scope of the request
	ContextKeyScope ContextKey = "scope"
)

func withScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, ContextKeyScope, scope)
}

// RequireSession guards pages that need a signed-in user. It is evaluated on
// every request: a browser whose token is missing, malformed or expired is
// sent to the login page and its session invalidated, otherwise the handler
// runs with the user id on the context.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			manager := sessionFor(r)

			if !manager.HasValidSession() {
				manager.Invalidate()
				redirectSuccess(w, r, RouteLogin)
				return
			}

			ctx := r.Context()
			if userID, ok := manager.CurrentUserID(); ok {
				ctx = context.WithValue(ctx, ContextKeyUserID, userID)
			}
			next(w, r.WithContext(ctx))
		}
	}
}

func userIDFrom(r *http.Request) string {
	userID, _ := r.Context().Value(ContextKeyUserID).(string)
	return userID
}
