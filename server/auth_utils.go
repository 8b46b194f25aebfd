package server

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/jrsteele09/voc-portal/session"
	"github.com/jrsteele09/voc-portal/vocapi"
	"github.com/rs/zerolog/log"
)

const (
	// scopeCookieName identifies the browser whose token store a request uses
	scopeCookieName = "voc_scope"
	// scopeCookieMaxAge keeps the scope for a year; the token inside expires on its own
	scopeCookieMaxAge = 365 * 24 * 60 * 60
)

func (s *Server) setScopeCookie(w http.ResponseWriter, r *http.Request, scope string) {
	http.SetCookie(w, &http.Cookie{
		Name:     scopeCookieName,
		Value:    scope,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   scopeCookieMaxAge,
	})
}

// browserScope returns the scope named by the request cookie, issuing a new
// one when the cookie is missing or not a uuid.
func (s *Server) browserScope(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(scopeCookieName); err == nil {
		if id, err := uuid.Parse(cookie.Value); err == nil {
			return id.String()
		}
		log.Debug().Str("value", cookie.Value).Msg("discarding malformed scope cookie")
	}

	scope := uuid.NewString()
	s.setScopeCookie(w, r, scope)
	return scope
}

// ScopeMiddleware mounts the session manager of the calling browser and
// places it on the request context.
func (s *Server) ScopeMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope := s.browserScope(w, r)
		manager := s.sessions.Mount(scope)

		ctx := session.WithManager(r.Context(), manager)
		ctx = withScope(ctx, scope)
		next(w, r.WithContext(ctx))
	}
}

// sessionFor returns the manager mounted by ScopeMiddleware.
func sessionFor(r *http.Request) *session.Manager {
	m, ok := session.FromContext(r.Context())
	if !ok {
		panic("session manager missing from request context")
	}
	return m
}

// apiFor returns a VOC API client that authenticates as the request's session.
func (s *Server) apiFor(r *http.Request) *vocapi.Client {
	return s.api.Authenticated(sessionFor(r))
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError helper for htmx-aware error redirects. extra query
// values are carried along so forms can be refilled.
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string, extra ...string) {
	q := url.Values{}
	q.Set("error", errorMsg)
	for i := 0; i+1 < len(extra); i += 2 {
		if extra[i+1] != "" {
			q.Set(extra[i], extra[i+1])
		}
	}
	redirectSuccess(w, r, path+"?"+q.Encode())
}

// redirectWithMessage redirects with a success notice for the target page.
func redirectWithMessage(w http.ResponseWriter, r *http.Request, path, msg string) {
	redirectSuccess(w, r, path+"?message="+url.QueryEscape(msg))
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
