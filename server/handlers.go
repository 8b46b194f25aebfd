package server

import (
	"html"
	"io"
	"net/http"

	vocerrors "github.com/jrsteele09/voc-portal/internal/errors"
	"github.com/jrsteele09/voc-portal/session"
	"github.com/jrsteele09/voc-portal/vocapi"
	"github.com/rs/zerolog/log"
)

const (
	msgInFlight    = "A request is already in progress"
	msgRateLimited = "Too many attempts, please wait and try again"
)

// userMessage turns a failure into text for the page, falling back when the
// error carries nothing meant for display.
func userMessage(err error, fallback string) string {
	var authErr *session.AuthError
	if vocerrors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	var apiErr *vocapi.APIError
	if vocerrors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	switch {
	case vocerrors.Is(err, vocerrors.ErrRequestInFlight):
		return msgInFlight
	case vocerrors.Is(err, vocerrors.ErrRateLimited):
		return msgRateLimited
	}
	return fallback
}

// sessionLost reports whether an API call failed because the browser has no
// usable session, either locally or according to the API.
func sessionLost(err error) bool {
	return vocerrors.Is(err, session.ErrNoSession) || vocapi.IsUnauthorized(err)
}

// endSession ends the request's session after an API call found it unusable
// and sends the browser to the login page. A 401 from the API drops the
// stored token outright.
func endSession(w http.ResponseWriter, r *http.Request, err error) {
	log.Info().Err(err).Msg("session rejected, returning to login")
	if vocapi.IsUnauthorized(err) {
		sessionFor(r).Reject()
	} else {
		sessionFor(r).Invalidate()
	}
	redirectSuccess(w, r, RouteLogin)
}

// scopeFrom returns the browser scope set by ScopeMiddleware.
func scopeFrom(r *http.Request) string {
	scope, _ := r.Context().Value(ContextKeyScope).(string)
	return scope
}

// RootHandler sends visitors to the login page.
func (s *Server) RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}

// writeFragment writes an HTMX fragment with text escaped between open and close.
func writeFragment(w io.Writer, open, text, close string) {
	if _, err := io.WriteString(w, open+html.EscapeString(text)+close); err != nil {
		log.Err(err).Msg("failed to write fragment")
	}
}
