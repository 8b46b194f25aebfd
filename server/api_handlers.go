package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// SessionStatus is the JSON view of a browser's session
type SessionStatus struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId,omitempty"`
	LastError     string `json:"lastError,omitempty"`
}

// SessionStatusHandler reports the calling browser's session without
// changing it (GET /api/session).
func (s *Server) SessionStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		manager := sessionFor(r)

		status := SessionStatus{
			Authenticated: manager.HasValidSession(),
			LastError:     manager.State().LastError,
		}
		if status.Authenticated {
			status.UserID, _ = manager.CurrentUserID()
		}

		w.Header().Set("Content-Type", contentTypeJSON)
		if err := json.NewEncoder(w).Encode(status); err != nil {
			log.Err(err).Msg("failed to encode session status")
		}
	}
}
