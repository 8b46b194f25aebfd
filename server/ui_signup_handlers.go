package server

import (
	"net/http"
)

// ValidatePasswordMatchHandler checks the signup form's confirmation field as
// the user types. It answers with an HTMX fragment and raises passwordValid or
// passwordInvalid so the form can toggle its submit button.
func (s *Server) ValidatePasswordMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		password := r.FormValue("password")
		confirm := r.FormValue("confirm_password")

		w.Header().Set("Content-Type", contentTypeHTML)
		if confirm == "" {
			w.WriteHeader(http.StatusOK)
			return
		}

		if password != confirm {
			w.Header().Set("HX-Trigger", "passwordInvalid")
			w.WriteHeader(http.StatusOK)
			writeFragment(w, `<span class="field-error">`, msgPasswordMismatch, `</span>`)
			return
		}

		w.Header().Set("HX-Trigger", "passwordValid")
		w.WriteHeader(http.StatusOK)
		writeFragment(w, `<span class="field-ok">`, "Passwords match", `</span>`)
	}
}
