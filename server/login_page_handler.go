package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/voc-portal/vocapi"
	"github.com/rs/zerolog/log"
)

const (
	tabLogin  = "login"
	tabSignup = "signup"

	msgCredentialsRequired = "Email and password are required"
	msgSignupRequired      = "Name, email and password are required"
	msgPasswordMismatch    = "Passwords do not match"
	msgEmailRequired       = "Please enter your email"
	msgResetLinkSent       = "Password reset link sent to your email"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	Tab   string // login or signup
	Name  string // Preserved on signup error
	Email string // Preserve email on error
}

// LoginPageHandler displays the login and signup forms (GET /login)
func (s *Server) LoginPageHandler(pages pageSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessionFor(r).HasValidSession() {
			http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
			return
		}

		q := r.URL.Query()
		data := LoginPageData{
			Tab:   tabLogin,
			Name:  q.Get("name"),
			Email: q.Get("email"),
		}
		if q.Get("tab") == tabSignup {
			data.Tab = tabSignup
		}

		s.renderPage(w, pages, pageLogin, s.newPageData(r, "login", "Sign in", data))
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")

		if email == "" || password == "" {
			redirectWithError(w, r, RouteLogin, msgCredentialsRequired, "email", email)
			return
		}

		release, err := s.submits.acquire(scopeFrom(r))
		if err != nil {
			redirectWithError(w, r, RouteLogin, userMessage(err, msgRateLimited), "email", email)
			return
		}
		defer release()

		resp, err := sessionFor(r).Login(r.Context(), vocapi.Credentials{Email: email, Password: password})
		if err != nil {
			redirectWithError(w, r, RouteLogin, userMessage(err, "Invalid email or password"), "email", email)
			return
		}
		if resp == nil {
			// Accepted without a session; stay on the login page
			redirectSuccess(w, r, RouteLogin)
			return
		}

		log.Info().Str("userId", resp.UserID.String()).Msg("user signed in")
		redirectSuccess(w, r, RouteDashboard)
	}
}

// SignupSubmissionHandler registers a new account and signs it in
func (s *Server) SignupSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		name := strings.TrimSpace(r.FormValue("name"))
		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")
		confirm := r.FormValue("confirm_password")

		signupError := func(msg string) {
			redirectWithError(w, r, RouteLogin, msg, "tab", tabSignup, "name", name, "email", email)
		}

		if name == "" || email == "" || password == "" {
			signupError(msgSignupRequired)
			return
		}
		if password != confirm {
			signupError(msgPasswordMismatch)
			return
		}

		release, err := s.submits.acquire(scopeFrom(r))
		if err != nil {
			signupError(userMessage(err, msgRateLimited))
			return
		}
		defer release()

		resp, err := sessionFor(r).Signup(r.Context(), vocapi.UserData{Name: name, Email: email, Password: password})
		if err != nil {
			signupError(userMessage(err, "An error occurred during signup"))
			return
		}
		if resp == nil {
			redirectSuccess(w, r, RouteLogin)
			return
		}

		log.Info().Str("userId", resp.UserID.String()).Msg("user signed up")
		redirectSuccess(w, r, RouteDashboard)
	}
}

// LogoutHandler forgets the browser's token and returns to the login page
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionFor(r).Logout()
		redirectSuccess(w, r, RouteLogin)
	}
}

// ForgotPasswordPageData contains data for rendering the password reset page
type ForgotPasswordPageData struct {
	Email string
}

func (s *Server) ForgotPasswordPageHandler(pages pageSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := ForgotPasswordPageData{Email: r.URL.Query().Get("email")}
		s.renderPage(w, pages, pageForgotPassword, s.newPageData(r, "forgot-password", "Reset password", data))
	}
}

// ForgotPasswordSubmissionHandler asks the API to send a reset link
func (s *Server) ForgotPasswordSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := strings.TrimSpace(r.FormValue("email"))
		if email == "" {
			redirectWithError(w, r, RouteForgotPassword, msgEmailRequired)
			return
		}

		release, err := s.submits.acquire(scopeFrom(r))
		if err != nil {
			redirectWithError(w, r, RouteForgotPassword, userMessage(err, msgRateLimited), "email", email)
			return
		}
		defer release()

		ack, err := sessionFor(r).RequestPasswordReset(r.Context(), email)
		if err != nil {
			redirectWithError(w, r, RouteForgotPassword, userMessage(err, "An error occurred during forget password"), "email", email)
			return
		}

		msg := msgResetLinkSent
		if ack != nil && strings.TrimSpace(ack.Message) != "" {
			msg = ack.Message
		}
		redirectWithMessage(w, r, RouteForgotPassword, msg)
	}
}
