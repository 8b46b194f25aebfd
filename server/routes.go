package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

func (s *Server) initRoutes() error {
	pages, err := parsePages()
	if err != nil {
		return err
	}

	s.RegisterRouteHandler("GET "+RouteRoot+"{$}", ChainMiddleware(s.RootHandler(), s.HTMLMiddleWare()...))

	// AUTH
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(pages), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthSignup, ChainMiddleware(s.SignupSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthValidatePassword, ChainMiddleware(s.ValidatePasswordMatchHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteForgotPassword, ChainMiddleware(s.ForgotPasswordPageHandler(pages), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthForgotPassword, ChainMiddleware(s.ForgotPasswordSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Public pages
	s.RegisterRouteHandler("GET "+RouteHome, ChainMiddleware(s.HomeHandler(pages), s.HTMLMiddleWare()...))

	// Protected pages (re-checked on every request)
	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(pages), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("POST "+RouteNotificationRead, ChainMiddleware(s.MarkNotificationReadHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("POST "+RouteReviews, ChainMiddleware(s.SubmitReviewHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteSettings, ChainMiddleware(s.SettingsPageHandler(pages), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("POST "+RouteSettings, ChainMiddleware(s.SettingsSubmissionHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteBusinessAccount, ChainMiddleware(s.BusinessAccountPageHandler(pages), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("POST "+RouteBusinessAccount, ChainMiddleware(s.AddBusinessHandler(), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("POST "+RouteValidateAddress, ChainMiddleware(s.ValidateAddressHandler(), s.HTMLMiddleWare(s.RequireSession())...))

	// API routes
	s.RegisterRouteHandler("GET "+RouteAPISession, ChainMiddleware(s.SessionStatusHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteAPISession, ChainMiddleware(s.SessionStatusHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
	return nil
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError(r.Method, filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

func logError(method, path, error string) {
	log.Error().Msgf("[%-19s] %s %s", colourMethod(method), path, Red+error+ResetColor)
}
