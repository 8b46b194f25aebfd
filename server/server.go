package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/voc-portal/internal/config"
	"github.com/jrsteele09/voc-portal/session"
	"github.com/jrsteele09/voc-portal/vocapi"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	api      *vocapi.Client
	sessions *session.Registry
	submits  *submitGuard
}

// New wires the portal routes. api is the unauthenticated VOC API client;
// per-request clients carrying the browser's token are derived from it.
func New(config config.Config, api *vocapi.Client, sessions *session.Registry) (*Server, error) {
	if api == nil || sessions == nil {
		return nil, fmt.Errorf("[Server New] api client and session registry are required")
	}

	s := &Server{
		env:      config.GetEnv(),
		mux:      http.NewServeMux(),
		config:   config,
		api:      api,
		sessions: sessions,
		submits:  newSubmitGuard(config.GetSubmitRate(), config.GetSubmitBurst()),
	}

	if err := s.initRoutes(); err != nil {
		return nil, fmt.Errorf("[Server New] failed to initialise routes: %w", err)
	}
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Run performs background housekeeping until ctx is done.
func (s *Server) Run(ctx context.Context) {
	go s.submits.Run(ctx, s.config.GetSessionIdleTimeout())
	s.sessions.Run(ctx)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

func colourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
