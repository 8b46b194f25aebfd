package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/voc-portal/internal/config"
	"github.com/jrsteele09/voc-portal/internal/logging"
	"github.com/jrsteele09/voc-portal/server"
	"github.com/jrsteele09/voc-portal/session"
	"github.com/jrsteele09/voc-portal/tokenstore"
	"github.com/jrsteele09/voc-portal/vocapi"
	"github.com/rs/zerolog/log"
)

func main() {
	configFile := flag.String("config", "", "path to a TOML config file (defaults to $CONFIG_FILE)")
	flag.Parse()

	for {
		if err := run(*configFile); err != nil {
			log.Error().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run(configFile string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.Load(configFile)
	if err != nil {
		return err
	}
	logging.Init(c.GetEnv(), c.GetLogLevel())
	displayAppname(c.GetAppName())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, closeRepo, err := tokenstore.Open(ctx, c)
	if err != nil {
		return fmt.Errorf("tokenstore.Open: %w", err)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			log.Err(err).Msg("failed to close token store")
		}
	}()

	api := vocapi.New(c.GetAPIURL(), vocapi.WithTimeout(c.GetAPITimeout()))
	registry := session.NewRegistry(repo, api, c.GetSessionIdleTimeout())

	portal, err := server.New(c, api, registry)
	if err != nil {
		return err
	}
	go portal.Run(ctx)

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           portal,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(httpServer) }()

	log.Info().
		Str("store", c.GetTokenStore()).
		Str("api", c.GetAPIURL()).
		Msg("portal started")

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	cancel()
	return shutdown(httpServer)
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
