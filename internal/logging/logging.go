// Package logging configures the global zerolog logger used across the portal.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets the global logger. DEV gets human readable console output, any
// other environment gets JSON lines on stdout.
func Init(env, level string) {
	log.Logger = New(os.Stdout, env, level)
	zerolog.SetGlobalLevel(ParseLevel(level))
}

// New builds a logger writing to w using the same rules as Init.
func New(w io.Writer, env, level string) zerolog.Logger {
	if env == "DEV" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel falls back to info for unknown levels.
func ParseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}
