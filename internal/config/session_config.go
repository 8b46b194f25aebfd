package config

import (
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

type SessionConfig interface {
	GetSessionIdleTimeout() time.Duration
	GetSubmitRate() rate.Limit
	GetSubmitBurst() int
}

type Session struct {
	source
}

var _ SessionConfig = Session{}

// GetSessionIdleTimeout is how long a browser's session manager stays mounted without requests.
func (s Session) GetSessionIdleTimeout() time.Duration {
	return parseDuration(s.get("SESSION_IDLE_TIMEOUT", ""), 30*time.Minute)
}

// GetSubmitRate is the sustained number of auth form submissions per second allowed per browser.
func (s Session) GetSubmitRate() rate.Limit {
	r, err := strconv.ParseFloat(s.get("SUBMIT_RATE", "0.5"), 64)
	if err != nil || r <= 0 {
		return rate.Limit(0.5)
	}
	return rate.Limit(r)
}

func (s Session) GetSubmitBurst() int {
	b, err := strconv.Atoi(s.get("SUBMIT_BURST", "5"))
	if err != nil || b <= 0 {
		return 5
	}
	return b
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
