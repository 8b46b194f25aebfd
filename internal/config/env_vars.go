package config

import (
	"fmt"
	"strings"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	envVar         = "ENV"
	logLevelEnvVar = "LOG_LEVEL"
	baseURLVar     = "BASE_URL"
)

type EnvVars struct {
	source
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.get(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.get(appNameVar, "VOC Portal")
}

func (e EnvVars) GetEnv() string {
	return e.get(envVar, "DEV")
}

func (e EnvVars) GetLogLevel() string {
	return e.get(logLevelEnvVar, "info")
}

// GetBaseURL returns the public URL of the portal (e.g., "https://portal.example.com")
func (e EnvVars) GetBaseURL() string {
	return e.get(baseURLVar, "http://localhost:8080")
}
