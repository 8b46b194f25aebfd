package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFileEnvVar = "CONFIG_FILE"

type Config interface {
	EnvConfig
	CorsConfig
	APIConfig
	StoreConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetBaseURL() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	API
	Store
	Session
}

// New returns a Config backed by environment variables only.
func New() Config {
	return newMainConfig(source{})
}

// Load returns a Config backed by environment variables, falling back to the
// TOML file named by path (or by CONFIG_FILE when path is empty). A missing
// file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(configFileEnvVar)
	}
	if path == "" {
		return New(), nil
	}

	values, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return newMainConfig(source{file: values}), nil
}

func newMainConfig(src source) mainConfig {
	return mainConfig{
		EnvVars: EnvVars{src},
		Cors:    Cors{src},
		API:     API{src},
		Store:   Store{src},
		Session: Session{src},
	}
}

// source resolves a setting from the environment first, then the config file.
type source struct {
	file map[string]string
}

func (s source) get(name, defaultValue string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	if value, ok := s.file[name]; ok && value != "" {
		return value
	}
	return defaultValue
}

func readFile(path string) (map[string]string, error) {
	raw := make(map[string]interface{})
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("[config Load] failed to decode %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		values[strings.ToUpper(k)] = fmt.Sprint(v)
	}
	return values, nil
}
