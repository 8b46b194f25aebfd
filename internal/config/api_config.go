package config

import "time"

type APIConfig interface {
	GetAPIURL() string
	GetAPITimeout() time.Duration
}

type API struct {
	source
}

var _ APIConfig = API{}

// GetAPIURL returns the base URL of the remote VOC REST API, including the /api prefix.
func (a API) GetAPIURL() string {
	return a.get("VOC_API_URL", "http://localhost:7099/api")
}

func (a API) GetAPITimeout() time.Duration {
	return parseDuration(a.get("API_TIMEOUT", ""), 15*time.Second)
}
