package config

import "strings"

type FrontConfig interface {
	GetAPIURL() string
	GetAPIKeyToken() string
	GetSSRPort() string
}

// Front holds the settings of the browser-facing tier.
type Front struct{}

var _ FrontConfig = Front{}

// GetAPIURL is the base URL of the API tier the front tier proxies to.
func (Front) GetAPIURL() string {
	return GetEnv("API_URL", "http://localhost:3000")
}

// GetAPIKeyToken is the API key the front tier presents when it signs users in.
func (Front) GetAPIKeyToken() string {
	return GetEnv("API_KEY_TOKEN", "")
}

// GetSSRPort is the listen address of the front tier.
func (Front) GetSSRPort() string {
	port := GetEnv("SSR_PORT", "8000")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}
