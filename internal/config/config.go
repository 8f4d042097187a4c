package config

import (
	"errors"

	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	AuthConfig
	CorsConfig
	FrontConfig
	GoogleConfig
	Validate() error
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDBPath() string
	GetLogLevel() string
	GetEnv() string
	IsDev() bool
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() []string
	GetAllowedHeaders() []string
}

type mainConfig struct {
	EnvVars
	Auth
	Cors
	Front
	Google
}

// New loads an optional .env file and returns a Config reading from the
// process environment.
func New() Config {
	_ = godotenv.Load()
	return mainConfig{}
}

func (c mainConfig) Validate() error {
	if c.GetSigningSecret() == "" {
		return errors.New("[config] " + authJWTSecretVar + " is required")
	}
	return nil
}
