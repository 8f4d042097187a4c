package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	dbPathVar      = "DB_PATH"
	logLevelVar    = "LOG_LEVEL"
	envVar         = "ENV"
	devEnvironment = "DEV"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "3000")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Movies")
}

func (EnvVars) GetDBPath() string {
	return GetEnv(dbPathVar, "./data/movies.db")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func (EnvVars) GetEnv() string {
	return strings.ToUpper(GetEnv(envVar, devEnvironment))
}

// IsDev reports whether the process runs in development mode. Development
// mode relaxes the cookie security flags on the front tier.
func (e EnvVars) IsDev() bool {
	return e.GetEnv() == devEnvironment
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
