package config

import (
	"fmt"
	"strings"
	"time"
)

type EnvVars struct {
	Port            string        `env:"PORT"             envDefault:"8080"`
	AppName         string        `env:"APP_NAME"         envDefault:"Token Relay"`
	Env             string        `env:"ENV"              envDefault:"DEV"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// GetPort returns the listen address, e.g. ":8080".
func (e EnvVars) GetPort() string {
	port := e.Port
	if port == "" {
		port = "8080"
	}
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return e.Env
}

func (e EnvVars) IsDev() bool {
	return strings.EqualFold(e.GetEnv(), "DEV")
}
