package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the process-wide configuration. It is loaded once at startup and
// passed by value into the components that need it.
type Config struct {
	EnvVars
	Cors
	Provider
}

// Load reads the configuration from the environment. Missing provider
// credentials are a startup error.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom is Load with an explicit environment map, mainly for tests.
// A nil map reads the process environment.
func LoadFrom(environment map[string]string) (Config, error) {
	var c Config
	opts := env.Options{Environment: environment}
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return Config{}, fmt.Errorf("[config Load] %w", err)
	}
	c.Provider.normalise()
	return c, nil
}
