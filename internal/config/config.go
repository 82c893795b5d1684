package config

import (
	"errors"
	"fmt"
)

var ginModes = []string{"debug", "release", "test"}

// Config is the complete runtime configuration of the server.
type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Tournament TournamentConfig
	// GinMode is the Gin framework mode (debug, release, test).
	GinMode string
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() Config {
	return Config{
		Server:     LoadServerConfigFromEnv(),
		Logger:     LoadLoggerConfigFromEnv(),
		Tournament: LoadTournamentConfigFromEnv(),
		GinMode:    GetEnv("GIN_MODE", "release"),
	}
}

// Validate checks every section and reports all failures at once.
func (c Config) Validate() error {
	sections := []struct {
		name     string
		validate func() error
	}{
		{"server", c.Server.Validate},
		{"logger", c.Logger.Validate},
		{"tournament", c.Tournament.Validate},
	}

	var errs []error
	for _, s := range sections {
		if err := s.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s config validation failed: %w", s.name, err))
		}
	}
	if err := oneOf("GIN_MODE", c.GinMode, ginModes); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
