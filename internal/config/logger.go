package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	logLevels    = []string{"debug", "info", "warn", "error"}
	logFormats   = []string{"json", "console"}
	sqlLogLevels = []string{"silent", "error", "warn", "info"}
)

// LoggerConfig holds application and SQL logging settings.
type LoggerConfig struct {
	// Level is the application log level (debug, info, warn, error).
	Level string
	// Format is json or console.
	Format string
	// Output is stdout, stderr or a file path.
	Output string
	// SQLLevel controls gorm statement logging (silent, error, warn, info).
	SQLLevel string
	// SlowQuery marks statements slower than this as warnings. Zero disables it.
	SlowQuery time.Duration
}

// LoadLoggerConfigFromEnv reads LOG_* variables.
func LoadLoggerConfigFromEnv() LoggerConfig {
	return LoggerConfig{
		Level:     strings.ToLower(GetEnv("LOG_LEVEL", "info")),
		Format:    strings.ToLower(GetEnv("LOG_FORMAT", "json")),
		Output:    GetEnv("LOG_OUTPUT", "stdout"),
		SQLLevel:  strings.ToLower(GetEnv("LOG_SQL_LEVEL", "warn")),
		SlowQuery: GetEnvDuration("LOG_SLOW_QUERY", 500*time.Millisecond),
	}
}

// Validate validates logger configuration.
func (c LoggerConfig) Validate() error {
	if err := oneOf("log level", c.Level, logLevels); err != nil {
		return err
	}
	if err := oneOf("log format", c.Format, logFormats); err != nil {
		return err
	}
	if c.SQLLevel != "" {
		if err := oneOf("sql log level", c.SQLLevel, sqlLogLevels); err != nil {
			return err
		}
	}
	if c.SlowQuery < 0 {
		return fmt.Errorf("LOG_SLOW_QUERY must not be negative")
	}
	return nil
}

// IsProduction reports whether the production zap preset should be used:
// JSON output at info level or above.
func (c LoggerConfig) IsProduction() bool {
	return c.Level != "debug" && c.Format != "console"
}

func oneOf(what, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("invalid %s: %q (must be: %s)", what, value, strings.Join(allowed, ", "))
}
