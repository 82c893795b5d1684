package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadLoggerConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT", "LOG_SQL_LEVEL", "LOG_SLOW_QUERY"} {
			t.Setenv(key, "")
		}

		cfg := LoadLoggerConfigFromEnv()
		assert.Equal(t, LoggerConfig{
			Level:     "info",
			Format:    "json",
			Output:    "stdout",
			SQLLevel:  "warn",
			SlowQuery: 500 * time.Millisecond,
		}, cfg)
	})

	t.Run("custom values are normalized", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("LOG_FORMAT", "Console")
		t.Setenv("LOG_OUTPUT", "/var/log/padel.log")
		t.Setenv("LOG_SQL_LEVEL", "INFO")
		t.Setenv("LOG_SLOW_QUERY", "2s")

		cfg := LoadLoggerConfigFromEnv()
		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "console", cfg.Format)
		assert.Equal(t, "/var/log/padel.log", cfg.Output)
		assert.Equal(t, "info", cfg.SQLLevel)
		assert.Equal(t, 2*time.Second, cfg.SlowQuery)
	})
}

func TestLoggerConfig_Validate(t *testing.T) {
	base := LoggerConfig{Level: "info", Format: "json", Output: "stdout", SQLLevel: "warn"}

	tests := []struct {
		name    string
		mutate  func(c *LoggerConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*LoggerConfig) {}},
		{name: "sql level may be empty", mutate: func(c *LoggerConfig) { c.SQLLevel = "" }},
		{name: "console debug", mutate: func(c *LoggerConfig) { c.Level, c.Format = "debug", "console" }},
		{name: "invalid level", mutate: func(c *LoggerConfig) { c.Level = "trace" }, wantErr: "invalid log level"},
		{name: "invalid format", mutate: func(c *LoggerConfig) { c.Format = "xml" }, wantErr: "invalid log format"},
		{name: "invalid sql level", mutate: func(c *LoggerConfig) { c.SQLLevel = "loud" }, wantErr: "invalid sql log level"},
		{name: "negative slow query", mutate: func(c *LoggerConfig) { c.SlowQuery = -time.Second }, wantErr: "LOG_SLOW_QUERY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoggerConfig_IsProduction(t *testing.T) {
	assert.True(t, LoggerConfig{Level: "info", Format: "json"}.IsProduction())
	assert.True(t, LoggerConfig{Level: "error", Format: "json"}.IsProduction())
	assert.False(t, LoggerConfig{Level: "debug", Format: "json"}.IsProduction())
	assert.False(t, LoggerConfig{Level: "warn", Format: "console"}.IsProduction())
}
