package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTournamentConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"MAX_COURTS", "TOURNAMENT_TIMEZONE", "SCORE_CROSS_CHECK", "DEFAULT_MATCH_WINDOW_DAYS"} {
			t.Setenv(key, "")
		}

		cfg := LoadTournamentConfigFromEnv()
		assert.Equal(t, 10, cfg.MaxCourts)
		assert.Equal(t, "UTC", cfg.Timezone)
		assert.False(t, cfg.ScoreCrossCheck)
		assert.Equal(t, 30, cfg.MatchWindowDays)
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("MAX_COURTS", "4")
		t.Setenv("TOURNAMENT_TIMEZONE", "Europe/Paris")
		t.Setenv("SCORE_CROSS_CHECK", "true")
		t.Setenv("DEFAULT_MATCH_WINDOW_DAYS", "14")

		cfg := LoadTournamentConfigFromEnv()
		assert.Equal(t, 4, cfg.MaxCourts)
		assert.Equal(t, "Europe/Paris", cfg.Timezone)
		require.NotNil(t, cfg.loc)
		assert.Equal(t, "Europe/Paris", cfg.loc.String())
		assert.Same(t, cfg.loc, cfg.Location())
		assert.True(t, cfg.ScoreCrossCheck)
		assert.Equal(t, 14, cfg.MatchWindowDays)
	})
}

func TestTournamentConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    TournamentConfig
		wantError bool
	}{
		{"valid", TournamentConfig{MaxCourts: 10, Timezone: "UTC", MatchWindowDays: 30}, false},
		{"zero courts", TournamentConfig{MaxCourts: 0, Timezone: "UTC", MatchWindowDays: 30}, true},
		{"zero window", TournamentConfig{MaxCourts: 10, Timezone: "UTC", MatchWindowDays: 0}, true},
		{"unknown timezone", TournamentConfig{MaxCourts: 10, Timezone: "Mars/Olympus", MatchWindowDays: 30}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTournamentConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, TournamentConfig{Timezone: "UTC"}.Location())
	assert.Equal(t, time.UTC, TournamentConfig{Timezone: "nowhere"}.Location())
	assert.Equal(t, "Europe/Paris", TournamentConfig{Timezone: "Europe/Paris"}.Location().String())
}

func TestTournamentConfig_LocationResolvedAtLoad(t *testing.T) {
	t.Setenv("TOURNAMENT_TIMEZONE", "Asia/Tokyo")
	cfg := LoadTournamentConfigFromEnv()

	first := cfg.Location()
	copied := cfg
	assert.Same(t, first, copied.Location(), "copies share the resolved location")

	t.Setenv("TOURNAMENT_TIMEZONE", "")
	assert.Equal(t, time.UTC, LoadTournamentConfigFromEnv().Location())
}
