package config

import (
	"fmt"
	"time"
)

// TournamentConfig holds the scheduling and scoring rules of the tournament.
type TournamentConfig struct {
	// MaxCourts is the highest bookable court number (courts are 1..MaxCourts).
	MaxCourts int
	// Timezone is the IANA zone used to decide what "today" means.
	Timezone string
	// ScoreCrossCheck requires score_team1 and score_team2 to name the same winner.
	ScoreCrossCheck bool
	// MatchWindowDays is the default look-ahead of match listings.
	MatchWindowDays int

	loc *time.Location
}

// LoadTournamentConfigFromEnv loads tournament configuration from environment variables.
// The timezone is resolved here once.
func LoadTournamentConfigFromEnv() TournamentConfig {
	cfg := TournamentConfig{
		MaxCourts:       GetEnvInt("MAX_COURTS", 10),
		Timezone:        GetEnv("TOURNAMENT_TIMEZONE", "UTC"),
		ScoreCrossCheck: GetEnvBool("SCORE_CROSS_CHECK", false),
		MatchWindowDays: GetEnvInt("DEFAULT_MATCH_WINDOW_DAYS", 30),
	}
	cfg.loc = resolveLocation(cfg.Timezone)
	return cfg
}

// Location returns the tournament timezone, falling back to UTC. Configs
// built without LoadTournamentConfigFromEnv resolve Timezone on each call.
func (c TournamentConfig) Location() *time.Location {
	if c.loc != nil {
		return c.loc
	}
	return resolveLocation(c.Timezone)
}

func resolveLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate validates tournament configuration.
func (c TournamentConfig) Validate() error {
	if c.MaxCourts <= 0 {
		return fmt.Errorf("MaxCourts must be greater than 0")
	}
	if c.MatchWindowDays <= 0 {
		return fmt.Errorf("MatchWindowDays must be greater than 0")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TOURNAMENT_TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}
