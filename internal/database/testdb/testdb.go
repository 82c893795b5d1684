// Package testdb opens in-memory SQLite databases carrying the production
// schema, for repository and service tests.
package testdb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/corpo_padel/internal/database/database"
)

// schema mirrors migrations/000001_init.up.sql in SQLite dialect. Format
// checks that rely on PostgreSQL regular expressions are left out.
var schema = []string{
	`CREATE TABLE teams (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        VARCHAR(100) NOT NULL UNIQUE,
		company     VARCHAR(100) NOT NULL,
		player1_id  INTEGER NOT NULL,
		player2_id  INTEGER NOT NULL,
		pool_id     INTEGER,
		created_at  DATETIME,
		updated_at  DATETIME,
		CHECK (player1_id <> player2_id)
	)`,
	`CREATE TABLE events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		event_date  VARCHAR(10) NOT NULL,
		start_time  VARCHAR(5) NOT NULL,
		end_time    VARCHAR(5),
		created_at  DATETIME,
		updated_at  DATETIME,
		CHECK (end_time IS NULL OR end_time > start_time)
	)`,
	`CREATE TABLE matches (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id      INTEGER NOT NULL REFERENCES events (id) ON DELETE CASCADE,
		match_date    VARCHAR(10) NOT NULL,
		start_time    VARCHAR(5) NOT NULL,
		court_number  INTEGER NOT NULL CHECK (court_number >= 1),
		team1_id      INTEGER NOT NULL REFERENCES teams (id),
		team2_id      INTEGER NOT NULL REFERENCES teams (id),
		status        VARCHAR(16) NOT NULL DEFAULT 'UPCOMING'
		              CHECK (status IN ('UPCOMING', 'COMPLETED', 'CANCELLED')),
		score_team1   VARCHAR(32),
		score_team2   VARCHAR(32),
		created_at    DATETIME,
		updated_at    DATETIME,
		CHECK (team1_id <> team2_id),
		CHECK (status = 'COMPLETED' OR (score_team1 IS NULL AND score_team2 IS NULL))
	)`,
	`CREATE UNIQUE INDEX uq_matches_active_slot
		ON matches (match_date, start_time, court_number)
		WHERE status <> 'CANCELLED'`,
	`CREATE INDEX idx_matches_event_id ON matches (event_id)`,
}

// Open returns a fresh database with the schema applied. The pool is
// limited to one connection so that every query sees the same in-memory
// database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), database.GormConfig(zap.NewNop().Sugar()))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
