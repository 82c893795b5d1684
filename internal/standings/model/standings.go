// Package model provides the standings table types.
package model

// Points awarded per result.
const (
	PointsWin  = 3
	PointsLoss = 0
)

// Entry is one row of the standings table.
type Entry struct {
	Position      int    `json:"position"`
	TeamID        uint   `json:"team_id"`
	TeamName      string `json:"team_name"`
	Company       string `json:"company"`
	MatchesPlayed int    `json:"matches_played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Points        int    `json:"points"`
	SetsWon       int    `json:"sets_won"`
	SetsLost      int    `json:"sets_lost"`
	SetDifference int    `json:"set_difference"`
}

// Result is a completed match as the standings see it. The score is read
// from team 1's side.
type Result struct {
	MatchID    uint    `gorm:"column:id"`
	Team1ID    uint    `gorm:"column:team1_id"`
	Team2ID    uint    `gorm:"column:team2_id"`
	ScoreTeam1 *string `gorm:"column:score_team1"`
}

// Skipped records a completed match left out of the table.
type Skipped struct {
	MatchID uint
	Reason  string
}

// Filter narrows the table to one pool.
type Filter struct {
	PoolID *uint
}

// StandingsResponse wraps the standings table.
type StandingsResponse struct {
	Standings []Entry `json:"standings"`
	Total     int     `json:"total"`
}
