// Package model provides domain models and DTOs for match module.
package model

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a match.
type Status string

const (
	// StatusUpcoming is the initial state of every match.
	StatusUpcoming Status = "UPCOMING"
	// StatusCompleted marks a played match carrying scores.
	StatusCompleted Status = "COMPLETED"
	// StatusCancelled releases the slot of a match.
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Wire layouts of dates and times.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Event groups the matches played at the same date and start time.
type Event struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	Date      string    `gorm:"column:event_date;size:10;not null" json:"date"`
	StartTime string    `gorm:"column:start_time;size:5;not null" json:"start_time"`
	EndTime   *string   `gorm:"column:end_time;size:5" json:"end_time,omitempty"`
	Matches   []Match   `gorm:"foreignKey:EventID" json:"matches"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Event) TableName() string {
	return "events"
}

// Match is one game between two teams on one court. Date and StartTime
// duplicate the event's so that the slot key can be indexed.
type Match struct {
	ID          uint      `gorm:"primaryKey;column:id" json:"id"`
	EventID     uint      `gorm:"column:event_id;not null" json:"event_id"`
	Date        string    `gorm:"column:match_date;size:10;not null" json:"date"`
	StartTime   string    `gorm:"column:start_time;size:5;not null" json:"start_time"`
	CourtNumber int       `gorm:"column:court_number;not null" json:"court_number"`
	Team1ID     uint      `gorm:"column:team1_id;not null" json:"team1_id"`
	Team2ID     uint      `gorm:"column:team2_id;not null" json:"team2_id"`
	Status      Status    `gorm:"column:status;size:16;not null" json:"status"`
	ScoreTeam1  *string   `gorm:"column:score_team1;size:32" json:"score_team1"`
	ScoreTeam2  *string   `gorm:"column:score_team2;size:32" json:"score_team2"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Match) TableName() string {
	return "matches"
}

// Slot returns the court booking held by the match.
func (m Match) Slot() Slot {
	return Slot{Date: m.Date, Time: m.StartTime, Court: m.CourtNumber}
}

// Slot identifies one court at one date and start time.
type Slot struct {
	Date  string
	Time  string
	Court int
}

// String describes the slot for error messages.
func (s Slot) String() string {
	return fmt.Sprintf("court %d on %s at %s", s.Court, s.Date, s.Time)
}

// Key is the lock key of the slot.
func (s Slot) Key() string {
	return fmt.Sprintf("%s %s #%d", s.Date, s.Time, s.Court)
}

// ParseDate parses a canonical YYYY-MM-DD date.
func ParseDate(raw string) (time.Time, error) {
	return parseCanonical(DateLayout, raw, "date")
}

// ParseTime parses a canonical HH:MM time.
func ParseTime(raw string) (time.Time, error) {
	return parseCanonical(TimeLayout, raw, "time")
}

func parseCanonical(layout, raw, field string) (time.Time, error) {
	t, err := time.Parse(layout, raw)
	if err != nil || t.Format(layout) != raw {
		return time.Time{}, fmt.Errorf("%w: %s %q, expected %s", ErrInvalidSlot, field, raw, layout)
	}
	return t, nil
}
