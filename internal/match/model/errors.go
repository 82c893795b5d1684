package model

import (
	"errors"

	"github.com/festy23/corpo_padel/internal/scoring"
)

var (
	// ErrInvalidScoreFormat indicates a malformed or illegal score string.
	ErrInvalidScoreFormat = scoring.ErrInvalidScoreFormat
	// ErrScoreRequired indicates that a completed match lacks one of its scores.
	ErrScoreRequired = errors.New("both scores are required for a completed match")
	// ErrScoreMismatch indicates that the two scores name different winners.
	ErrScoreMismatch = errors.New("scores disagree on the winner")
	// ErrSlotConflict indicates that the court is already booked at that slot.
	ErrSlotConflict = errors.New("court already booked")
	// ErrDuplicateCourt indicates that an event lists the same court twice.
	ErrDuplicateCourt = errors.New("court listed twice in event")
	// ErrTeamDoubleBooked indicates that a team plays two matches of one event.
	ErrTeamDoubleBooked = errors.New("team plays twice in event")
	// ErrSelfMatch indicates that a match opposes a team to itself.
	ErrSelfMatch = errors.New("team cannot play itself")
	// ErrInvalidEventSize indicates an event without matches or with too many.
	ErrInvalidEventSize = errors.New("event must hold 1 to 3 matches")
	// ErrPastDate indicates a date before today.
	ErrPastDate = errors.New("date is in the past")
	// ErrInvalidTransition indicates a forbidden status change or a slot
	// change on a match that is no longer upcoming.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrMatchNotFound indicates that the requested match does not exist.
	ErrMatchNotFound = errors.New("match not found")
	// ErrEventNotFound indicates that the requested event does not exist.
	ErrEventNotFound = errors.New("event not found")
	// ErrInvalidCourt indicates a court number outside 1..MaxCourts.
	ErrInvalidCourt = errors.New("invalid court number")
	// ErrInvalidSlot indicates a malformed date or time.
	ErrInvalidSlot = errors.New("invalid date or time")
	// ErrInvalidStatus indicates an unknown status value.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidTeam indicates a missing team reference.
	ErrInvalidTeam = errors.New("invalid team reference")
)
