package model

import (
	"fmt"
	"time"

	"github.com/festy23/corpo_padel/internal/scoring"
)

// Rules are the tournament settings match validation depends on.
type Rules struct {
	// MaxCourts is the highest bookable court number.
	MaxCourts int
	// CrossCheck requires both scores to name the same winner.
	CrossCheck bool
}

// CheckTransition reports whether a match may move from one status to
// another. Keeping the status is always allowed.
func CheckTransition(from, to Status) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if from == to {
		return nil
	}
	switch {
	case from == StatusUpcoming && (to == StatusCompleted || to == StatusCancelled):
		return nil
	case (from == StatusCompleted || from == StatusCancelled) && to == StatusUpcoming:
		return nil
	}
	return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
}

// CheckCourt validates a court number against the court count.
func CheckCourt(court, maxCourts int) error {
	if court < 1 || court > maxCourts {
		return fmt.Errorf("%w: %d, courts are 1 to %d", ErrInvalidCourt, court, maxCourts)
	}
	return nil
}

// CheckNotPast rejects dates before today.
func CheckNotPast(date string, today time.Time) error {
	d, err := ParseDate(date)
	if err != nil {
		return err
	}
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(todayDate) {
		return fmt.Errorf("%w: %s is before %s", ErrPastDate, date, todayDate.Format(DateLayout))
	}
	return nil
}

// UpdatePlan is the validated outcome of an update request: the row values
// to write in one statement.
type UpdatePlan struct {
	Slot        Slot
	SlotChanged bool
	// Reoccupies is set when the target slot must be checked against other
	// bookings: the slot moved, or a cancelled match comes back.
	Reoccupies bool
	Status     Status
	ScoreTeam1 *string
	ScoreTeam2 *string
}

// PlanUpdate applies req to current. It checks everything that does not
// need the store; slot conflicts are left to the caller through Reoccupies.
func PlanUpdate(current Match, req UpdateMatchRequest, today time.Time, rules Rules) (UpdatePlan, error) {
	// Malformed scores are rejected even when the target status discards them.
	for _, raw := range []*string{req.ScoreTeam1, req.ScoreTeam2} {
		if _, _, err := scoring.ParseOptional(raw); err != nil {
			return UpdatePlan{}, err
		}
	}

	plan := UpdatePlan{Slot: current.Slot(), Status: current.Status}
	if req.Date != nil {
		if _, err := ParseDate(*req.Date); err != nil {
			return UpdatePlan{}, err
		}
		plan.Slot.Date = *req.Date
	}
	if req.StartTime != nil {
		if _, err := ParseTime(*req.StartTime); err != nil {
			return UpdatePlan{}, err
		}
		plan.Slot.Time = *req.StartTime
	}
	if req.CourtNumber != nil {
		if err := CheckCourt(*req.CourtNumber, rules.MaxCourts); err != nil {
			return UpdatePlan{}, err
		}
		plan.Slot.Court = *req.CourtNumber
	}
	if req.Status != nil {
		plan.Status = *req.Status
	}

	if err := CheckTransition(current.Status, plan.Status); err != nil {
		return UpdatePlan{}, err
	}

	plan.SlotChanged = plan.Slot != current.Slot()
	if plan.SlotChanged {
		if current.Status != StatusUpcoming {
			return UpdatePlan{}, fmt.Errorf("%w: cannot move a %s match", ErrInvalidTransition, current.Status)
		}
		if plan.Slot.Date != current.Date {
			if err := CheckNotPast(plan.Slot.Date, today); err != nil {
				return UpdatePlan{}, err
			}
		}
	}
	plan.Reoccupies = plan.Status != StatusCancelled &&
		(plan.SlotChanged || current.Status == StatusCancelled)

	if plan.Status != StatusCompleted {
		return plan, nil
	}

	score1, err := effectiveScore(req.ScoreTeam1, current.ScoreTeam1, "score_team1")
	if err != nil {
		return UpdatePlan{}, err
	}
	score2, err := effectiveScore(req.ScoreTeam2, current.ScoreTeam2, "score_team2")
	if err != nil {
		return UpdatePlan{}, err
	}
	if rules.CrossCheck && !scoring.Agree(score1, score2) {
		return UpdatePlan{}, fmt.Errorf("%w: %q and %q", ErrScoreMismatch, score1.String(), score2.String())
	}

	s1, s2 := score1.String(), score2.String()
	plan.ScoreTeam1, plan.ScoreTeam2 = &s1, &s2
	return plan, nil
}

// effectiveScore picks the supplied score, else the stored one.
func effectiveScore(supplied, stored *string, field string) (scoring.Score, error) {
	raw := stored
	if !scoring.IsBlank(supplied) {
		raw = supplied
	}
	score, ok, err := scoring.ParseOptional(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s missing", ErrScoreRequired, field)
	}
	return score, nil
}
