package model

import (
	"fmt"
	"sort"
	"time"
)

// MaxEventMatches is the largest number of matches an event may hold.
const MaxEventMatches = 3

// ValidateEvent checks an event request without touching the store. Failures
// come in a fixed order: past date, size, duplicate court, double-booked
// team, self match, then court range and team references.
func ValidateEvent(req CreateEventRequest, today time.Time, rules Rules) error {
	if _, err := ParseTime(req.StartTime); err != nil {
		return err
	}
	if err := CheckNotPast(req.Date, today); err != nil {
		return err
	}
	if req.EndTime != nil {
		if _, err := ParseTime(*req.EndTime); err != nil {
			return err
		}
		if *req.EndTime <= req.StartTime {
			return fmt.Errorf("%w: end_time %s is not after start_time %s", ErrInvalidSlot, *req.EndTime, req.StartTime)
		}
	}

	if n := len(req.Matches); n < 1 || n > MaxEventMatches {
		return fmt.Errorf("%w: got %d", ErrInvalidEventSize, n)
	}

	courts := make(map[int]struct{}, len(req.Matches))
	for _, spec := range req.Matches {
		if _, dup := courts[spec.CourtNumber]; dup {
			return fmt.Errorf("%w: court %d", ErrDuplicateCourt, spec.CourtNumber)
		}
		courts[spec.CourtNumber] = struct{}{}
	}

	// A team may appear in at most one spec. Self matches are reported next.
	booked := make(map[uint]int, 2*len(req.Matches))
	for i, spec := range req.Matches {
		for _, team := range []uint{spec.Team1ID, spec.Team2ID} {
			if j, seen := booked[team]; seen && j != i {
				return fmt.Errorf("%w: team %d", ErrTeamDoubleBooked, team)
			}
			booked[team] = i
		}
	}

	for _, spec := range req.Matches {
		if spec.Team1ID == spec.Team2ID {
			return fmt.Errorf("%w: team %d on court %d", ErrSelfMatch, spec.Team1ID, spec.CourtNumber)
		}
	}

	for _, spec := range req.Matches {
		if err := CheckCourt(spec.CourtNumber, rules.MaxCourts); err != nil {
			return err
		}
		if spec.Team1ID == 0 || spec.Team2ID == 0 {
			return fmt.Errorf("%w: court %d needs two teams", ErrInvalidTeam, spec.CourtNumber)
		}
	}
	return nil
}

// Slots returns the bookings an event request asks for, ordered by court.
func (r CreateEventRequest) Slots() []Slot {
	slots := make([]Slot, 0, len(r.Matches))
	for _, spec := range r.Matches {
		slots = append(slots, Slot{Date: r.Date, Time: r.StartTime, Court: spec.CourtNumber})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Court < slots[j].Court })
	return slots
}

// TeamIDs returns every team referenced by the request.
func (r CreateEventRequest) TeamIDs() []uint {
	ids := make([]uint, 0, 2*len(r.Matches))
	for _, spec := range r.Matches {
		ids = append(ids, spec.Team1ID, spec.Team2ID)
	}
	return ids
}

// EventRequest turns a single-match request into an event of one.
func (r CreateMatchRequest) EventRequest() CreateEventRequest {
	return CreateEventRequest{
		Date:      r.Date,
		StartTime: r.StartTime,
		Matches: []MatchSpec{{
			CourtNumber: r.CourtNumber,
			Team1ID:     r.Team1ID,
			Team2ID:     r.Team2ID,
		}},
	}
}
