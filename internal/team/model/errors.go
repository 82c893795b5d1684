package model

import "errors"

var (
	// ErrTeamExists indicates that a team with the given name already exists.
	ErrTeamExists = errors.New("team already exists")
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidTeamName indicates that the provided team name is empty or too long.
	ErrInvalidTeamName = errors.New("invalid team name")
	// ErrInvalidCompany indicates that the company name is empty or too long.
	ErrInvalidCompany = errors.New("invalid company")
	// ErrSamePlayer indicates that both player slots reference the same player.
	ErrSamePlayer = errors.New("a team needs two distinct players")
	// ErrTeamLocked indicates that the team already has upcoming or completed
	// matches, so its players cannot change and it cannot be deleted.
	ErrTeamLocked = errors.New("team has active matches")
)
