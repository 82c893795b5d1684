// Package scoring parses and validates padel set-score strings.
//
// A score lists the games won per set from one side's point of view:
// "6-4, 3-6, 7-5". Sets are joined by exactly ", " and a match is best of
// three sets.
package scoring

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidScoreFormat indicates a malformed or rule-violating score string.
var ErrInvalidScoreFormat = errors.New("invalid score format")

const (
	setSeparator  = ", "
	gameSeparator = "-"
	maxSets       = 3
	setsToWin     = 2
)

// Set is one set seen from the scoring side.
type Set struct {
	Own      int
	Opponent int
}

// Won reports whether the scoring side took the set.
func (s Set) Won() bool {
	return s.Own > s.Opponent
}

// String formats the set as "<own>-<opponent>".
func (s Set) String() string {
	return strconv.Itoa(s.Own) + gameSeparator + strconv.Itoa(s.Opponent)
}

// Score is an ordered list of sets. A Score returned by Parse is always a
// legal, finished best-of-three match.
type Score []Set

// Parse validates raw and returns its sets. Every failure wraps
// ErrInvalidScoreFormat.
func Parse(raw string) (Score, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty score", ErrInvalidScoreFormat)
	}

	tokens := strings.Split(raw, setSeparator)
	if len(tokens) > maxSets {
		return nil, fmt.Errorf("%w: %d sets listed, at most %d allowed", ErrInvalidScoreFormat, len(tokens), maxSets)
	}

	score := make(Score, 0, len(tokens))
	own, opp := 0, 0
	for i, token := range tokens {
		if own == setsToWin || opp == setsToWin {
			return nil, fmt.Errorf("%w: set %d %q played after the match was decided", ErrInvalidScoreFormat, i+1, token)
		}

		set, err := parseSet(token)
		if err != nil {
			return nil, fmt.Errorf("%w: set %d %q: %s", ErrInvalidScoreFormat, i+1, token, err.Error())
		}

		if set.Won() {
			own++
		} else {
			opp++
		}
		score = append(score, set)
	}

	if own < setsToWin && opp < setsToWin {
		return nil, fmt.Errorf("%w: %q is unfinished, no side won %d sets", ErrInvalidScoreFormat, raw, setsToWin)
	}

	return score, nil
}

// ParseOptional treats nil or blank input as an absent score. ok is false
// when no score was given.
func ParseOptional(raw *string) (score Score, ok bool, err error) {
	if IsBlank(raw) {
		return nil, false, nil
	}
	score, err = Parse(*raw)
	if err != nil {
		return nil, false, err
	}
	return score, true, nil
}

// IsBlank reports whether raw carries no score.
func IsBlank(raw *string) bool {
	return raw == nil || strings.TrimSpace(*raw) == ""
}

func parseSet(token string) (Set, error) {
	ownRaw, oppRaw, found := strings.Cut(token, gameSeparator)
	if !found {
		return Set{}, errors.New("expected <games>-<games>")
	}

	own, err := parseGames(ownRaw)
	if err != nil {
		return Set{}, err
	}
	opp, err := parseGames(oppRaw)
	if err != nil {
		return Set{}, err
	}

	set := Set{Own: own, Opponent: opp}
	if err := checkSet(set); err != nil {
		return Set{}, err
	}
	return set, nil
}

// parseGames accepts a non-negative decimal without sign or leading zeros,
// so that a parsed score serializes back to the same bytes.
func parseGames(raw string) (int, error) {
	if raw == "" {
		return 0, errors.New("missing game count")
	}
	if len(raw) > 2 {
		return 0, fmt.Errorf("game count %q out of range", raw)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("game count %q is not a number", raw)
		}
	}
	if len(raw) > 1 && raw[0] == '0' {
		return 0, fmt.Errorf("game count %q has a leading zero", raw)
	}
	return strconv.Atoi(raw)
}

func checkSet(s Set) error {
	hi, lo := s.Own, s.Opponent
	if lo > hi {
		hi, lo = lo, hi
	}

	switch {
	case hi < 6:
		return errors.New("set not finished, winner needs at least 6 games")
	case hi > 7:
		return errors.New("no side can win more than 7 games")
	case hi == 7 && lo != 5 && lo != 6:
		return errors.New("a 7-game set must end 7-5 or 7-6")
	case hi == 6 && hi-lo < 2:
		return errors.New("a 6-game set needs a 2-game margin")
	}
	return nil
}

// String serializes the score in wire format.
func (s Score) String() string {
	parts := make([]string, len(s))
	for i, set := range s {
		parts[i] = set.String()
	}
	return strings.Join(parts, setSeparator)
}

// SetsWon returns the sets taken by each side.
func (s Score) SetsWon() (own, opponent int) {
	for _, set := range s {
		if set.Won() {
			own++
		} else {
			opponent++
		}
	}
	return own, opponent
}

// Won reports whether the scoring side won the match.
func (s Score) Won() bool {
	own, opp := s.SetsWon()
	return own > opp
}

// Mirror returns the same match seen from the other side.
func (s Score) Mirror() Score {
	out := make(Score, len(s))
	for i, set := range s {
		out[i] = Set{Own: set.Opponent, Opponent: set.Own}
	}
	return out
}

// Agree reports whether two scores written from opposite sides name the
// same winner. second is turned around to first's side before comparing, so
// the set details may differ.
func Agree(first, second Score) bool {
	return first.Won() == second.Mirror().Won()
}
