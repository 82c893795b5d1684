package service

import (
	"sort"

	"github.com/festy23/corpo_padel/internal/scoring"
	standingsModel "github.com/festy23/corpo_padel/internal/standings/model"
	teamModel "github.com/festy23/corpo_padel/internal/team/model"
)

// Compute builds the standings table. Every team gets a row even without
// results; matches whose team 1 score does not parse are skipped and
// reported. Rows are ordered by points, wins and set difference (all
// descending), then company, team name and team id.
func Compute(teams []teamModel.Team, results []standingsModel.Result) ([]standingsModel.Entry, []standingsModel.Skipped) {
	rows := make(map[uint]*standingsModel.Entry, len(teams))
	entries := make([]*standingsModel.Entry, 0, len(teams))
	for _, team := range teams {
		e := &standingsModel.Entry{TeamID: team.ID, TeamName: team.Name, Company: team.Company}
		rows[team.ID] = e
		entries = append(entries, e)
	}

	var skipped []standingsModel.Skipped
	for _, res := range results {
		if res.ScoreTeam1 == nil {
			skipped = append(skipped, standingsModel.Skipped{MatchID: res.MatchID, Reason: "missing score_team1"})
			continue
		}
		score, err := scoring.Parse(*res.ScoreTeam1)
		if err != nil {
			skipped = append(skipped, standingsModel.Skipped{MatchID: res.MatchID, Reason: err.Error()})
			continue
		}

		own, opp := score.SetsWon()
		won := score.Won()
		if e, ok := rows[res.Team1ID]; ok {
			record(e, won, own, opp)
		}
		if e, ok := rows[res.Team2ID]; ok {
			record(e, !won, opp, own)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.Points != b.Points:
			return a.Points > b.Points
		case a.Wins != b.Wins:
			return a.Wins > b.Wins
		case a.SetDifference != b.SetDifference:
			return a.SetDifference > b.SetDifference
		case a.Company != b.Company:
			return a.Company < b.Company
		case a.TeamName != b.TeamName:
			return a.TeamName < b.TeamName
		}
		return a.TeamID < b.TeamID
	})

	table := make([]standingsModel.Entry, len(entries))
	for i, e := range entries {
		e.Position = i + 1
		table[i] = *e
	}
	return table, skipped
}

func record(e *standingsModel.Entry, won bool, setsWon, setsLost int) {
	e.MatchesPlayed++
	if won {
		e.Wins++
		e.Points += standingsModel.PointsWin
	} else {
		e.Losses++
		e.Points += standingsModel.PointsLoss
	}
	e.SetsWon += setsWon
	e.SetsLost += setsLost
	e.SetDifference = e.SetsWon - e.SetsLost
}
