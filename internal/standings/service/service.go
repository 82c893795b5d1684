// Package service computes the tournament standings.
package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	standingsModel "github.com/festy23/corpo_padel/internal/standings/model"
	"github.com/festy23/corpo_padel/internal/standings/repository"
	teamModel "github.com/festy23/corpo_padel/internal/team/model"
)

// Service defines the interface for standings operations.
type Service interface {
	// GetStandings returns the ranked table, optionally for one pool.
	GetStandings(ctx context.Context, filter standingsModel.Filter) (*standingsModel.StandingsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new standings service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, logger: logger}
}

// GetStandings loads teams and completed matches concurrently and ranks them.
func (s *service) GetStandings(
	ctx context.Context,
	filter standingsModel.Filter,
) (*standingsModel.StandingsResponse, error) {
	var (
		teams   []teamModel.Team
		results []standingsModel.Result
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.repo.Teams(gCtx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		results, err = s.repo.CompletedMatches(gCtx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table, skipped := Compute(teams, results)
	for _, sk := range skipped {
		s.logger.Warnw("completed match left out of standings",
			"match_id", sk.MatchID,
			"reason", sk.Reason,
		)
	}

	return &standingsModel.StandingsResponse{Standings: table, Total: len(table)}, nil
}
