// Package service provides business logic layer for team module.
package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	dbconfig "github.com/festy23/corpo_padel/internal/database/config"
	"github.com/festy23/corpo_padel/internal/database/database"
	teamModel "github.com/festy23/corpo_padel/internal/team/model"
	"github.com/festy23/corpo_padel/internal/team/repository"
	"github.com/festy23/corpo_padel/pkg/retry"
)

const maxNameLength = 100

// Service defines the interface for team business logic operations.
type Service interface {
	// CreateTeam registers a new team.
	CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.Team, error)

	// GetTeam returns a team by id.
	GetTeam(ctx context.Context, id uint) (*teamModel.Team, error)

	// ListTeams returns teams matching filter.
	ListTeams(ctx context.Context, filter teamModel.ListFilter) (*teamModel.TeamsResponse, error)

	// UpdatePlayers replaces the players of a team without active matches.
	UpdatePlayers(ctx context.Context, id uint, req *teamModel.UpdatePlayersRequest) (*teamModel.Team, error)

	// DeleteTeam removes a team without active matches.
	DeleteTeam(ctx context.Context, id uint) error
}

type service struct {
	repo    repository.Repository
	db      *gorm.DB
	logger  *zap.SugaredLogger
	txRetry retry.Config
}

// New creates a new team service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:    repo,
		db:      db,
		logger:  logger,
		txRetry: dbconfig.LoadTxRetryConfigFromEnv(),
	}
}

// CreateTeam registers a new team.
func (s *service) CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.Team, error) {
	name := strings.TrimSpace(req.Name)
	company := strings.TrimSpace(req.Company)

	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return nil, teamModel.ErrInvalidTeamName
	}
	if company == "" || utf8.RuneCountInString(company) > maxNameLength {
		return nil, teamModel.ErrInvalidCompany
	}
	if req.Player1ID == req.Player2ID {
		return nil, teamModel.ErrSamePlayer
	}

	team := &teamModel.Team{
		Name:      name,
		Company:   company,
		Player1ID: req.Player1ID,
		Player2ID: req.Player2ID,
		PoolID:    req.PoolID,
	}
	if err := s.repo.Create(ctx, team); err != nil {
		return nil, err
	}

	s.logger.Infow("team created", "team_id", team.ID, "name", team.Name, "company", team.Company)
	return team, nil
}

// GetTeam returns a team by id.
func (s *service) GetTeam(ctx context.Context, id uint) (*teamModel.Team, error) {
	return s.repo.GetByID(ctx, id)
}

// ListTeams returns teams matching filter.
func (s *service) ListTeams(ctx context.Context, filter teamModel.ListFilter) (*teamModel.TeamsResponse, error) {
	teams, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &teamModel.TeamsResponse{Teams: teams, Total: len(teams)}, nil
}

// UpdatePlayers replaces the players of a team without active matches.
func (s *service) UpdatePlayers(
	ctx context.Context,
	id uint,
	req *teamModel.UpdatePlayersRequest,
) (*teamModel.Team, error) {
	if req.Player1ID == req.Player2ID {
		return nil, teamModel.ErrSamePlayer
	}

	var team *teamModel.Team
	err := database.InTx(ctx, s.db, s.txRetry, s.logger, "update team players", func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		if err := ensureUnlocked(ctx, txRepo, id); err != nil {
			return err
		}
		if err := txRepo.UpdatePlayers(ctx, id, req.Player1ID, req.Player2ID); err != nil {
			return err
		}

		var err error
		team, err = txRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("team players updated", "team_id", id, "player1_id", req.Player1ID, "player2_id", req.Player2ID)
	return team, nil
}

// DeleteTeam removes a team without active matches.
func (s *service) DeleteTeam(ctx context.Context, id uint) error {
	err := database.InTx(ctx, s.db, s.txRetry, s.logger, "delete team", func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		if err := ensureUnlocked(ctx, txRepo, id); err != nil {
			return err
		}
		return txRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("team deleted", "team_id", id)
	return nil
}

// ensureUnlocked locks the team row and fails when the team is missing or
// has upcoming or completed matches. Bookings share-lock the same row, so the
// count cannot go stale before commit.
func ensureUnlocked(ctx context.Context, repo repository.Repository, id uint) error {
	if _, err := repo.LockByID(ctx, id); err != nil {
		return err
	}
	count, err := repo.CountActiveMatches(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: team %d has %d upcoming or completed matches", teamModel.ErrTeamLocked, id, count)
	}
	return nil
}
