// Package repository loads the data the standings are computed from.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/festy23/corpo_padel/internal/database/database"
	matchModel "github.com/festy23/corpo_padel/internal/match/model"
	standingsModel "github.com/festy23/corpo_padel/internal/standings/model"
	teamModel "github.com/festy23/corpo_padel/internal/team/model"
)

// Repository defines the read operations behind the standings.
type Repository interface {
	// Teams returns the teams ranked by the table.
	Teams(ctx context.Context, filter standingsModel.Filter) ([]teamModel.Team, error)

	// CompletedMatches returns completed matches involving those teams.
	CompletedMatches(ctx context.Context, filter standingsModel.Filter) ([]standingsModel.Result, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new standings repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Teams(ctx context.Context, filter standingsModel.Filter) ([]teamModel.Team, error) {
	query := r.db.WithContext(ctx).Model(&teamModel.Team{})
	if filter.PoolID != nil {
		query = query.Where("pool_id = ?", *filter.PoolID)
	}

	teams := []teamModel.Team{}
	if err := query.Order("id ASC").Find(&teams).Error; err != nil {
		return nil, database.StorageError("load standings teams", err)
	}
	return teams, nil
}

func (r *repository) CompletedMatches(ctx context.Context, filter standingsModel.Filter) ([]standingsModel.Result, error) {
	query := r.db.WithContext(ctx).
		Model(&matchModel.Match{}).
		Select("id", "team1_id", "team2_id", "score_team1").
		Where("status = ?", matchModel.StatusCompleted)
	if filter.PoolID != nil {
		pool := r.db.Model(&teamModel.Team{}).Select("id").Where("pool_id = ?", *filter.PoolID)
		query = query.Where("(team1_id IN (?) OR team2_id IN (?))", pool, pool)
	}

	results := []standingsModel.Result{}
	if err := query.Order("id ASC").Find(&results).Error; err != nil {
		return nil, database.StorageError("load completed matches", err)
	}
	return results, nil
}
