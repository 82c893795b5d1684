// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/corpo_padel/internal/database/database"
	teamModel "github.com/festy23/corpo_padel/internal/team/model"
)

// cancelledStatus mirrors the match status that releases a team.
const cancelledStatus = "CANCELLED"

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create inserts a new team.
	Create(ctx context.Context, team *teamModel.Team) error

	// GetByID finds a team by id.
	GetByID(ctx context.Context, id uint) (*teamModel.Team, error)

	// List returns teams matching filter ordered by name.
	List(ctx context.Context, filter teamModel.ListFilter) ([]teamModel.Team, error)

	// LockByID finds a team by id and holds its row until the transaction ends.
	LockByID(ctx context.Context, id uint) (*teamModel.Team, error)

	// MissingIDs returns the ids in ids that have no team. Found rows are
	// share-locked, so their players cannot change while a booking commits.
	MissingIDs(ctx context.Context, ids []uint) ([]uint, error)

	// UpdatePlayers replaces both players of a team.
	UpdatePlayers(ctx context.Context, id, player1ID, player2ID uint) error

	// CountActiveMatches counts upcoming and completed matches of a team.
	CountActiveMatches(ctx context.Context, id uint) (int64, error)

	// Delete removes a team together with its cancelled matches.
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new team repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new team.
func (r *repository) Create(ctx context.Context, team *teamModel.Team) error {
	err := r.db.WithContext(ctx).Create(team).Error
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %q", teamModel.ErrTeamExists, team.Name)
		}
		return database.StorageError("create team", err)
	}
	return nil
}

// GetByID finds a team by id.
func (r *repository) GetByID(ctx context.Context, id uint) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).First(&team, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", teamModel.ErrTeamNotFound, id)
		}
		return nil, database.StorageError("get team", err)
	}
	return &team, nil
}

// LockByID finds a team by id with SELECT ... FOR UPDATE on PostgreSQL.
// SQLite serializes writers, so the plain read is enough there.
func (r *repository) LockByID(ctx context.Context, id uint) (*teamModel.Team, error) {
	query := r.db.WithContext(ctx)
	if database.IsPostgres(r.db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var team teamModel.Team
	if err := query.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", teamModel.ErrTeamNotFound, id)
		}
		return nil, database.StorageError("lock team", err)
	}
	return &team, nil
}

// List returns teams matching filter ordered by name.
func (r *repository) List(ctx context.Context, filter teamModel.ListFilter) ([]teamModel.Team, error) {
	query := r.db.WithContext(ctx).Model(&teamModel.Team{})
	if filter.PoolID != nil {
		query = query.Where("pool_id = ?", *filter.PoolID)
	}
	if filter.Company != "" {
		query = query.Where("LOWER(company) LIKE LOWER(?)", "%"+filter.Company+"%")
	}

	teams := []teamModel.Team{}
	if err := query.Order("name ASC").Order("id ASC").Find(&teams).Error; err != nil {
		return nil, database.StorageError("list teams", err)
	}
	return teams, nil
}

// MissingIDs returns the ids in ids that have no team, in input order.
func (r *repository) MissingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).Model(&teamModel.Team{})
	if database.IsPostgres(r.db) {
		query = query.Clauses(clause.Locking{Strength: "SHARE"})
	}

	var found []uint
	err := query.Where("id IN ?", ids).Pluck("id", &found).Error
	if err != nil {
		return nil, database.StorageError("check teams", err)
	}

	existing := make(map[uint]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}

	var missing []uint
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// UpdatePlayers replaces both players of a team.
func (r *repository) UpdatePlayers(ctx context.Context, id, player1ID, player2ID uint) error {
	result := r.db.WithContext(ctx).
		Model(&teamModel.Team{ID: id}).
		Updates(map[string]interface{}{
			"player1_id": player1ID,
			"player2_id": player2ID,
		})
	if result.Error != nil {
		return database.StorageError("update team players", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", teamModel.ErrTeamNotFound, id)
	}
	return nil
}

// CountActiveMatches counts upcoming and completed matches of a team.
func (r *repository) CountActiveMatches(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("matches").
		Where("(team1_id = ? OR team2_id = ?) AND status <> ?", id, id, cancelledStatus).
		Count(&count).Error
	if err != nil {
		return 0, database.StorageError("count team matches", err)
	}
	return count, nil
}

// Delete removes a team together with its cancelled matches. Callers must
// have checked CountActiveMatches inside the same transaction.
func (r *repository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)

	err := db.Exec(
		"DELETE FROM matches WHERE (team1_id = ? OR team2_id = ?) AND status = ?",
		id, id, cancelledStatus,
	).Error
	if err != nil {
		return database.StorageError("delete cancelled matches", err)
	}

	err = db.Exec("DELETE FROM events WHERE NOT EXISTS (SELECT 1 FROM matches WHERE matches.event_id = events.id)").Error
	if err != nil {
		return database.StorageError("delete empty events", err)
	}

	result := db.Delete(&teamModel.Team{}, id)
	if result.Error != nil {
		return database.StorageError("delete team", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", teamModel.ErrTeamNotFound, id)
	}
	return nil
}
