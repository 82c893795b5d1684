// Package repository provides data access layer for match module.
package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/corpo_padel/internal/database/database"
	matchModel "github.com/festy23/corpo_padel/internal/match/model"
)

// Repository defines the interface for match and event data access operations.
type Repository interface {
	// LockSlots serializes writers competing for the same slots until the
	// surrounding transaction ends. It is a no-op outside PostgreSQL.
	LockSlots(ctx context.Context, slots []matchModel.Slot) error

	// HasConflict reports whether another non-cancelled match holds slot.
	HasConflict(ctx context.Context, slot matchModel.Slot, excludeMatchID *uint) (bool, error)

	// CreateEvent inserts an event together with its matches.
	CreateEvent(ctx context.Context, event *matchModel.Event) error

	// GetEvent finds an event by id with its matches ordered by court.
	GetEvent(ctx context.Context, id uint) (*matchModel.Event, error)

	// MoveEvent changes the date and start time of an event.
	MoveEvent(ctx context.Context, id uint, date, startTime string) error

	// DeleteEvent removes an event and its matches.
	DeleteEvent(ctx context.Context, id uint) error

	// ListEvents returns events within the filter's date window.
	ListEvents(ctx context.Context, filter matchModel.EventFilter) ([]matchModel.Event, error)

	// GetMatch finds a match by id. With forUpdate the row stays locked
	// until the transaction ends on PostgreSQL.
	GetMatch(ctx context.Context, id uint, forUpdate bool) (*matchModel.Match, error)

	// UpdateMatch writes slot, event, status and scores in one statement.
	UpdateMatch(ctx context.Context, id, eventID uint, plan matchModel.UpdatePlan) error

	// DeleteMatch removes a match.
	DeleteMatch(ctx context.Context, id uint) error

	// CountEventMatches counts the matches of an event.
	CountEventMatches(ctx context.Context, eventID uint) (int64, error)

	// ListMatches returns matches matching filter ordered by slot.
	ListMatches(ctx context.Context, filter matchModel.ListFilter) ([]matchModel.Match, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new match repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// LockSlots takes one transaction-scoped advisory lock per slot, in key
// order so that overlapping requests cannot deadlock.
func (r *repository) LockSlots(ctx context.Context, slots []matchModel.Slot) error {
	if !database.IsPostgres(r.db) || len(slots) == 0 {
		return nil
	}

	keys := make([]string, 0, len(slots))
	for _, slot := range slots {
		keys = append(keys, slot.Key())
	}
	sort.Strings(keys)

	db := r.db.WithContext(ctx)
	for _, key := range keys {
		if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
			return database.StorageError("lock slot", err)
		}
	}
	return nil
}

// HasConflict reports whether another non-cancelled match holds slot.
func (r *repository) HasConflict(ctx context.Context, slot matchModel.Slot, excludeMatchID *uint) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&matchModel.Match{}).
		Where("match_date = ? AND start_time = ? AND court_number = ?", slot.Date, slot.Time, slot.Court).
		Where("status <> ?", matchModel.StatusCancelled)
	if excludeMatchID != nil {
		query = query.Where("id <> ?", *excludeMatchID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, database.StorageError("check slot", err)
	}
	return count > 0, nil
}

// CreateEvent inserts an event together with its matches. Callers run it in
// a transaction; a failed match insert leaves the event behind otherwise.
func (r *repository) CreateEvent(ctx context.Context, event *matchModel.Event) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(event).Error; err != nil {
		return database.StorageError("create event", err)
	}
	if len(event.Matches) == 0 {
		return nil
	}

	for i := range event.Matches {
		event.Matches[i].EventID = event.ID
	}
	if err := db.Create(&event.Matches).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: slot taken on %s at %s", matchModel.ErrSlotConflict, event.Date, event.StartTime)
		}
		return database.StorageError("create matches", err)
	}
	return nil
}

// GetEvent finds an event by id with its matches ordered by court.
func (r *repository) GetEvent(ctx context.Context, id uint) (*matchModel.Event, error) {
	var event matchModel.Event
	err := r.db.WithContext(ctx).
		Preload("Matches", func(db *gorm.DB) *gorm.DB {
			return db.Order("court_number ASC")
		}).
		First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", matchModel.ErrEventNotFound, id)
		}
		return nil, database.StorageError("get event", err)
	}
	return &event, nil
}

// MoveEvent changes the date and start time of an event. An end time that
// would no longer follow the start is dropped.
func (r *repository) MoveEvent(ctx context.Context, id uint, date, startTime string) error {
	result := r.db.WithContext(ctx).
		Model(&matchModel.Event{ID: id}).
		Updates(map[string]interface{}{
			"event_date": date,
			"start_time": startTime,
			"end_time":   gorm.Expr("CASE WHEN end_time > ? THEN end_time ELSE NULL END", startTime),
		})
	if result.Error != nil {
		return database.StorageError("move event", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", matchModel.ErrEventNotFound, id)
	}
	return nil
}

// DeleteEvent removes an event and its matches.
func (r *repository) DeleteEvent(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("event_id = ?", id).Delete(&matchModel.Match{}).Error; err != nil {
		return database.StorageError("delete event matches", err)
	}

	result := db.Delete(&matchModel.Event{}, id)
	if result.Error != nil {
		return database.StorageError("delete event", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", matchModel.ErrEventNotFound, id)
	}
	return nil
}

// ListEvents returns events within the filter's date window.
func (r *repository) ListEvents(ctx context.Context, filter matchModel.EventFilter) ([]matchModel.Event, error) {
	query := r.db.WithContext(ctx).
		Preload("Matches", func(db *gorm.DB) *gorm.DB {
			return db.Order("court_number ASC")
		})
	if filter.StartDate != "" {
		query = query.Where("event_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Where("event_date <= ?", filter.EndDate)
	}

	events := []matchModel.Event{}
	if err := query.Order("event_date ASC").Order("start_time ASC").Order("id ASC").Find(&events).Error; err != nil {
		return nil, database.StorageError("list events", err)
	}
	return events, nil
}

// GetMatch finds a match by id.
func (r *repository) GetMatch(ctx context.Context, id uint, forUpdate bool) (*matchModel.Match, error) {
	query := r.db.WithContext(ctx)
	if forUpdate && database.IsPostgres(r.db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var match matchModel.Match
	if err := query.First(&match, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", matchModel.ErrMatchNotFound, id)
		}
		return nil, database.StorageError("get match", err)
	}
	return &match, nil
}

// UpdateMatch writes slot, event, status and scores in one statement so
// that the scores check constraint never sees a half-applied row.
func (r *repository) UpdateMatch(ctx context.Context, id, eventID uint, plan matchModel.UpdatePlan) error {
	result := r.db.WithContext(ctx).
		Model(&matchModel.Match{ID: id}).
		Updates(map[string]interface{}{
			"event_id":     eventID,
			"match_date":   plan.Slot.Date,
			"start_time":   plan.Slot.Time,
			"court_number": plan.Slot.Court,
			"status":       plan.Status,
			"score_team1":  plan.ScoreTeam1,
			"score_team2":  plan.ScoreTeam2,
		})
	if result.Error != nil {
		if database.IsUniqueViolation(result.Error) {
			return fmt.Errorf("%w: %s", matchModel.ErrSlotConflict, plan.Slot)
		}
		return database.StorageError("update match", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", matchModel.ErrMatchNotFound, id)
	}
	return nil
}

// DeleteMatch removes a match.
func (r *repository) DeleteMatch(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&matchModel.Match{}, id)
	if result.Error != nil {
		return database.StorageError("delete match", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", matchModel.ErrMatchNotFound, id)
	}
	return nil
}

// CountEventMatches counts the matches of an event.
func (r *repository) CountEventMatches(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&matchModel.Match{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return 0, database.StorageError("count event matches", err)
	}
	return count, nil
}

// ListMatches returns matches matching filter ordered by slot.
func (r *repository) ListMatches(ctx context.Context, filter matchModel.ListFilter) ([]matchModel.Match, error) {
	query := r.db.WithContext(ctx).Model(&matchModel.Match{})
	if filter.StartDate != "" {
		query = query.Where("match_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Where("match_date <= ?", filter.EndDate)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.TeamID != nil {
		query = query.Where("(team1_id = ? OR team2_id = ?)", *filter.TeamID, *filter.TeamID)
	}
	if filter.PoolID != nil {
		pool := r.db.Table("teams").Select("id").Where("pool_id = ?", *filter.PoolID)
		query = query.Where("(team1_id IN (?) OR team2_id IN (?))", pool, pool)
	}
	if filter.Company != "" {
		company := r.db.Table("teams").Select("id").
			Where("LOWER(company) LIKE LOWER(?)", "%"+filter.Company+"%")
		query = query.Where("(team1_id IN (?) OR team2_id IN (?))", company, company)
	}

	matches := []matchModel.Match{}
	err := query.
		Order("match_date ASC").
		Order("start_time ASC").
		Order("court_number ASC").
		Order("id ASC").
		Find(&matches).Error
	if err != nil {
		return nil, database.StorageError("list matches", err)
	}
	return matches, nil
}
