// Package service provides business logic layer for match module.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/corpo_padel/internal/config"
	dbconfig "github.com/festy23/corpo_padel/internal/database/config"
	"github.com/festy23/corpo_padel/internal/database/database"
	matchModel "github.com/festy23/corpo_padel/internal/match/model"
	"github.com/festy23/corpo_padel/internal/match/repository"
	"github.com/festy23/corpo_padel/pkg/clock"
	"github.com/festy23/corpo_padel/pkg/retry"
)

// EventCreator books events. Single matches are booked as events of one.
type EventCreator interface {
	CreateEvent(ctx context.Context, req *matchModel.CreateEventRequest) (*matchModel.Event, error)
}

// Service defines the interface for match business logic operations.
type Service interface {
	// CreateMatch books a single match.
	CreateMatch(ctx context.Context, req *matchModel.CreateMatchRequest) (*matchModel.Match, error)

	// GetMatch returns a match by id.
	GetMatch(ctx context.Context, id uint) (*matchModel.Match, error)

	// ListMatches returns matches matching filter.
	ListMatches(ctx context.Context, filter matchModel.ListFilter) (*matchModel.MatchesResponse, error)

	// UpdateMatch moves a match, changes its status or records its scores.
	UpdateMatch(ctx context.Context, id uint, req *matchModel.UpdateMatchRequest) (*matchModel.Match, error)

	// DeleteMatch removes an upcoming match, and its event when it was the
	// event's last match.
	DeleteMatch(ctx context.Context, id uint) error
}

type service struct {
	repo       repository.Repository
	events     EventCreator
	db         *gorm.DB
	logger     *zap.SugaredLogger
	tournament config.TournamentConfig
	clock      clock.Clock
	txRetry    retry.Config
}

// New creates a new match service instance.
func New(
	repo repository.Repository,
	events EventCreator,
	db *gorm.DB,
	logger *zap.SugaredLogger,
	tournament config.TournamentConfig,
	clk clock.Clock,
) Service {
	return &service{
		repo:       repo,
		events:     events,
		db:         db,
		logger:     logger,
		tournament: tournament,
		clock:      clk,
		txRetry:    dbconfig.LoadTxRetryConfigFromEnv(),
	}
}

// CreateMatch books a single match.
func (s *service) CreateMatch(ctx context.Context, req *matchModel.CreateMatchRequest) (*matchModel.Match, error) {
	eventReq := req.EventRequest()
	event, err := s.events.CreateEvent(ctx, &eventReq)
	if err != nil {
		return nil, err
	}
	if len(event.Matches) != 1 {
		return nil, fmt.Errorf("event %d holds %d matches, expected 1", event.ID, len(event.Matches))
	}
	return &event.Matches[0], nil
}

// GetMatch returns a match by id.
func (s *service) GetMatch(ctx context.Context, id uint) (*matchModel.Match, error) {
	return s.repo.GetMatch(ctx, id, false)
}

// ListMatches returns matches matching filter. Without dates the listing
// covers today and the configured number of days after it.
func (s *service) ListMatches(ctx context.Context, filter matchModel.ListFilter) (*matchModel.MatchesResponse, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", matchModel.ErrInvalidStatus, *filter.Status)
	}

	if filter.StartDate == "" {
		filter.StartDate = clock.Today(s.clock, s.tournament.Location()).Format(matchModel.DateLayout)
	}
	start, err := matchModel.ParseDate(filter.StartDate)
	if err != nil {
		return nil, err
	}
	if filter.EndDate == "" {
		filter.EndDate = start.AddDate(0, 0, s.tournament.MatchWindowDays).Format(matchModel.DateLayout)
	}
	end, err := matchModel.ParseDate(filter.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date %s is before start_date %s",
			matchModel.ErrInvalidSlot, filter.EndDate, filter.StartDate)
	}

	matches, err := s.repo.ListMatches(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &matchModel.MatchesResponse{Matches: matches, Total: len(matches)}, nil
}

// UpdateMatch moves a match, changes its status or records its scores. Slot,
// status and scores are written together or not at all.
func (s *service) UpdateMatch(
	ctx context.Context,
	id uint,
	req *matchModel.UpdateMatchRequest,
) (*matchModel.Match, error) {
	today := clock.Today(s.clock, s.tournament.Location())
	rules := matchModel.Rules{MaxCourts: s.tournament.MaxCourts, CrossCheck: s.tournament.ScoreCrossCheck}

	var (
		before  matchModel.Status
		updated *matchModel.Match
	)
	err := database.InTx(ctx, s.db, s.txRetry, s.logger, "update match", func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		current, err := txRepo.GetMatch(ctx, id, true)
		if err != nil {
			return err
		}
		before = current.Status

		plan, err := matchModel.PlanUpdate(*current, *req, today, rules)
		if err != nil {
			return err
		}

		if plan.Reoccupies {
			if err := txRepo.LockSlots(ctx, []matchModel.Slot{plan.Slot}); err != nil {
				return err
			}
			taken, err := txRepo.HasConflict(ctx, plan.Slot, &id)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%w: %s is already booked", matchModel.ErrSlotConflict, plan.Slot)
			}
		}

		eventID, err := s.relocateEvent(ctx, txRepo, current, plan)
		if err != nil {
			return err
		}

		if err := txRepo.UpdateMatch(ctx, id, eventID, plan); err != nil {
			return err
		}
		updated, err = txRepo.GetMatch(ctx, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("match updated",
		"match_id", id,
		"from_status", before,
		"status", updated.Status,
		"slot", updated.Slot().Key(),
	)
	return updated, nil
}

// relocateEvent keeps the event in step with a moved match and returns the
// event the match belongs to afterwards. A lone match drags its event along;
// a match with siblings leaves for a new event of its own.
func (s *service) relocateEvent(
	ctx context.Context,
	txRepo repository.Repository,
	current *matchModel.Match,
	plan matchModel.UpdatePlan,
) (uint, error) {
	if plan.Slot.Date == current.Date && plan.Slot.Time == current.StartTime {
		return current.EventID, nil
	}

	siblings, err := txRepo.CountEventMatches(ctx, current.EventID)
	if err != nil {
		return 0, err
	}
	if siblings <= 1 {
		return current.EventID, txRepo.MoveEvent(ctx, current.EventID, plan.Slot.Date, plan.Slot.Time)
	}

	event := &matchModel.Event{Date: plan.Slot.Date, StartTime: plan.Slot.Time}
	if err := txRepo.CreateEvent(ctx, event); err != nil {
		return 0, err
	}
	s.logger.Infow("match detached from event",
		"match_id", current.ID,
		"from_event_id", current.EventID,
		"event_id", event.ID,
	)
	return event.ID, nil
}

// DeleteMatch removes an upcoming match, and its event when it was the
// event's last match.
func (s *service) DeleteMatch(ctx context.Context, id uint) error {
	var eventDropped bool
	err := database.InTx(ctx, s.db, s.txRetry, s.logger, "delete match", func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		current, err := txRepo.GetMatch(ctx, id, true)
		if err != nil {
			return err
		}
		if current.Status != matchModel.StatusUpcoming {
			return fmt.Errorf("%w: match %d is %s, only upcoming matches can be deleted",
				matchModel.ErrInvalidTransition, id, current.Status)
		}

		if err := txRepo.DeleteMatch(ctx, id); err != nil {
			return err
		}

		remaining, err := txRepo.CountEventMatches(ctx, current.EventID)
		if err != nil {
			return err
		}
		eventDropped = remaining == 0
		if eventDropped {
			return txRepo.DeleteEvent(ctx, current.EventID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Infow("match deleted", "match_id", id, "event_deleted", eventDropped)
	return nil
}
