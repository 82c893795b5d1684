// Package service composes multi-match events and enforces their booking
// rules.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/corpo_padel/internal/config"
	dbconfig "github.com/festy23/corpo_padel/internal/database/config"
	"github.com/festy23/corpo_padel/internal/database/database"
	matchModel "github.com/festy23/corpo_padel/internal/match/model"
	matchRepository "github.com/festy23/corpo_padel/internal/match/repository"
	teamModel "github.com/festy23/corpo_padel/internal/team/model"
	teamRepository "github.com/festy23/corpo_padel/internal/team/repository"
	"github.com/festy23/corpo_padel/pkg/clock"
	"github.com/festy23/corpo_padel/pkg/retry"
)

// Service defines the interface for event planning operations.
type Service interface {
	// CreateEvent books 1 to 3 matches sharing a date and start time.
	// Either every match is stored or none is.
	CreateEvent(ctx context.Context, req *matchModel.CreateEventRequest) (*matchModel.Event, error)

	// GetEvent returns an event with its matches.
	GetEvent(ctx context.Context, id uint) (*matchModel.Event, error)

	// ListEvents returns events in a date window.
	ListEvents(ctx context.Context, filter matchModel.EventFilter) (*matchModel.EventsResponse, error)

	// DeleteEvent removes an event whose matches are all upcoming.
	DeleteEvent(ctx context.Context, id uint) error
}

type service struct {
	repo       matchRepository.Repository
	db         *gorm.DB
	logger     *zap.SugaredLogger
	tournament config.TournamentConfig
	clock      clock.Clock
	txRetry    retry.Config
}

// New creates a new planning service instance.
func New(
	repo matchRepository.Repository,
	db *gorm.DB,
	logger *zap.SugaredLogger,
	tournament config.TournamentConfig,
	clk clock.Clock,
) Service {
	return &service{
		repo:       repo,
		db:         db,
		logger:     logger,
		tournament: tournament,
		clock:      clk,
		txRetry:    dbconfig.LoadTxRetryConfigFromEnv(),
	}
}

func (s *service) rules() matchModel.Rules {
	return matchModel.Rules{MaxCourts: s.tournament.MaxCourts, CrossCheck: s.tournament.ScoreCrossCheck}
}

// CreateEvent books 1 to 3 matches sharing a date and start time.
func (s *service) CreateEvent(ctx context.Context, req *matchModel.CreateEventRequest) (*matchModel.Event, error) {
	today := clock.Today(s.clock, s.tournament.Location())
	if err := matchModel.ValidateEvent(*req, today, s.rules()); err != nil {
		return nil, err
	}

	var event *matchModel.Event
	err := database.InTx(ctx, s.db, s.txRetry, s.logger, "create event", func(tx *gorm.DB) error {
		txRepo := matchRepository.New(tx)

		missing, err := teamRepository.New(tx).MissingIDs(ctx, req.TeamIDs())
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: ids %v", teamModel.ErrTeamNotFound, missing)
		}

		slots := req.Slots()
		if err := txRepo.LockSlots(ctx, slots); err != nil {
			return err
		}
		for _, slot := range slots {
			taken, err := txRepo.HasConflict(ctx, slot, nil)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%w: court %d is already booked on %s at %s",
					matchModel.ErrSlotConflict, slot.Court, slot.Date, slot.Time)
			}
		}

		event = buildEvent(req)
		return txRepo.CreateEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("event created",
		"event_id", event.ID,
		"date", event.Date,
		"start_time", event.StartTime,
		"matches", len(event.Matches),
	)
	return event, nil
}

func buildEvent(req *matchModel.CreateEventRequest) *matchModel.Event {
	event := &matchModel.Event{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Matches:   make([]matchModel.Match, 0, len(req.Matches)),
	}
	for _, spec := range req.Matches {
		event.Matches = append(event.Matches, matchModel.Match{
			Date:        req.Date,
			StartTime:   req.StartTime,
			CourtNumber: spec.CourtNumber,
			Team1ID:     spec.Team1ID,
			Team2ID:     spec.Team2ID,
			Status:      matchModel.StatusUpcoming,
		})
	}
	return event
}

// GetEvent returns an event with its matches.
func (s *service) GetEvent(ctx context.Context, id uint) (*matchModel.Event, error) {
	return s.repo.GetEvent(ctx, id)
}

// ListEvents returns events in a date window. The default window runs from
// the first day of the current month to the last day of the next one.
func (s *service) ListEvents(ctx context.Context, filter matchModel.EventFilter) (*matchModel.EventsResponse, error) {
	today := clock.Today(s.clock, s.tournament.Location())
	if filter.StartDate == "" {
		filter.StartDate = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).Format(matchModel.DateLayout)
	}
	if filter.EndDate == "" {
		filter.EndDate = time.Date(today.Year(), today.Month()+2, 0, 0, 0, 0, 0, time.UTC).Format(matchModel.DateLayout)
	}
	if err := checkWindow(filter.StartDate, filter.EndDate); err != nil {
		return nil, err
	}

	events, err := s.repo.ListEvents(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &matchModel.EventsResponse{Events: events, Total: len(events)}, nil
}

func checkWindow(start, end string) error {
	from, err := matchModel.ParseDate(start)
	if err != nil {
		return err
	}
	to, err := matchModel.ParseDate(end)
	if err != nil {
		return err
	}
	if to.Before(from) {
		return fmt.Errorf("%w: end_date %s is before start_date %s", matchModel.ErrInvalidSlot, end, start)
	}
	return nil
}

// DeleteEvent removes an event whose matches are all upcoming.
func (s *service) DeleteEvent(ctx context.Context, id uint) error {
	err := database.InTx(ctx, s.db, s.txRetry, s.logger, "delete event", func(tx *gorm.DB) error {
		txRepo := matchRepository.New(tx)

		event, err := txRepo.GetEvent(ctx, id)
		if err != nil {
			return err
		}
		for _, m := range event.Matches {
			locked, err := txRepo.GetMatch(ctx, m.ID, true)
			if err != nil {
				return err
			}
			if locked.Status != matchModel.StatusUpcoming {
				return fmt.Errorf("%w: event %d holds %s match %d",
					matchModel.ErrInvalidTransition, id, locked.Status, locked.ID)
			}
		}
		return txRepo.DeleteEvent(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("event deleted", "event_id", id)
	return nil
}
