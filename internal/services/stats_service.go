package services

import (
	"context"

	"github.com/lribeiro/flashdeck/internal/clock"
	"github.com/lribeiro/flashdeck/internal/errors"
	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/repository"
)

// Dashboard aggregates everything the stats screen shows in one payload.
type Dashboard struct {
	Stats    models.Stats         `json:"stats"`
	Decks    []models.DeckSummary `json:"decks"`
	Activity []models.StudyDay    `json:"activity"`
}

// StatsService serves the aggregate counters and the recent-activity strip.
type StatsService interface {
	Dashboard(ctx context.Context, activityDays int) (*Dashboard, error)
	Activity(ctx context.Context, days int) ([]models.StudyDay, error)
}

type statsService struct {
	decks   repository.DeckRepository
	stats   repository.StatsRepository
	tracker *StatsTracker
	clk     clock.Clock
}

// NewStatsService creates a new StatsService
func NewStatsService(decks repository.DeckRepository, stats repository.StatsRepository, tracker *StatsTracker, clk clock.Clock) StatsService {
	return &statsService{decks: decks, stats: stats, tracker: tracker, clk: clk}
}

const defaultActivityDays = 30

func (s *statsService) Dashboard(ctx context.Context, activityDays int) (*Dashboard, error) {
	now := s.clk.Now()

	snap, err := s.tracker.Current(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	summaries, err := s.decks.List(ctx, models.DeckFilter{}, now)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	activity, err := s.Activity(ctx, activityDays)
	if err != nil {
		return nil, err
	}

	return &Dashboard{Stats: snap, Decks: summaries, Activity: activity}, nil
}

func (s *statsService) Activity(ctx context.Context, days int) ([]models.StudyDay, error) {
	if days <= 0 {
		days = defaultActivityDays
	}
	today := s.clk.Now().Format(models.DateLayout)
	activity, err := s.stats.RecentStudyDays(ctx, days, today)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return activity, nil
}
