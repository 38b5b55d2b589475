package services

import (
	"context"
	"sync"

	"github.com/lribeiro/flashdeck/internal/clock"
	"github.com/lribeiro/flashdeck/internal/logger"
	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/repository"
	"github.com/lribeiro/flashdeck/internal/study"
)

// StatsTracker is the single owner of the aggregate counters. Every mutation
// funnels through RecordReview; readers get value snapshots. This replaces
// the scattered per-view counter updates with one canonical implementation
// of the streak and daily-counter rules.
type StatsTracker struct {
	mu     sync.Mutex
	repo   repository.StatsRepository
	clk    clock.Clock
	loaded bool
	stats  models.Stats
}

// NewStatsTracker creates a tracker over the stats repository.
func NewStatsTracker(repo repository.StatsRepository, clk clock.Clock) *StatsTracker {
	return &StatsTracker{repo: repo, clk: clk}
}

// load pulls the persisted counters once and reconciles them with the
// calendar: a day rollover clears the daily counters, a gap breaks the
// streak. Callers hold t.mu.
func (t *StatsTracker) load(ctx context.Context) error {
	today := t.clk.Now().Format(models.DateLayout)

	if !t.loaded {
		s, err := t.repo.Get(ctx)
		if err != nil {
			return err
		}
		t.stats = *s
		t.loaded = true
	}

	if study.Refresh(&t.stats, today) {
		log := logger.FromContext(ctx).WithPrefix("stats")
		log.Debug("day rollover: daily counters reset, streak=%d", t.stats.Streak)
		if err := t.repo.Save(ctx, t.stats); err != nil {
			// The in-memory view is already reconciled; the next save
			// retries the write.
			log.Warn("failed to persist refreshed stats: %v", err)
		}
	}
	return nil
}

// Current returns a snapshot of the counters.
func (t *StatsTracker) Current(ctx context.Context) (models.Stats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.load(ctx); err != nil {
		return models.Stats{}, err
	}
	return t.stats, nil
}

// RecordReview folds one rated card into the counters and returns the
// updated snapshot. It does not persist; the caller enqueues the save.
func (t *StatsTracker) RecordReview(ctx context.Context, wasCorrect, isNew bool) (models.Stats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.load(ctx); err != nil {
		return models.Stats{}, err
	}
	today := t.clk.Now().Format(models.DateLayout)
	study.Record(&t.stats, wasCorrect, isNew, today)
	return t.stats, nil
}
