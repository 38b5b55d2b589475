package jobs

import (
	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/repository"
	"github.com/lribeiro/flashdeck/internal/worker"
)

// WorkerQueue implements Queue on top of a worker pool.
type WorkerQueue struct {
	pool  *worker.Pool
	decks repository.DeckRepository
	stats repository.StatsRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, decks repository.DeckRepository, stats repository.StatsRepository) Queue {
	return &WorkerQueue{
		pool:  pool,
		decks: decks,
		stats: stats,
	}
}

func (q *WorkerQueue) EnqueueCardSave(card models.Card, entry models.ReviewEntry) error {
	return q.pool.Submit(&worker.SaveCardJob{
		Decks: q.decks,
		Card:  card,
		Entry: entry,
	})
}

func (q *WorkerQueue) EnqueueStatsSave(snap models.Stats) error {
	return q.pool.Submit(&worker.SaveStatsJob{
		Stats: q.stats,
		Snap:  snap,
	})
}

func (q *WorkerQueue) EnqueueStudyDay(date string, isNew, correct bool) error {
	return q.pool.Submit(&worker.RecordStudyDayJob{
		Stats:   q.stats,
		Date:    date,
		IsNew:   isNew,
		Correct: correct,
	})
}
