package worker

import (
	"context"
	"fmt"

	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/repository"
)

// SaveCardJob persists a rated card's scheduling fields and its appended
// review entry.
type SaveCardJob struct {
	Decks repository.DeckRepository
	Card  models.Card
	Entry models.ReviewEntry
}

func (j *SaveCardJob) Name() string {
	return fmt.Sprintf("save-card:%s", j.Card.ID)
}

func (j *SaveCardJob) Run(ctx context.Context) error {
	return j.Decks.SaveCard(ctx, j.Card, j.Entry)
}

// SaveStatsJob persists a snapshot of the aggregate counters.
type SaveStatsJob struct {
	Stats repository.StatsRepository
	Snap  models.Stats
}

func (j *SaveStatsJob) Name() string { return "save-stats" }

func (j *SaveStatsJob) Run(ctx context.Context) error {
	return j.Stats.Save(ctx, j.Snap)
}

// RecordStudyDayJob increments the per-day study history for one rated card.
type RecordStudyDayJob struct {
	Stats   repository.StatsRepository
	Date    string
	IsNew   bool
	Correct bool
}

func (j *RecordStudyDayJob) Name() string {
	return fmt.Sprintf("record-study-day:%s", j.Date)
}

func (j *RecordStudyDayJob) Run(ctx context.Context) error {
	return j.Stats.RecordStudyDay(ctx, j.Date, j.IsNew, j.Correct)
}
