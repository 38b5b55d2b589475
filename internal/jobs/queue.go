package jobs

import "github.com/lribeiro/flashdeck/internal/models"

// Queue abstracts detached persistence. Rating a card must never wait on
// storage, so its effects are enqueued here and written in the background;
// an enqueue failure is reported to the caller but does not roll back the
// in-memory session state.
type Queue interface {
	EnqueueCardSave(card models.Card, entry models.ReviewEntry) error
	EnqueueStatsSave(snap models.Stats) error
	EnqueueStudyDay(date string, isNew, correct bool) error
}
