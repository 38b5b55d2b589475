package repository

import (
	"context"
	"time"

	"github.com/lribeiro/flashdeck/internal/models"
)

// DeckRepository handles deck and card data access. Decks own their cards
// exclusively; a card never appears in two decks.
type DeckRepository interface {
	Insert(ctx context.Context, deck models.Deck) error
	Get(ctx context.Context, id string) (*models.Deck, error)
	List(ctx context.Context, filter models.DeckFilter, now time.Time) ([]models.DeckSummary, error)
	Delete(ctx context.Context, id string) error
	InsertCards(ctx context.Context, deckID string, cards []models.Card) error
	GetCard(ctx context.Context, cardID string) (*models.Card, error)
	// SaveCard persists a rated card's scheduling fields and appends the
	// review entry to the card's audit trail.
	SaveCard(ctx context.Context, card models.Card, entry models.ReviewEntry) error
	DeleteCard(ctx context.Context, cardID string) error
}

// FolderRepository handles folder data access. Decks reference folders by
// name, so renames and deletes fan out to the owning decks.
type FolderRepository interface {
	Insert(ctx context.Context, folder models.Folder) error
	Get(ctx context.Context, id string) (*models.Folder, error)
	List(ctx context.Context) ([]models.Folder, error)
	Rename(ctx context.Context, id string, name string) error
	Delete(ctx context.Context, id string) error
}

// StatsRepository handles the aggregate counters and the per-day study
// history.
type StatsRepository interface {
	Get(ctx context.Context) (*models.Stats, error)
	Save(ctx context.Context, stats models.Stats) error
	// RecordStudyDay increments the given calendar day's counters by one
	// studied card.
	RecordStudyDay(ctx context.Context, date string, isNew, correct bool) error
	// RecentStudyDays returns the last n days ending at today, oldest
	// first, with zero rows filled in for days without activity.
	RecentStudyDays(ctx context.Context, n int, today string) ([]models.StudyDay, error)
}

// SettingsRepository handles the user's study settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (models.Settings, error)
	Save(ctx context.Context, settings models.Settings) error
}
