package sqlite

import (
	"context"
	"database/sql"

	"github.com/lribeiro/flashdeck/internal/logger"
	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository implementation
func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (models.Settings, error) {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")

	var s models.Settings
	err := r.db.QueryRowContext(ctx, `
SELECT new_cards_per_day, reviews_per_day FROM settings WHERE id = 1
`).Scan(&s.NewCardsPerDay, &s.ReviewsPerDay)
	if err != nil {
		log.Error("failed to get settings: %v", err)
		return models.DefaultSettings(), err
	}
	return s, nil
}

func (r *settingsRepository) Save(ctx context.Context, s models.Settings) error {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("saving settings: new_cards_per_day=%d, reviews_per_day=%d", s.NewCardsPerDay, s.ReviewsPerDay)

	_, err := r.db.ExecContext(ctx, `
UPDATE settings SET new_cards_per_day = ?, reviews_per_day = ? WHERE id = 1
`, s.NewCardsPerDay, s.ReviewsPerDay)
	if err != nil {
		log.Error("failed to save settings: %v", err)
	}
	return err
}
