package services

import (
	"context"

	"github.com/lribeiro/flashdeck/internal/errors"
	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/repository"
)

// UpdateSettingsInput carries the tunable study limits. Zero is rejected so a
// misconfigured client cannot silently disable studying.
type UpdateSettingsInput struct {
	NewCardsPerDay int `json:"new_cards_per_day" validate:"required,min=1,max=1000"`
	ReviewsPerDay  int `json:"reviews_per_day" validate:"required,min=1,max=10000"`
}

// SettingsService reads and writes the singleton study settings row.
type SettingsService interface {
	Get(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, input UpdateSettingsInput) (models.Settings, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context) (models.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return models.Settings{}, errors.NewInternalError(err)
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, input UpdateSettingsInput) (models.Settings, error) {
	settings := models.Settings{
		NewCardsPerDay: input.NewCardsPerDay,
		ReviewsPerDay:  input.ReviewsPerDay,
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return models.Settings{}, errors.NewInternalError(err)
	}
	return settings, nil
}
