package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lribeiro/flashdeck/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Get(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}

func (m *MockStatsRepository) Save(ctx context.Context, stats models.Stats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockStatsRepository) RecordStudyDay(ctx context.Context, date string, isNew, correct bool) error {
	args := m.Called(ctx, date, isNew, correct)
	return args.Error(0)
}

func (m *MockStatsRepository) RecentStudyDays(ctx context.Context, n int, today string) ([]models.StudyDay, error) {
	args := m.Called(ctx, n, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StudyDay), args.Error(1)
}
