package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/lribeiro/flashdeck/internal/models"
)

// MockQueue is a mock implementation of jobs.Queue
type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) EnqueueCardSave(card models.Card, entry models.ReviewEntry) error {
	args := m.Called(card, entry)
	return args.Error(0)
}

func (m *MockQueue) EnqueueStatsSave(snap models.Stats) error {
	args := m.Called(snap)
	return args.Error(0)
}

func (m *MockQueue) EnqueueStudyDay(date string, isNew, correct bool) error {
	args := m.Called(date, isNew, correct)
	return args.Error(0)
}
