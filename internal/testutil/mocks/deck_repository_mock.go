package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/lribeiro/flashdeck/internal/models"
)

// MockDeckRepository is a mock implementation of repository.DeckRepository
type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) Insert(ctx context.Context, deck models.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckRepository) Get(ctx context.Context, id string) (*models.Deck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deck), args.Error(1)
}

func (m *MockDeckRepository) List(ctx context.Context, filter models.DeckFilter, now time.Time) ([]models.DeckSummary, error) {
	args := m.Called(ctx, filter, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DeckSummary), args.Error(1)
}

func (m *MockDeckRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeckRepository) InsertCards(ctx context.Context, deckID string, cards []models.Card) error {
	args := m.Called(ctx, deckID, cards)
	return args.Error(0)
}

func (m *MockDeckRepository) GetCard(ctx context.Context, cardID string) (*models.Card, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockDeckRepository) SaveCard(ctx context.Context, card models.Card, entry models.ReviewEntry) error {
	args := m.Called(ctx, card, entry)
	return args.Error(0)
}

func (m *MockDeckRepository) DeleteCard(ctx context.Context, cardID string) error {
	args := m.Called(ctx, cardID)
	return args.Error(0)
}
