package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lribeiro/flashdeck/internal/clock"
	apperrors "github.com/lribeiro/flashdeck/internal/errors"
	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/services"
	"github.com/lribeiro/flashdeck/internal/testutil/mocks"
)

func newDeckService(repo *mocks.MockDeckRepository) services.DeckService {
	clk := &clock.Fixed{Time: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	return services.NewDeckService(repo, clk)
}

func TestParseCardLines(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int
		wantErr bool
	}{
		{name: "simple pairs", text: "hola\nhello\nadios\ngoodbye", want: 2},
		{name: "blank lines skipped", text: "hola\n\nhello\n\n\nadios\ngoodbye\n", want: 2},
		{name: "odd line count", text: "hola\nhello\nadios", wantErr: true},
		{name: "empty input", text: "", wantErr: true},
		{name: "whitespace only", text: "  \n\t\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, err := services.ParseCardLines(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, pairs, tt.want)
		})
	}
}

func TestCreateDeckFromText(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	svc := newDeckService(repo)

	deck, err := svc.CreateDeck(context.Background(), services.CreateDeckInput{
		Name:      "  Spanish Basics  ",
		Language:  "es",
		CardsText: "hola\nhello\nadios\ngoodbye",
	})
	require.NoError(t, err)

	assert.Equal(t, "Spanish Basics", deck.Name)
	require.Len(t, deck.Cards, 2)
	assert.Equal(t, "hola", deck.Cards[0].Front)
	assert.Equal(t, "hello", deck.Cards[0].Back)
	assert.NotEmpty(t, deck.Cards[0].ID)
	assert.Equal(t, deck.ID, deck.Cards[0].DeckID)
	assert.Nil(t, deck.Cards[0].NextReview)

	repo.AssertExpectations(t)
}

func TestCreateDeckRejectsEmpty(t *testing.T) {
	svc := newDeckService(new(mocks.MockDeckRepository))

	_, err := svc.CreateDeck(context.Background(), services.CreateDeckInput{Name: "Empty"})
	require.Error(t, err)

	_, err = svc.CreateDeck(context.Background(), services.CreateDeckInput{
		CardsText: "a\nb",
	})
	require.Error(t, err)
}

func TestDeleteCardChecksOwnership(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	repo.On("GetCard", mock.Anything, "c1").Return(&models.Card{ID: "c1", DeckID: "other-deck"}, nil)
	svc := newDeckService(repo)

	err := svc.DeleteCard(context.Background(), "d1", "c1")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
	repo.AssertNotCalled(t, "DeleteCard", mock.Anything, mock.Anything)
}

func TestImportDeckAssignsFreshIDs(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	repo.On("SaveCard", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	svc := newDeckService(repo)

	next := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	export := services.DeckExport{
		Name: "Imported",
		Cards: []models.Card{{
			ID:         "old-id",
			DeckID:     "old-deck",
			Front:      "q",
			Back:       "a",
			Level:      2,
			NextReview: &next,
			History: []models.ReviewEntry{
				{Date: next.AddDate(0, 0, -4), Rating: models.RatingGood},
			},
		}},
	}

	deck, err := svc.ImportDeck(context.Background(), export)
	require.NoError(t, err)
	require.Len(t, deck.Cards, 1)

	card := deck.Cards[0]
	assert.NotEqual(t, "old-id", card.ID)
	assert.Equal(t, deck.ID, card.DeckID)
	// Scheduling state travels with the import.
	assert.Equal(t, 2, card.Level)
	require.NotNil(t, card.NextReview)
	assert.True(t, card.NextReview.Equal(next))

	// History replayed into the audit trail.
	repo.AssertCalled(t, "SaveCard", mock.Anything, mock.Anything, mock.Anything)
}
