package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/lribeiro/flashdeck/internal/clock"
	apperrors "github.com/lribeiro/flashdeck/internal/errors"
	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/scheduler"
	"github.com/lribeiro/flashdeck/internal/services"
	"github.com/lribeiro/flashdeck/internal/study"
	"github.com/lribeiro/flashdeck/internal/testutil/mocks"
	"github.com/lribeiro/flashdeck/internal/worker"
)

type StudyServiceSuite struct {
	suite.Suite
	decks *mocks.MockDeckRepository
	stats *mocks.MockStatsRepository
	queue *mocks.MockQueue
	clk   *clock.Fixed
	svc   services.StudyService
}

func (s *StudyServiceSuite) SetupTest() {
	s.decks = new(mocks.MockDeckRepository)
	s.stats = new(mocks.MockStatsRepository)
	s.queue = new(mocks.MockQueue)
	s.clk = &clock.Fixed{Time: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}

	tracker := services.NewStatsTracker(s.stats, s.clk)
	s.svc = services.NewStudyService(s.decks, tracker, s.queue, s.clk, scheduler.Scheduler{})
}

func (s *StudyServiceSuite) twoCardDeck() *models.Deck {
	created := s.clk.Time.Add(-24 * time.Hour)
	return &models.Deck{
		ID:   "d1",
		Name: "Spanish",
		Cards: []models.Card{
			{ID: "c1", DeckID: "d1", Front: "hola", Back: "hello", CreatedAt: created},
			{ID: "c2", DeckID: "d1", Front: "adios", Back: "goodbye", CreatedAt: created},
		},
		CreatedAt: created,
	}
}

func (s *StudyServiceSuite) TestStartStudyNothingDue() {
	future := s.clk.Time.Add(48 * time.Hour)
	deck := s.twoCardDeck()
	for i := range deck.Cards {
		deck.Cards[i].NextReview = &future
	}
	s.decks.On("Get", mock.Anything, "d1").Return(deck, nil)

	_, err := s.svc.StartStudy(context.Background(), "d1", study.ModeNormal)
	s.Require().Error(err)
	appErr, ok := err.(*apperrors.AppError)
	s.Require().True(ok)
	s.Equal(apperrors.ErrCodeNothingDue, appErr.Code)
}

func (s *StudyServiceSuite) TestStartStudyMissingDeck() {
	s.decks.On("Get", mock.Anything, "nope").Return(nil, nil)

	_, err := s.svc.StartStudy(context.Background(), "nope", study.ModeNormal)
	s.Require().Error(err)
	appErr, ok := err.(*apperrors.AppError)
	s.Require().True(ok)
	s.Equal(apperrors.ErrCodeNotFound, appErr.Code)
}

func (s *StudyServiceSuite) TestRateAdvancesAndPersists() {
	ctx := context.Background()
	deck := s.twoCardDeck()

	s.decks.On("Get", mock.Anything, "d1").Return(deck, nil)
	s.decks.On("GetCard", mock.Anything, "c1").Return(&deck.Cards[0], nil)
	s.stats.On("Get", mock.Anything).Return(&models.Stats{}, nil)
	s.queue.On("EnqueueCardSave", mock.Anything, mock.Anything).Return(nil)
	s.queue.On("EnqueueStatsSave", mock.Anything).Return(nil)
	s.queue.On("EnqueueStudyDay", "2025-03-10", true, true).Return(nil)

	started, err := s.svc.StartStudy(ctx, "d1", study.ModeNormal)
	s.Require().NoError(err)
	s.Equal(2, started.CardCount)

	result, err := s.svc.Rate(ctx, started.SessionID, models.RatingGood)
	s.Require().NoError(err)
	s.True(result.Persisted)
	s.Nil(result.Summary)
	s.Equal("Card 2 of 2", result.View.ProgressText)

	s.queue.AssertExpectations(s.T())
}

func (s *StudyServiceSuite) TestRateLastCardFinishesWithSummary() {
	ctx := context.Background()
	deck := s.twoCardDeck()
	deck.Cards = deck.Cards[:1]

	s.decks.On("Get", mock.Anything, "d1").Return(deck, nil)
	s.decks.On("GetCard", mock.Anything, "c1").Return(&deck.Cards[0], nil)
	s.stats.On("Get", mock.Anything).Return(&models.Stats{TotalCorrect: 3, TotalWrong: 1, Streak: 2, LastStudyDate: "2025-03-09"}, nil)
	// Day rollover on load persists the refreshed counters synchronously.
	s.stats.On("Save", mock.Anything, mock.Anything).Return(nil)
	s.queue.On("EnqueueCardSave", mock.Anything, mock.Anything).Return(nil)
	s.queue.On("EnqueueStatsSave", mock.Anything).Return(nil)
	s.queue.On("EnqueueStudyDay", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	started, err := s.svc.StartStudy(ctx, "d1", study.ModeNormal)
	s.Require().NoError(err)

	result, err := s.svc.Rate(ctx, started.SessionID, models.RatingGood)
	s.Require().NoError(err)
	s.Require().NotNil(result.Summary)
	s.Equal(1, result.Summary.CardsStudied)
	// 4 correct of 5 total after this review.
	s.InDelta(80.0, result.Summary.Accuracy, 0.01)
	s.Equal(3, result.Summary.Streak)

	// Finished sessions are gone.
	_, err = s.svc.View(ctx, started.SessionID)
	s.Require().Error(err)
}

func (s *StudyServiceSuite) TestRateSurvivesFullQueue() {
	ctx := context.Background()
	deck := s.twoCardDeck()

	s.decks.On("Get", mock.Anything, "d1").Return(deck, nil)
	s.decks.On("GetCard", mock.Anything, "c1").Return(&deck.Cards[0], nil)
	s.stats.On("Get", mock.Anything).Return(&models.Stats{}, nil)
	s.queue.On("EnqueueCardSave", mock.Anything, mock.Anything).Return(worker.ErrQueueFull)
	s.queue.On("EnqueueStatsSave", mock.Anything).Return(worker.ErrQueueFull)
	s.queue.On("EnqueueStudyDay", mock.Anything, mock.Anything, mock.Anything).Return(worker.ErrQueueFull)

	started, err := s.svc.StartStudy(ctx, "d1", study.ModeNormal)
	s.Require().NoError(err)

	// The session still advances when persistence cannot keep up.
	result, err := s.svc.Rate(ctx, started.SessionID, models.RatingAgain)
	s.Require().NoError(err)
	s.False(result.Persisted)
	s.Equal("Card 2 of 2", result.View.ProgressText)
}

func (s *StudyServiceSuite) TestRateInvalidRating() {
	ctx := context.Background()
	deck := s.twoCardDeck()
	s.decks.On("Get", mock.Anything, "d1").Return(deck, nil)

	started, err := s.svc.StartStudy(ctx, "d1", study.ModeNormal)
	s.Require().NoError(err)

	_, err = s.svc.Rate(ctx, started.SessionID, models.Rating(9))
	s.Require().Error(err)
	appErr, ok := err.(*apperrors.AppError)
	s.Require().True(ok)
	s.Equal(apperrors.ErrCodeValidation, appErr.Code)

	s.queue.AssertNotCalled(s.T(), "EnqueueCardSave", mock.Anything, mock.Anything)
}

func (s *StudyServiceSuite) TestTypedAnswerFeedback() {
	ctx := context.Background()
	deck := s.twoCardDeck()
	s.decks.On("Get", mock.Anything, "d1").Return(deck, nil)

	started, err := s.svc.StartStudy(ctx, "d1", study.ModeTyping)
	s.Require().NoError(err)

	result, err := s.svc.Answer(ctx, started.SessionID, "helo")
	s.Require().NoError(err)
	s.True(result.View.IsFlipped)
	s.Equal("hello", result.Feedback.CorrectAnswer)
	s.Greater(result.Feedback.Similarity, 0.5)
}

func (s *StudyServiceSuite) TestUnknownSession() {
	_, err := s.svc.Flip(context.Background(), "ghost")
	s.Require().Error(err)
	appErr, ok := err.(*apperrors.AppError)
	s.Require().True(ok)
	s.Equal(apperrors.ErrCodeNotFound, appErr.Code)
}

func TestStudyServiceSuite(t *testing.T) {
	suite.Run(t, new(StudyServiceSuite))
}

func TestSingleCardGoodRating(t *testing.T) {
	clk := &clock.Fixed{Time: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	decks := new(mocks.MockDeckRepository)
	stats := new(mocks.MockStatsRepository)
	queue := new(mocks.MockQueue)

	card := models.Card{ID: "c1", DeckID: "d1", Front: "q", Back: "a", CreatedAt: clk.Time.Add(-time.Hour)}
	deck := &models.Deck{ID: "d1", Name: "One", Cards: []models.Card{card}, CreatedAt: card.CreatedAt}

	decks.On("Get", mock.Anything, "d1").Return(deck, nil)
	decks.On("GetCard", mock.Anything, "c1").Return(&card, nil)
	stats.On("Get", mock.Anything).Return(&models.Stats{}, nil)
	queue.On("EnqueueCardSave", mock.Anything, mock.Anything).Return(nil)
	queue.On("EnqueueStatsSave", mock.Anything).Return(nil)
	queue.On("EnqueueStudyDay", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	tracker := services.NewStatsTracker(stats, clk)
	svc := services.NewStudyService(decks, tracker, queue, clk, scheduler.Scheduler{})

	started, err := svc.StartStudy(context.Background(), "d1", study.ModeNormal)
	require.NoError(t, err)

	result, err := svc.Rate(context.Background(), started.SessionID, models.RatingGood)
	require.NoError(t, err)

	require.Equal(t, 1, card.Level)
	require.NotNil(t, card.NextReview)
	require.Equal(t, clk.Time.Add(48*time.Hour), *card.NextReview)

	require.True(t, result.View.Finished)
	require.NotNil(t, result.Summary)
	require.Equal(t, 1, result.Summary.CardsStudied)
}

func TestFailThenEasyFinishesSession(t *testing.T) {
	clk := &clock.Fixed{Time: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	decks := new(mocks.MockDeckRepository)
	stats := new(mocks.MockStatsRepository)
	queue := new(mocks.MockQueue)

	created := clk.Time.Add(-time.Hour)
	c1 := models.Card{ID: "c1", DeckID: "d1", Front: "q1", Back: "a1", CreatedAt: created}
	c2 := models.Card{ID: "c2", DeckID: "d1", Front: "q2", Back: "a2", CreatedAt: created}
	deck := &models.Deck{ID: "d1", Name: "Two", Cards: []models.Card{c1, c2}, CreatedAt: created}

	decks.On("Get", mock.Anything, "d1").Return(deck, nil)
	decks.On("GetCard", mock.Anything, "c1").Return(&c1, nil)
	decks.On("GetCard", mock.Anything, "c2").Return(&c2, nil)
	stats.On("Get", mock.Anything).Return(&models.Stats{}, nil)
	queue.On("EnqueueCardSave", mock.Anything, mock.Anything).Return(nil)
	queue.On("EnqueueStatsSave", mock.Anything).Return(nil)
	queue.On("EnqueueStudyDay", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	tracker := services.NewStatsTracker(stats, clk)
	svc := services.NewStudyService(decks, tracker, queue, clk, scheduler.Scheduler{})

	started, err := svc.StartStudy(context.Background(), "d1", study.ModeNormal)
	require.NoError(t, err)

	result, err := svc.Rate(context.Background(), started.SessionID, models.RatingAgain)
	require.NoError(t, err)
	require.Nil(t, result.Summary)
	require.Equal(t, 0, c1.Level)
	require.Equal(t, clk.Time.Add(time.Minute), *c1.NextReview)

	result, err = svc.Rate(context.Background(), started.SessionID, models.RatingEasy)
	require.NoError(t, err)
	require.NotNil(t, result.Summary)
	require.Equal(t, 2, c2.Level)
	require.Equal(t, clk.Time.Add(4*24*time.Hour), *c2.NextReview)
	require.Equal(t, 2, result.Summary.CardsStudied)
}

func TestRescheduleDoesNotChangeSessionSnapshot(t *testing.T) {
	clk := &clock.Fixed{Time: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	decks := new(mocks.MockDeckRepository)
	stats := new(mocks.MockStatsRepository)
	queue := new(mocks.MockQueue)

	created := clk.Time.Add(-24 * time.Hour)
	canonical := models.Card{ID: "c1", DeckID: "d1", Front: "q", Back: "a", CreatedAt: created}
	deck := &models.Deck{
		ID: "d1", Name: "One", CreatedAt: created,
		Cards: []models.Card{canonical, {ID: "c2", DeckID: "d1", Front: "q2", Back: "a2", CreatedAt: created}},
	}

	decks.On("Get", mock.Anything, "d1").Return(deck, nil)
	decks.On("GetCard", mock.Anything, "c1").Return(&canonical, nil)
	stats.On("Get", mock.Anything).Return(&models.Stats{}, nil)
	queue.On("EnqueueCardSave", mock.Anything, mock.Anything).Return(nil)
	queue.On("EnqueueStatsSave", mock.Anything).Return(nil)
	queue.On("EnqueueStudyDay", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	tracker := services.NewStatsTracker(stats, clk)
	svc := services.NewStudyService(decks, tracker, queue, clk, scheduler.Scheduler{})

	started, err := svc.StartStudy(context.Background(), "d1", study.ModeNormal)
	require.NoError(t, err)

	// Rating pushes the canonical card into the future...
	_, err = svc.Rate(context.Background(), started.SessionID, models.RatingGood)
	require.NoError(t, err)
	require.NotNil(t, canonical.NextReview)
	require.True(t, canonical.NextReview.After(clk.Time))

	// ...but the running session still iterates its snapshot.
	view, err := svc.View(context.Background(), started.SessionID)
	require.NoError(t, err)
	require.Equal(t, "Card 2 of 2", view.ProgressText)
	require.False(t, view.Finished)
}
