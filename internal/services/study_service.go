package services

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/lribeiro/flashdeck/internal/clock"
	"github.com/lribeiro/flashdeck/internal/errors"
	"github.com/lribeiro/flashdeck/internal/jobs"
	"github.com/lribeiro/flashdeck/internal/logger"
	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/repository"
	"github.com/lribeiro/flashdeck/internal/scheduler"
	"github.com/lribeiro/flashdeck/internal/study"
)

// StartResult is returned when a session opens.
type StartResult struct {
	SessionID string     `json:"session_id"`
	DeckName  string     `json:"deck_name"`
	CardCount int        `json:"card_count"`
	View      study.View `json:"view"`
}

// AnswerResult carries typed-answer feedback plus the updated view.
type AnswerResult struct {
	Feedback study.Feedback `json:"feedback"`
	View     study.View     `json:"view"`
}

// RateResult is returned after grading a card. Summary is set only when the
// rating finished the session. Persisted is false when the detached save
// could not even be enqueued; the session has advanced regardless.
type RateResult struct {
	View      study.View             `json:"view"`
	Summary   *models.SessionSummary `json:"summary,omitempty"`
	Persisted bool                   `json:"persisted"`
}

// StudyService drives study sessions: it snapshots due cards, applies the
// scheduler to the canonical card on every rating, maintains the aggregate
// counters, and hands persistence to the background queue so the study flow
// never blocks on storage.
type StudyService interface {
	StartStudy(ctx context.Context, deckID string, mode study.Mode) (*StartResult, error)
	View(ctx context.Context, sessionID string) (study.View, error)
	Flip(ctx context.Context, sessionID string) (study.View, error)
	Answer(ctx context.Context, sessionID, input string) (*AnswerResult, error)
	Rate(ctx context.Context, sessionID string, rating models.Rating) (*RateResult, error)
	Next(ctx context.Context, sessionID string) (study.View, error)
	Previous(ctx context.Context, sessionID string) (study.View, error)
}

type studyService struct {
	decks   repository.DeckRepository
	tracker *StatsTracker
	queue   jobs.Queue
	clk     clock.Clock
	sched   scheduler.Scheduler

	mu       sync.Mutex
	sessions map[string]*study.Session
}

// NewStudyService creates a new StudyService
func NewStudyService(decks repository.DeckRepository, tracker *StatsTracker, queue jobs.Queue, clk clock.Clock, sched scheduler.Scheduler) StudyService {
	return &studyService{
		decks:    decks,
		tracker:  tracker,
		queue:    queue,
		clk:      clk,
		sched:    sched,
		sessions: make(map[string]*study.Session),
	}
}

func (s *studyService) StartStudy(ctx context.Context, deckID string, mode study.Mode) (*StartResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting study: deck_id=%s, mode=%s", deckID, mode)

	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	sess, err := study.Start(*deck, mode, s.clk.Now())
	if err != nil {
		if stderrors.Is(err, study.ErrNothingDue) {
			return nil, errors.NewNothingDueError(deck.Name)
		}
		return nil, errors.NewInternalError(err)
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	sess.Subscribe(func(ev study.Event) {
		log.Debug("session event: id=%s, kind=%s, progress=%s", sess.ID, ev.Kind, ev.View.ProgressText)
	})
	sess.Begin()

	log.Info("study session started: id=%s, deck=%s, due_cards=%d", sess.ID, deck.Name, sess.Len())
	return &StartResult{
		SessionID: sess.ID,
		DeckName:  sess.DeckName,
		CardCount: sess.Len(),
		View:      sess.View(),
	}, nil
}

func (s *studyService) session(sessionID string) (*study.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.NewNotFoundError("study session", sessionID)
	}
	return sess, nil
}

func (s *studyService) View(ctx context.Context, sessionID string) (study.View, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return study.View{}, err
	}
	return sess.View(), nil
}

func (s *studyService) Flip(ctx context.Context, sessionID string) (study.View, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return study.View{}, err
	}
	v, err := sess.Flip()
	if err != nil {
		return study.View{}, errors.NewBadRequestError(err.Error())
	}
	return v, nil
}

func (s *studyService) Answer(ctx context.Context, sessionID, input string) (*AnswerResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Finished() {
		return nil, errors.NewBadRequestError(study.ErrFinished.Error())
	}
	fb := sess.CheckTypedAnswer(input)
	return &AnswerResult{Feedback: fb, View: sess.View()}, nil
}

// Rate grades the current card. The scheduler runs against the canonical
// card fetched by id from the repository, never against the session's
// snapshot copy; the snapshot only drives iteration order. Persistence is
// detached: a failed or slow save never blocks or rolls back the session.
func (s *studyService) Rate(ctx context.Context, sessionID string, rating models.Rating) (*RateResult, error) {
	log := logger.FromContext(ctx)
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Finished() {
		return nil, errors.NewBadRequestError(study.ErrFinished.Error())
	}
	if !rating.Valid() {
		return nil, errors.NewValidationError("rating", "must be between 1 (again) and 4 (easy)")
	}

	current := sess.Current()
	card, err := s.decks.GetCard(ctx, current.ID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", current.ID)
	}

	now := s.clk.Now()
	isNew := card.IsNew()
	res, err := s.sched.Apply(card, rating, now)
	if err != nil {
		return nil, errors.NewValidationError("rating", err.Error())
	}
	log.Debug("card rated: id=%s, rating=%d, level=%d, next_review=%s",
		card.ID, rating, res.Level, res.NextReview.Format("2006-01-02 15:04"))

	stats, err := s.tracker.RecordReview(ctx, res.WasCorrect, isNew)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	// Fire-and-forget persistence. Enqueue failures are reported in the
	// result but the in-memory transition stands.
	today := now.Format(models.DateLayout)
	entry := card.History[len(card.History)-1]
	persisted := true
	if err := s.queue.EnqueueCardSave(*card, entry); err != nil {
		log.Warn("card save not enqueued: %v", err)
		persisted = false
	}
	if err := s.queue.EnqueueStatsSave(stats); err != nil {
		log.Warn("stats save not enqueued: %v", err)
		persisted = false
	}
	if err := s.queue.EnqueueStudyDay(today, isNew, res.WasCorrect); err != nil {
		log.Warn("study day not enqueued: %v", err)
		persisted = false
	}

	summary, err := sess.Rate(res.WasCorrect, stats)
	if err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	if summary != nil {
		log.Info("study session finished: id=%s, cards=%d, accuracy=%.0f%%, streak=%d",
			sess.ID, summary.CardsStudied, summary.Accuracy, summary.Streak)
		s.mu.Lock()
		delete(s.sessions, sess.ID)
		s.mu.Unlock()
	}

	return &RateResult{View: sess.View(), Summary: summary, Persisted: persisted}, nil
}

func (s *studyService) Next(ctx context.Context, sessionID string) (study.View, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return study.View{}, err
	}
	v, err := sess.Next()
	if err != nil {
		return study.View{}, errors.NewBadRequestError(err.Error())
	}
	return v, nil
}

func (s *studyService) Previous(ctx context.Context, sessionID string) (study.View, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return study.View{}, err
	}
	v, err := sess.Previous()
	if err != nil {
		return study.View{}, errors.NewBadRequestError(err.Error())
	}
	return v, nil
}
