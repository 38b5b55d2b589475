package study

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/lribeiro/flashdeck/internal/models"
)

// Mode selects which face of a card is the question and whether typed
// answers are checked.
type Mode string

const (
	ModeNormal  Mode = "normal"
	ModeReverse Mode = "reverse"
	ModeTyping  Mode = "typing"
)

// ParseMode validates a study-mode string, defaulting empty input to normal.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeNormal, nil
	case ModeNormal, ModeReverse, ModeTyping:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown study mode %q", s)
}

var (
	// ErrNothingDue means no card in the deck is eligible for review; no
	// session is created.
	ErrNothingDue = errors.New("no cards due for review")
	// ErrFinished means the session already completed; start a new one.
	ErrFinished = errors.New("study session is finished")
)

// EventKind identifies a session lifecycle transition.
type EventKind string

const (
	EventStarted  EventKind = "started"
	EventAdvanced EventKind = "advanced"
	EventFinished EventKind = "finished"
)

// Event is emitted to observers after every session transition.
type Event struct {
	Kind    EventKind
	View    View
	Summary *models.SessionSummary // set on EventFinished only
}

// View is the renderable snapshot the session exposes after each transition.
// It carries no rendering technology, only what a UI needs to draw.
type View struct {
	ProgressText    string  `json:"progress_text"`
	PercentComplete float64 `json:"percent_complete"`
	FaceText        string  `json:"face_text"`
	IsFlipped       bool    `json:"is_flipped"`
	Mode            Mode    `json:"mode"`
	Finished        bool    `json:"finished"`
}

// Session is one continuous study pass over the cards of a deck that were
// due when the session started. The card set is a snapshot of copies: cards
// becoming due (or not due) mid-session never change it, and rating mutates
// the canonical deck elsewhere, not these copies.
//
// A Session is owned by a single caller and is not safe for concurrent use.
type Session struct {
	ID       string
	DeckID   string
	DeckName string

	mode      Mode
	cards     []models.Card
	index     int
	flipped   bool
	typed     string
	finished  bool
	observers []func(Event)
}

// Start snapshots the deck's due cards and opens a session positioned at the
// first card. Returns ErrNothingDue when the deck has no due card.
func Start(deck models.Deck, m Mode, now time.Time) (*Session, error) {
	var due []models.Card
	for _, c := range deck.Cards {
		if c.IsDue(now) {
			due = append(due, c)
		}
	}
	if len(due) == 0 {
		return nil, ErrNothingDue
	}

	return &Session{
		ID:       uuid.NewString(),
		DeckID:   deck.ID,
		DeckName: deck.Name,
		mode:     m,
		cards:    due,
	}, nil
}

// Subscribe registers an observer called after every transition. Observers
// run synchronously on the caller's goroutine.
func (s *Session) Subscribe(fn func(Event)) {
	s.observers = append(s.observers, fn)
}

// Begin announces the opened session to its observers. Start cannot deliver
// this event itself because no observer can subscribe before it returns, so
// the owner fires it once after wiring observers.
func (s *Session) Begin() {
	s.emit(EventStarted, nil)
}

func (s *Session) emit(kind EventKind, summary *models.SessionSummary) {
	ev := Event{Kind: kind, View: s.View(), Summary: summary}
	for _, fn := range s.observers {
		fn(ev)
	}
}

// Len returns the number of cards snapshotted into the session.
func (s *Session) Len() int { return len(s.cards) }

// Current returns a copy of the card at the session's position.
func (s *Session) Current() models.Card { return s.cards[s.index] }

// Finished reports whether the session reached its terminal state.
func (s *Session) Finished() bool { return s.finished }

// Mode returns the session's study mode.
func (s *Session) Mode() Mode { return s.mode }

// questionFace returns the text shown before flipping.
func (s *Session) questionFace() string {
	if s.mode == ModeReverse {
		return s.Current().Back
	}
	return s.Current().Front
}

// answerFace returns the text revealed by flipping; typed answers are
// checked against it.
func (s *Session) answerFace() string {
	if s.mode == ModeReverse {
		return s.Current().Front
	}
	return s.Current().Back
}

// View builds the observable snapshot for the current state.
func (s *Session) View() View {
	face := s.questionFace()
	if s.flipped {
		face = s.answerFace()
	}
	return View{
		ProgressText:    fmt.Sprintf("Card %d of %d", s.index+1, len(s.cards)),
		PercentComplete: float64(s.index+1) / float64(len(s.cards)) * 100,
		FaceText:        face,
		IsFlipped:       s.flipped,
		Mode:            s.mode,
		Finished:        s.finished,
	}
}

// Flip toggles the visible face. In typing mode an unflipped card does not
// flip directly: the typed-answer check runs instead and flips as its side
// effect, so the user always sees the correct answer after typing.
func (s *Session) Flip() (View, error) {
	if s.finished {
		return View{}, ErrFinished
	}
	if s.mode == ModeTyping && !s.flipped {
		s.CheckTypedAnswer(s.typed)
		return s.View(), nil
	}
	s.flipped = !s.flipped
	s.emit(EventAdvanced, nil)
	return s.View(), nil
}

// CheckTypedAnswer grades the input against the answer face and reveals it.
// The similarity is visual feedback only; it never gates advancement and
// never touches scheduling. The user still rates the card explicitly.
func (s *Session) CheckTypedAnswer(input string) Feedback {
	s.typed = input
	fb := Grade(input, s.answerFace())
	s.flipped = true
	s.emit(EventAdvanced, nil)
	return fb
}

// Rate records a graded card and moves the session forward. The caller has
// already run the scheduler against the canonical card; wasCorrect and
// stats feed the summary when the last card completes the session.
func (s *Session) Rate(wasCorrect bool, stats models.Stats) (*models.SessionSummary, error) {
	if s.finished {
		return nil, ErrFinished
	}

	if s.index < len(s.cards)-1 {
		s.index++
		s.flipped = false
		s.typed = ""
		s.emit(EventAdvanced, nil)
		return nil, nil
	}

	s.finished = true
	summary := &models.SessionSummary{
		CardsStudied: len(s.cards),
		Accuracy:     accuracy(stats),
		Streak:       stats.Streak,
	}
	s.emit(EventFinished, summary)
	return summary, nil
}

// accuracy mirrors the dashboard number: overall correct share, rounded,
// zero when nothing was studied yet.
func accuracy(stats models.Stats) float64 {
	total := stats.TotalCorrect + stats.TotalWrong
	if total == 0 {
		return 0
	}
	return math.Round(float64(stats.TotalCorrect) / float64(total) * 100)
}

// Next moves to the following card without grading. Clamped at the last
// card; never touches the scheduler.
func (s *Session) Next() (View, error) {
	if s.finished {
		return View{}, ErrFinished
	}
	if s.index < len(s.cards)-1 {
		s.index++
		s.flipped = false
		s.typed = ""
		s.emit(EventAdvanced, nil)
	}
	return s.View(), nil
}

// Previous moves back one card without grading. Clamped at the first card.
func (s *Session) Previous() (View, error) {
	if s.finished {
		return View{}, ErrFinished
	}
	if s.index > 0 {
		s.index--
		s.flipped = false
		s.typed = ""
		s.emit(EventAdvanced, nil)
	}
	return s.View(), nil
}
