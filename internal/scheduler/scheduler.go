package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/lribeiro/flashdeck/internal/models"
)

// ErrInvalidRating is returned when a rating outside {1,2,3,4} reaches the
// scheduler. Callers are expected to reject bad input before persisting
// anything.
var ErrInvalidRating = errors.New("rating must be between 1 (again) and 4 (easy)")

const (
	againDelay = time.Minute
	hardDelay  = 10 * time.Minute
	day        = 24 * time.Hour
)

// Result is the scheduling outcome for a single review.
type Result struct {
	Level      int
	NextReview time.Time
	WasCorrect bool
}

// Scheduler computes a card's next review time from a recall rating.
// Successful recalls back off exponentially: the interval doubles with each
// level. The zero value schedules with no interval cap.
type Scheduler struct {
	// MaxIntervalDays caps the exponential backoff when > 0. Left at 0 the
	// interval grows without bound (1024 days at level 10), matching the
	// graduated-card behavior.
	MaxIntervalDays int
}

// Schedule maps (level, rating, now) to the card's updated level and next
// review time. Pure: same inputs always produce the same Result.
func (s Scheduler) Schedule(level int, rating models.Rating, now time.Time) (Result, error) {
	if !rating.Valid() {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}
	if level < 0 {
		level = 0
	}

	switch rating {
	case models.RatingAgain:
		return Result{Level: 0, NextReview: now.Add(againDelay)}, nil
	case models.RatingHard:
		return Result{Level: level, NextReview: now.Add(hardDelay), WasCorrect: true}, nil
	case models.RatingGood:
		level++
	case models.RatingEasy:
		level += 2
	}

	days := 1 << level
	if s.MaxIntervalDays > 0 && days > s.MaxIntervalDays {
		days = s.MaxIntervalDays
	}
	return Result{
		Level:      level,
		NextReview: now.Add(time.Duration(days) * day),
		WasCorrect: true,
	}, nil
}

// Apply runs Schedule against the card and writes the outcome back: level,
// next review, and one appended history entry. It persists nothing; saving
// the card is the caller's concern.
func (s Scheduler) Apply(card *models.Card, rating models.Rating, now time.Time) (Result, error) {
	res, err := s.Schedule(card.Level, rating, now)
	if err != nil {
		return Result{}, err
	}
	card.Level = res.Level
	next := res.NextReview
	card.NextReview = &next
	card.History = append(card.History, models.ReviewEntry{Date: now, Rating: rating})
	return res, nil
}
