package models

import "time"

// Rating is the four-grade recall-quality signal supplied by the user
// after reviewing a card.
type Rating int

const (
	RatingAgain Rating = 1 // failed completely
	RatingHard  Rating = 2 // recalled with difficulty
	RatingGood  Rating = 3 // recalled normally
	RatingEasy  Rating = 4 // recalled easily
)

// Valid reports whether r is one of the four defined grades.
func (r Rating) Valid() bool {
	return r >= RatingAgain && r <= RatingEasy
}

// Correct reports whether the rating counts as a successful recall.
// Hard is not a failure; only Again resets progress.
func (r Rating) Correct() bool {
	return r != RatingAgain
}

// ReviewEntry is one study event in a card's append-only history.
type ReviewEntry struct {
	Date   time.Time `json:"date"`
	Rating Rating    `json:"rating"`
}

type Card struct {
	ID         string        `json:"id"`
	DeckID     string        `json:"deck_id"`
	Front      string        `json:"front"`
	Back       string        `json:"back"`
	Level      int           `json:"level"`
	NextReview *time.Time    `json:"next_review,omitempty"`
	History    []ReviewEntry `json:"history,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// IsDue reports whether the card is eligible for study at the given time.
// A card that was never scheduled is always due.
func (c Card) IsDue(now time.Time) bool {
	return c.NextReview == nil || !c.NextReview.After(now)
}

// IsNew reports whether the card has never been reviewed.
func (c Card) IsNew() bool {
	return len(c.History) == 0
}

type Deck struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Folder      string    `json:"folder"`
	Cards       []Card    `json:"cards"`
	CreatedAt   time.Time `json:"created_at"`
}

// DueCount returns how many of the deck's cards are due at the given time.
func (d Deck) DueCount(now time.Time) int {
	n := 0
	for _, c := range d.Cards {
		if c.IsDue(now) {
			n++
		}
	}
	return n
}

// NewCount returns how many of the deck's cards have never been reviewed.
func (d Deck) NewCount() int {
	n := 0
	for _, c := range d.Cards {
		if c.IsNew() {
			n++
		}
	}
	return n
}

type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DeckSummary is the listing view of a deck: metadata plus study counters,
// without the full card set.
type DeckSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Folder      string    `json:"folder"`
	CardCount   int       `json:"card_count"`
	DueCount    int       `json:"due_count"`
	NewCount    int       `json:"new_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeckFilter narrows deck listings.
type DeckFilter struct {
	Folder   string
	Language string
}
