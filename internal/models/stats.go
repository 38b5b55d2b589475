package models

// DateLayout is the calendar-date format used for streak tracking and the
// per-day study history. Streaks compare dates, not timestamps.
const DateLayout = "2006-01-02"

// Stats holds the user's aggregate study counters. All mutation goes through
// the study service's rating path; external readers never write these.
type Stats struct {
	StudiedToday  int    `json:"studied_today"`
	NewCardsToday int    `json:"new_cards_today"`
	ReviewsToday  int    `json:"reviews_today"`
	TotalCorrect  int    `json:"total_correct"`
	TotalWrong    int    `json:"total_wrong"`
	Streak        int    `json:"streak"`
	LastStudyDate string `json:"last_study_date,omitempty"` // DateLayout, empty if never studied
}

// StudyDay is one calendar day's worth of study activity, kept as an
// append-only daily history for the activity chart.
type StudyDay struct {
	Date     string `json:"date"` // DateLayout
	Cards    int    `json:"cards"`
	NewCards int    `json:"new_cards"`
	Reviews  int    `json:"reviews"`
	Correct  int    `json:"correct"`
	Wrong    int    `json:"wrong"`
}

// SessionSummary is emitted when a study session finishes.
type SessionSummary struct {
	CardsStudied int     `json:"cards_studied"`
	Accuracy     float64 `json:"accuracy"` // percentage, 0-100
	Streak       int     `json:"streak"`
}

type Settings struct {
	NewCardsPerDay int `json:"new_cards_per_day"`
	ReviewsPerDay  int `json:"reviews_per_day"`
}

// DefaultSettings mirrors the defaults applied for a fresh user.
func DefaultSettings() Settings {
	return Settings{
		NewCardsPerDay: 20,
		ReviewsPerDay:  100,
	}
}
