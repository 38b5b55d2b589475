package study

import (
	"time"

	"github.com/lribeiro/flashdeck/internal/models"
)

// Record folds one rated card into the aggregate counters. This is the only
// place the streak is updated: the streak counts consecutive calendar days
// with at least one rated card, so only the first rating of a day touches it.
func Record(stats *models.Stats, wasCorrect, isNew bool, today string) {
	if wasCorrect {
		stats.TotalCorrect++
	} else {
		stats.TotalWrong++
	}

	stats.StudiedToday++
	if isNew {
		stats.NewCardsToday++
	} else {
		stats.ReviewsToday++
	}

	if stats.LastStudyDate == today {
		return
	}
	if stats.LastStudyDate == "" {
		stats.Streak = 1
	} else {
		switch diff := daysBetween(stats.LastStudyDate, today); {
		case diff == 1:
			stats.Streak++
		case diff > 1:
			stats.Streak = 1
		}
	}
	stats.LastStudyDate = today
}

// Refresh reconciles the counters with the calendar on load: a new day
// zeroes the daily counters, and a gap of more than one day breaks the
// streak. Reports whether anything changed so the caller can persist.
func Refresh(stats *models.Stats, today string) bool {
	if stats.LastStudyDate == "" || stats.LastStudyDate == today {
		return false
	}

	stats.StudiedToday = 0
	stats.NewCardsToday = 0
	stats.ReviewsToday = 0
	if daysBetween(stats.LastStudyDate, today) > 1 {
		stats.Streak = 0
	}
	return true
}

// brokenStreakGap is returned for malformed dates: any gap above one day
// breaks the streak, so an unparseable last-study date does too.
const brokenStreakGap = 2

// daysBetween returns whole calendar days from one DateLayout date to
// another.
func daysBetween(from, to string) int {
	a, err := time.Parse(models.DateLayout, from)
	if err != nil {
		return brokenStreakGap
	}
	b, err := time.Parse(models.DateLayout, to)
	if err != nil {
		return brokenStreakGap
	}
	return int(b.Sub(a).Hours() / 24)
}
