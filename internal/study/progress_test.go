package study_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/study"
)

func TestRecord_Counters(t *testing.T) {
	stats := models.Stats{}

	study.Record(&stats, true, true, "2025-03-10")
	assert.Equal(t, 1, stats.TotalCorrect)
	assert.Equal(t, 1, stats.StudiedToday)
	assert.Equal(t, 1, stats.NewCardsToday)
	assert.Equal(t, 0, stats.ReviewsToday)

	study.Record(&stats, false, false, "2025-03-10")
	assert.Equal(t, 1, stats.TotalWrong)
	assert.Equal(t, 2, stats.StudiedToday)
	assert.Equal(t, 1, stats.ReviewsToday)
}

func TestRecord_FirstEverStudyStartsStreak(t *testing.T) {
	stats := models.Stats{}

	study.Record(&stats, true, true, "2025-03-10")
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, "2025-03-10", stats.LastStudyDate)
}

func TestRecord_ConsecutiveDayExtendsStreak(t *testing.T) {
	stats := models.Stats{Streak: 4, LastStudyDate: "2025-03-09"}

	study.Record(&stats, true, false, "2025-03-10")
	assert.Equal(t, 5, stats.Streak)
	assert.Equal(t, "2025-03-10", stats.LastStudyDate)
}

func TestRecord_GapResetsStreak(t *testing.T) {
	stats := models.Stats{Streak: 7, LastStudyDate: "2025-03-07"}

	study.Record(&stats, true, false, "2025-03-10")
	assert.Equal(t, 1, stats.Streak, "three-day-old last study starts over")
}

func TestRecord_SameDayLeavesStreakAlone(t *testing.T) {
	stats := models.Stats{Streak: 3, LastStudyDate: "2025-03-10"}

	study.Record(&stats, true, false, "2025-03-10")
	study.Record(&stats, false, false, "2025-03-10")
	assert.Equal(t, 3, stats.Streak, "only the first rating of a day touches the streak")
}

func TestRefresh_SameDayNoop(t *testing.T) {
	stats := models.Stats{Streak: 3, StudiedToday: 5, LastStudyDate: "2025-03-10"}

	changed := study.Refresh(&stats, "2025-03-10")
	assert.False(t, changed)
	assert.Equal(t, 5, stats.StudiedToday)
}

func TestRefresh_NextDayResetsDailyCounters(t *testing.T) {
	stats := models.Stats{
		Streak: 3, StudiedToday: 5, NewCardsToday: 2, ReviewsToday: 3,
		LastStudyDate: "2025-03-09",
	}

	changed := study.Refresh(&stats, "2025-03-10")
	assert.True(t, changed)
	assert.Equal(t, 0, stats.StudiedToday)
	assert.Equal(t, 0, stats.NewCardsToday)
	assert.Equal(t, 0, stats.ReviewsToday)
	assert.Equal(t, 3, stats.Streak, "yesterday keeps the streak alive")
}

func TestRefresh_GapBreaksStreak(t *testing.T) {
	stats := models.Stats{Streak: 3, StudiedToday: 5, LastStudyDate: "2025-03-05"}

	changed := study.Refresh(&stats, "2025-03-10")
	assert.True(t, changed)
	assert.Equal(t, 0, stats.Streak)
	assert.Equal(t, 0, stats.StudiedToday)
}

func TestRefresh_NeverStudied(t *testing.T) {
	stats := models.Stats{}
	assert.False(t, study.Refresh(&stats, "2025-03-10"))
}

func TestRefresh_MalformedDateBreaksStreak(t *testing.T) {
	stats := models.Stats{Streak: 6, StudiedToday: 4, LastStudyDate: "not-a-date"}

	changed := study.Refresh(&stats, "2025-03-10")
	assert.True(t, changed)
	assert.Equal(t, 0, stats.Streak, "an unreadable last-study date counts as a gap")
	assert.Equal(t, 0, stats.StudiedToday)
}

func TestRecord_MalformedDateStartsStreakOver(t *testing.T) {
	stats := models.Stats{Streak: 6, LastStudyDate: "garbage"}

	study.Record(&stats, true, false, "2025-03-10")
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, "2025-03-10", stats.LastStudyDate)
}
