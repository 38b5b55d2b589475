package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lribeiro/flashdeck/internal/logger"
	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Get(ctx context.Context) (*models.Stats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	var s models.Stats
	err := r.db.QueryRowContext(ctx, `
SELECT studied_today, new_cards_today, reviews_today, total_correct, total_wrong, streak, last_study_date
FROM stats WHERE id = 1
`).Scan(&s.StudiedToday, &s.NewCardsToday, &s.ReviewsToday, &s.TotalCorrect, &s.TotalWrong, &s.Streak, &s.LastStudyDate)
	if err != nil {
		log.Error("failed to get stats: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *statsRepository) Save(ctx context.Context, s models.Stats) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("saving stats: studied_today=%d, streak=%d", s.StudiedToday, s.Streak)

	_, err := r.db.ExecContext(ctx, `
UPDATE stats
SET studied_today = ?, new_cards_today = ?, reviews_today = ?,
    total_correct = ?, total_wrong = ?, streak = ?, last_study_date = ?
WHERE id = 1
`, s.StudiedToday, s.NewCardsToday, s.ReviewsToday, s.TotalCorrect, s.TotalWrong, s.Streak, s.LastStudyDate)
	if err != nil {
		log.Error("failed to save stats: %v", err)
	}
	return err
}

func (r *statsRepository) RecordStudyDay(ctx context.Context, date string, isNew, correct bool) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("recording study day: date=%s, new=%v, correct=%v", date, isNew, correct)

	newInc, reviewInc := 0, 1
	if isNew {
		newInc, reviewInc = 1, 0
	}
	correctInc, wrongInc := 0, 1
	if correct {
		correctInc, wrongInc = 1, 0
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO study_days (date, cards, new_cards, reviews, correct, wrong)
VALUES (?, 1, ?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
    cards = cards + 1,
    new_cards = new_cards + excluded.new_cards,
    reviews = reviews + excluded.reviews,
    correct = correct + excluded.correct,
    wrong = wrong + excluded.wrong
`, date, newInc, reviewInc, correctInc, wrongInc)
	if err != nil {
		log.Error("failed to record study day: %v", err)
	}
	return err
}

func (r *statsRepository) RecentStudyDays(ctx context.Context, n int, today string) ([]models.StudyDay, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	if n <= 0 {
		n = 7
	}

	end, err := time.Parse(models.DateLayout, today)
	if err != nil {
		return nil, err
	}
	start := end.AddDate(0, 0, -(n - 1))

	rows, err := r.db.QueryContext(ctx, `
SELECT date, cards, new_cards, reviews, correct, wrong
FROM study_days
WHERE date >= ? AND date <= ?
ORDER BY date
`, start.Format(models.DateLayout), today)
	if err != nil {
		log.Error("failed to query study days: %v", err)
		return nil, err
	}
	defer rows.Close()

	byDate := make(map[string]models.StudyDay, n)
	for rows.Next() {
		var d models.StudyDay
		if err := rows.Scan(&d.Date, &d.Cards, &d.NewCards, &d.Reviews, &d.Correct, &d.Wrong); err != nil {
			log.Error("failed to scan study day row: %v", err)
			return nil, err
		}
		byDate[d.Date] = d
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Fill gaps so the caller always gets one row per day, oldest first.
	days := make([]models.StudyDay, 0, n)
	for i := 0; i < n; i++ {
		date := start.AddDate(0, 0, i).Format(models.DateLayout)
		if d, ok := byDate[date]; ok {
			days = append(days, d)
		} else {
			days = append(days, models.StudyDay{Date: date})
		}
	}
	return days, nil
}
