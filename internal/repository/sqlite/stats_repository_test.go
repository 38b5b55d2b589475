package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/repository"
	"github.com/lribeiro/flashdeck/internal/repository/sqlite"
	"github.com/lribeiro/flashdeck/internal/testutil"
)

type StatsRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.StatsRepository
}

func (s *StatsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStatsRepository(s.db)
}

func (s *StatsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StatsRepositorySuite) TestGetReturnsSeededSingleton() {
	stats, err := s.repo.Get(context.Background())
	s.Require().NoError(err)
	s.Require().NotNil(stats)
	s.Zero(stats.StudiedToday)
	s.Zero(stats.Streak)
	s.Empty(stats.LastStudyDate)
}

func (s *StatsRepositorySuite) TestSaveRoundTrip() {
	ctx := context.Background()

	want := models.Stats{
		StudiedToday:  5,
		NewCardsToday: 2,
		ReviewsToday:  3,
		TotalCorrect:  40,
		TotalWrong:    10,
		Streak:        7,
		LastStudyDate: "2025-03-10",
	}
	s.Require().NoError(s.repo.Save(ctx, want))

	got, err := s.repo.Get(ctx)
	s.Require().NoError(err)
	s.Equal(want, *got)
}

func (s *StatsRepositorySuite) TestRecordStudyDayAccumulates() {
	ctx := context.Background()

	s.Require().NoError(s.repo.RecordStudyDay(ctx, "2025-03-10", true, true))
	s.Require().NoError(s.repo.RecordStudyDay(ctx, "2025-03-10", false, true))
	s.Require().NoError(s.repo.RecordStudyDay(ctx, "2025-03-10", false, false))

	days, err := s.repo.RecentStudyDays(ctx, 1, "2025-03-10")
	s.Require().NoError(err)
	s.Require().Len(days, 1)

	d := days[0]
	s.Equal(3, d.Cards)
	s.Equal(1, d.NewCards)
	s.Equal(2, d.Reviews)
	s.Equal(2, d.Correct)
	s.Equal(1, d.Wrong)
}

func (s *StatsRepositorySuite) TestRecentStudyDaysFillsGaps() {
	ctx := context.Background()

	s.Require().NoError(s.repo.RecordStudyDay(ctx, "2025-03-08", false, true))
	s.Require().NoError(s.repo.RecordStudyDay(ctx, "2025-03-10", false, true))

	days, err := s.repo.RecentStudyDays(ctx, 4, "2025-03-10")
	s.Require().NoError(err)
	s.Require().Len(days, 4)

	s.Equal("2025-03-07", days[0].Date)
	s.Zero(days[0].Cards)
	s.Equal("2025-03-08", days[1].Date)
	s.Equal(1, days[1].Cards)
	s.Equal("2025-03-09", days[2].Date)
	s.Zero(days[2].Cards)
	s.Equal("2025-03-10", days[3].Date)
	s.Equal(1, days[3].Cards)
}

func TestStatsRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatsRepositorySuite))
}
