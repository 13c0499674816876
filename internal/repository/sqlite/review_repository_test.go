package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/codeflash/internal/models"
	"github.com/vytor/codeflash/internal/repository"
	"github.com/vytor/codeflash/internal/repository/sqlite"
	"github.com/vytor/codeflash/internal/testutil"
)

type ReviewRepositorySuite struct {
	suite.Suite
	db     *sql.DB
	repo   repository.ReviewRepository
	cardID int64
	now    time.Time
}

func (s *ReviewRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewReviewRepository(s.db)
	s.now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	deckID := testutil.InsertDeck(s.T(), s.db, "Go")
	s.cardID = testutil.InsertCard(s.T(), s.db, deckID, "q", s.now)
}

func (s *ReviewRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ReviewRepositorySuite) insert(quality int, at time.Time, timeTaken *float64) int64 {
	id, err := s.repo.Insert(context.Background(), models.Review{
		CardID:     s.cardID,
		Quality:    quality,
		ReviewedAt: at,
		TimeTaken:  timeTaken,
	})
	s.Require().NoError(err)
	return id
}

func seconds(v float64) *float64 { return &v }

func (s *ReviewRepositorySuite) TestListForCard() {
	ctx := context.Background()
	older := s.insert(0, s.now.Add(-2*time.Hour), nil)
	newer := s.insert(3, s.now, seconds(4.5))

	reviews, err := s.repo.ListForCard(ctx, s.cardID, 0)
	s.Require().NoError(err)
	s.Require().Len(reviews, 2)
	s.Assert().Equal(newer, reviews[0].ID)
	s.Assert().Equal(older, reviews[1].ID)
	s.Require().NotNil(reviews[0].TimeTaken)
	s.Assert().Equal(4.5, *reviews[0].TimeTaken)
	s.Assert().Nil(reviews[1].TimeTaken)

	limited, err := s.repo.ListForCard(ctx, s.cardID, 1)
	s.Require().NoError(err)
	s.Assert().Len(limited, 1)

	other, err := s.repo.ListForCard(ctx, s.cardID+1, 0)
	s.Require().NoError(err)
	s.Assert().Empty(other)
}

func (s *ReviewRepositorySuite) TestBetweenBounds() {
	ctx := context.Background()
	start := s.now
	end := s.now.AddDate(0, 0, 1)

	s.insert(2, start.Add(-time.Second), nil)
	s.insert(2, start, nil)
	s.insert(2, start.Add(6*time.Hour), nil)
	s.insert(2, end, nil)

	listed, err := s.repo.ListBetween(ctx, start, end)
	s.Require().NoError(err)
	s.Assert().Len(listed, 3, "both ends are included")

	count, err := s.repo.CountBetween(ctx, start, end)
	s.Require().NoError(err)
	s.Assert().Equal(2, count, "the end is excluded")
}

func (s *ReviewRepositorySuite) TestStatsForCard() {
	ctx := context.Background()

	empty, err := s.repo.StatsForCard(ctx, s.cardID)
	s.Require().NoError(err)
	s.Assert().Zero(empty.TotalReviews)
	s.Assert().Equal(map[int]int{0: 0, 1: 0, 2: 0, 3: 0}, empty.QualityDistribution)

	s.insert(0, s.now, seconds(10))
	s.insert(2, s.now, seconds(20))
	s.insert(2, s.now, nil)
	s.insert(3, s.now, seconds(0))

	stats, err := s.repo.StatsForCard(ctx, s.cardID)
	s.Require().NoError(err)
	s.Assert().Equal(4, stats.TotalReviews)
	s.Assert().InDelta(1.75, stats.AverageQuality, 1e-9)
	s.Assert().InDelta(15.0, stats.AverageTime, 1e-9)
	s.Assert().Equal(map[int]int{0: 1, 1: 0, 2: 2, 3: 1}, stats.QualityDistribution)
}

func (s *ReviewRepositorySuite) TestDeletingCardRemovesHistory() {
	ctx := context.Background()
	s.insert(1, s.now, nil)

	_, err := sqlite.NewCardRepository(s.db).Delete(ctx, s.cardID)
	s.Require().NoError(err)

	reviews, err := s.repo.ListForCard(ctx, s.cardID, 0)
	s.Require().NoError(err)
	s.Assert().Empty(reviews)
}

func TestReviewRepositorySuite(t *testing.T) {
	suite.Run(t, new(ReviewRepositorySuite))
}
