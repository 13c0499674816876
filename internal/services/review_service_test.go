package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/codeflash/internal/errors"
	"github.com/vytor/codeflash/internal/models"
	"github.com/vytor/codeflash/internal/services"
	"github.com/vytor/codeflash/internal/testutil/mocks"
)

func newReviewService() (services.ReviewService, *mocks.MockReviewRepository, *mocks.MockCardRepository) {
	reviews := new(mocks.MockReviewRepository)
	cards := new(mocks.MockCardRepository)
	return services.NewReviewService(reviews, cards, fixedClock), reviews, cards
}

func TestTodayCount_UsesHalfOpenDay(t *testing.T) {
	svc, reviews, _ := newReviewService()
	ctx := context.Background()
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	reviews.On("CountBetween", ctx, start, start.AddDate(0, 0, 1)).Return(7, nil)

	n, err := svc.TodayCount(ctx)

	require.NoError(t, err)
	assert.Equal(t, 7, n)
	reviews.AssertExpectations(t)
}

func TestReviewsBetween_ExpandsToWholeDays(t *testing.T) {
	svc, reviews, _ := newReviewService()
	ctx := context.Background()
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 3, 23, 59, 59, 999_000_000, time.UTC)
	reviews.On("ListBetween", ctx, from, to).Return([]models.Review{{ID: 1}}, nil)

	list, err := svc.ReviewsBetween(ctx, from.Add(15*time.Hour), time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Len(t, list, 1)
	reviews.AssertExpectations(t)
}

func TestReviewsBetween_InvertedRange(t *testing.T) {
	svc, _, _ := newReviewService()

	_, err := svc.ReviewsBetween(context.Background(), fixedNow, fixedNow.AddDate(0, 0, -2))
	assertAppError(t, err, errors.ErrCodeValidation)
}

func TestCardReviews(t *testing.T) {
	svc, reviews, cards := newReviewService()
	ctx := context.Background()
	cards.On("Get", ctx, int64(3)).Return(&models.Card{ID: 3}, nil)
	reviews.On("ListForCard", ctx, int64(3), 5).Return([]models.Review{{ID: 9, CardID: 3}}, nil)

	list, err := svc.CardReviews(ctx, 3, 5)

	require.NoError(t, err)
	assert.Equal(t, int64(9), list[0].ID)
}

func TestCardReviewStats_UnknownCard(t *testing.T) {
	svc, reviews, cards := newReviewService()
	ctx := context.Background()
	cards.On("Get", ctx, int64(3)).Return(nil, nil)

	_, err := svc.CardReviewStats(ctx, 3)

	assertAppError(t, err, errors.ErrCodeNotFound)
	reviews.AssertNotCalled(t, "StatsForCard")
}
