package services

import (
	"context"
	"time"

	"github.com/vytor/codeflash/internal/errors"
	"github.com/vytor/codeflash/internal/logger"
	"github.com/vytor/codeflash/internal/models"
	"github.com/vytor/codeflash/internal/repository"
)

// ReviewService exposes the review history. History is analytics only and
// never feeds back into scheduling.
type ReviewService interface {
	CardReviews(ctx context.Context, cardID int64, limit int) ([]models.Review, error)
	CardReviewStats(ctx context.Context, cardID int64) (*models.ReviewStats, error)
	ReviewsBetween(ctx context.Context, start, end time.Time) ([]models.Review, error)
	TodayCount(ctx context.Context) (int, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	cardRepo   repository.CardRepository
	now        Clock
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo repository.ReviewRepository, cardRepo repository.CardRepository, clock Clock) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		cardRepo:   cardRepo,
		now:        clockOrDefault(clock),
	}
}

func (s *reviewService) requireCard(ctx context.Context, cardID int64) error {
	card, err := s.cardRepo.Get(ctx, cardID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get card: %v", err)
		return errors.NewInternalError(err)
	}
	if card == nil {
		return errors.NewNotFoundError("card", cardID)
	}
	return nil
}

func (s *reviewService) CardReviews(ctx context.Context, cardID int64, limit int) ([]models.Review, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing reviews: card_id=%d, limit=%d", cardID, limit)

	if err := s.requireCard(ctx, cardID); err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListForCard(ctx, cardID, limit)
	if err != nil {
		log.Error("failed to list reviews: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return reviews, nil
}

func (s *reviewService) CardReviewStats(ctx context.Context, cardID int64) (*models.ReviewStats, error) {
	log := logger.FromContext(ctx)

	if err := s.requireCard(ctx, cardID); err != nil {
		return nil, err
	}
	stats, err := s.reviewRepo.StatsForCard(ctx, cardID)
	if err != nil {
		log.Error("failed to compute review stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

// ReviewsBetween returns reviews from the start of start's day through the
// end of end's day, both inclusive.
func (s *reviewService) ReviewsBetween(ctx context.Context, start, end time.Time) ([]models.Review, error) {
	log := logger.FromContext(ctx)

	from := startOfDay(start)
	to := startOfDay(end).AddDate(0, 0, 1).Add(-time.Millisecond)
	if to.Before(from) {
		return nil, errors.NewValidationError("endDate", "must not be before startDate")
	}

	reviews, err := s.reviewRepo.ListBetween(ctx, from, to)
	if err != nil {
		log.Error("failed to list reviews by date: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Debug("found %d reviews between %s and %s", len(reviews), from.Format(time.DateOnly), to.Format(time.DateOnly))
	return reviews, nil
}

func (s *reviewService) TodayCount(ctx context.Context) (int, error) {
	today := startOfDay(s.now())
	n, err := s.reviewRepo.CountBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		logger.FromContext(ctx).Error("failed to count today's reviews: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return n, nil
}
