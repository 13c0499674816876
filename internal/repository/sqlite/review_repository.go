package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/codeflash/internal/logger"
	"github.com/vytor/codeflash/internal/models"
	"github.com/vytor/codeflash/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

var reviewColumns = []string{"id", "card_id", "quality", "reviewed_at", "time_taken"}

func (r *reviewRepository) Insert(ctx context.Context, rv models.Review) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("inserting review: card_id=%d, quality=%d", rv.CardID, rv.Quality)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO reviews (card_id, quality, reviewed_at, time_taken)
VALUES (?, ?, ?, ?)
`, rv.CardID, rv.Quality, utc(rv.ReviewedAt), nullableFloat(rv.TimeTaken))
	if err != nil {
		log.Error("failed to insert review: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *reviewRepository) query(ctx context.Context, log *logger.Logger, query squirrel.SelectBuilder) ([]models.Review, error) {
	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to query reviews: %v", err)
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rv models.Review
		var timeTaken sql.NullFloat64
		if err := rows.Scan(&rv.ID, &rv.CardID, &rv.Quality, &rv.ReviewedAt, &timeTaken); err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		rv.TimeTaken = floatPtr(timeTaken)
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// ListForCard returns the card's history, newest first. limit <= 0 means no limit.
func (r *reviewRepository) ListForCard(ctx context.Context, cardID int64, limit int) ([]models.Review, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing reviews: card_id=%d, limit=%d", cardID, limit)

	query := sqlBuilder.Select(reviewColumns...).From("reviews").
		Where(squirrel.Eq{"card_id": cardID}).
		OrderBy("reviewed_at DESC", "id DESC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	return r.query(ctx, log, query)
}

// ListBetween returns reviews with start <= reviewed_at <= end, newest first.
func (r *reviewRepository) ListBetween(ctx context.Context, start, end time.Time) ([]models.Review, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing reviews between %s and %s", start.Format(time.RFC3339), end.Format(time.RFC3339))

	query := sqlBuilder.Select(reviewColumns...).From("reviews").
		Where(squirrel.GtOrEq{"reviewed_at": utc(start)}).
		Where(squirrel.LtOrEq{"reviewed_at": utc(end)}).
		OrderBy("reviewed_at DESC", "id DESC")
	return r.query(ctx, log, query)
}

// CountBetween counts reviews with start <= reviewed_at < end.
func (r *reviewRepository) CountBetween(ctx context.Context, start, end time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM reviews WHERE reviewed_at >= ? AND reviewed_at < ?
`, utc(start), utc(end)).Scan(&n)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("review_repo").Error("failed to count reviews: %v", err)
	}
	return n, err
}

func (r *reviewRepository) StatsForCard(ctx context.Context, cardID int64) (*models.ReviewStats, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("computing review stats: card_id=%d", cardID)

	stats := models.NewReviewStats()
	// Reviews without a recorded duration do not count towards the average time.
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(AVG(quality), 0), COALESCE(AVG(CASE WHEN time_taken > 0 THEN time_taken END), 0)
FROM reviews
WHERE card_id = ?
`, cardID).Scan(&stats.TotalReviews, &stats.AverageQuality, &stats.AverageTime)
	if err != nil {
		log.Error("failed to compute review stats: %v", err)
		return nil, err
	}
	if stats.TotalReviews == 0 {
		return &stats, nil
	}

	rows, err := r.db.QueryContext(ctx, `SELECT quality, COUNT(*) FROM reviews WHERE card_id = ? GROUP BY quality`, cardID)
	if err != nil {
		log.Error("failed to compute quality distribution: %v", err)
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var quality, count int
		if err := rows.Scan(&quality, &count); err != nil {
			return nil, err
		}
		stats.QualityDistribution[quality] = count
	}
	return &stats, rows.Err()
}
