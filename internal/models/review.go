package models

import "time"

// Review is one entry of the review history. It is kept for analytics only
// and never feeds back into scheduling.
type Review struct {
	ID         int64     `json:"id"`
	CardID     int64     `json:"card_id"`
	Quality    int       `json:"quality"`
	ReviewedAt time.Time `json:"reviewed_at"`
	TimeTaken  *float64  `json:"time_taken,omitempty"`
}

type ReviewStats struct {
	TotalReviews        int         `json:"total_reviews"`
	AverageQuality      float64     `json:"average_quality"`
	AverageTime         float64     `json:"average_time"`
	QualityDistribution map[int]int `json:"quality_distribution"`
}

// NewReviewStats returns empty stats with every quality bucket present.
func NewReviewStats() ReviewStats {
	return ReviewStats{
		QualityDistribution: map[int]int{0: 0, 1: 0, 2: 0, 3: 0},
	}
}
