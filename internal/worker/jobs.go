package worker

import (
	"context"

	"github.com/vytor/codeflash/internal/logger"
	"github.com/vytor/codeflash/internal/models"
)

// RecordReviewJob appends one entry to the review history. It runs after the
// card's schedule has been committed, so a failure here never undoes a review.
type RecordReviewJob struct {
	Recorder ReviewRecorder
	Review   models.Review
}

func (j *RecordReviewJob) Name() string { return "record_review" }

func (j *RecordReviewJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"card_id": j.Review.CardID,
		"quality": j.Review.Quality,
	})

	id, err := j.Recorder.Insert(ctx, j.Review)
	if err != nil {
		log.WithError(err).Warn("failed to record review history")
		return err
	}
	log.Debug("review history recorded: id=%d", id)
	return nil
}
