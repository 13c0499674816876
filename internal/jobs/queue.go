package jobs

import "github.com/vytor/codeflash/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	// EnqueueReviewRecord schedules a review history write. It must not block
	// the caller; a full or stopped queue is reported as an error.
	EnqueueReviewRecord(review models.Review) error
}
