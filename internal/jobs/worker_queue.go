package jobs

import (
	"context"

	"github.com/vytor/codeflash/internal/logger"
	"github.com/vytor/codeflash/internal/models"
	"github.com/vytor/codeflash/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	historyPool *worker.Pool
	recorder    worker.ReviewRecorder
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(historyPool *worker.Pool, recorder worker.ReviewRecorder) JobQueue {
	return &WorkerQueue{
		historyPool: historyPool,
		recorder:    recorder,
	}
}

func (q *WorkerQueue) EnqueueReviewRecord(review models.Review) error {
	return q.historyPool.Submit(&worker.RecordReviewJob{
		Recorder: q.recorder,
		Review:   review,
	})
}

// InlineQueue runs jobs synchronously on the caller's goroutine. The CLI uses
// it, since the process exits right after the command.
type InlineQueue struct {
	recorder worker.ReviewRecorder
	log      *logger.Logger
}

// NewInlineQueue creates a JobQueue that records reviews immediately
func NewInlineQueue(recorder worker.ReviewRecorder) JobQueue {
	return &InlineQueue{
		recorder: recorder,
		log:      logger.Default().WithPrefix("inline-queue"),
	}
}

func (q *InlineQueue) EnqueueReviewRecord(review models.Review) error {
	job := &worker.RecordReviewJob{Recorder: q.recorder, Review: review}
	return job.Run(logger.NewContext(context.Background(), q.log))
}
