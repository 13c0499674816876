package worker

import (
	"context"

	"github.com/vytor/codeflash/internal/models"
)

// ReviewRecorder persists review history entries.
// It is satisfied by repository.ReviewRepository without importing it here.
type ReviewRecorder interface {
	Insert(ctx context.Context, review models.Review) (int64, error)
}
