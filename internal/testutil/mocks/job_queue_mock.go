package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/codeflash/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueReviewRecord(review models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}
