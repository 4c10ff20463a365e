package jobqueue

import (
	"context"
	"errors"

	"github.com/gnout1912/VieTube-sub001/internal/models"
)

// MinPriority is the most urgent priority the queue accepts.
const MinPriority = 1

const DefaultMaxAttempts = 1

var ErrJobNotFound = errors.New("job not found")

// Store is a priority job queue. Jobs of one type are handed out lowest
// priority first and in submission order within a priority.
type Store interface {
	Submit(ctx context.Context, job *models.QueueJob) (*models.QueueJob, error)
	// SubmitSequentialFlow stores parent as waiting and child as waiting on
	// parent. Both are written in one transaction.
	SubmitSequentialFlow(ctx context.Context, parent, child *models.QueueJob) (*models.QueueJob, *models.QueueJob, error)
	Dequeue(ctx context.Context, jobType models.QueueJobType) (*models.QueueJob, error)
	Complete(ctx context.Context, job *models.QueueJob) error
	Fail(ctx context.Context, job *models.QueueJob, cause error) error
	Get(ctx context.Context, jobID string) (*models.QueueJob, error)
}

// Handler processes one dequeued job.
type Handler func(ctx context.Context, job *models.QueueJob) error

// ClampPriority raises p to MinPriority.
func ClampPriority(p int) int {
	if p < MinPriority {
		return MinPriority
	}
	return p
}
