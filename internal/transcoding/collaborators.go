package transcoding

import (
	"context"

	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/gnout1912/VieTube-sub001/internal/runners"
	"github.com/google/uuid"
)

// QueueStore is the part of the internal job queue the queue backend writes to.
type QueueStore interface {
	Submit(ctx context.Context, job *models.QueueJob) (*models.QueueJob, error)
	SubmitSequentialFlow(ctx context.Context, parent, child *models.QueueJob) (*models.QueueJob, *models.QueueJob, error)
}

// RunnerStore creates runner jobs, optionally depending on an existing one.
type RunnerStore interface {
	Create(ctx context.Context, opts runners.CreateOptions, dependsOn *models.RunnerJob) (*models.RunnerJob, error)
}

// PendingJobAccounting counts outstanding transcode submissions per video.
type PendingJobAccounting interface {
	IncreasePendingJobs(ctx context.Context, videoID string, counter models.JobInfoCounter) (int64, error)
}

// SourceURLProvider hands out the URL runners download the source file from.
type SourceURLProvider interface {
	GetSourceDownloadURL(ctx context.Context, videoID uuid.UUID) (string, error)
}
