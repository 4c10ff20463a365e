package videofiles

import (
	"context"

	"github.com/gnout1912/VieTube-sub001/internal/models"
)

// RedisRepository keeps the per-video pending job counters. Increments and
// decrements are atomic so concurrent submissions for one video are safe.
type RedisRepository interface {
	IncreasePendingJobs(ctx context.Context, videoID string, counter models.JobInfoCounter) (int64, error)
	DecreasePendingJobs(ctx context.Context, videoID string, counter models.JobInfoCounter) (int64, error)
	GetPendingJobs(ctx context.Context, videoID string, counter models.JobInfoCounter) (int64, error)
}
