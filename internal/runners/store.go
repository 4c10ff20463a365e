package runners

import (
	"context"

	"github.com/gnout1912/VieTube-sub001/internal/models"
)

// MinPriority is the most urgent priority a runner job can carry.
const MinPriority = 0

type CreateOptions struct {
	Type           models.RunnerJobType `validate:"required,oneof=vod-web-video-transcoding vod-hls-transcoding vod-audio-merge-transcoding"`
	Payload        models.RunnerJobPayload
	PrivatePayload models.TranscodingPayload `validate:"-"`
	Priority       int                       `validate:"gte=0"`
}

// Store persists runner jobs. A job created with a dependency starts in
// waiting-for-parent-job and is only offered to runners once its parent
// completes.
type Store interface {
	Create(ctx context.Context, opts CreateOptions, dependsOn *models.RunnerJob) (*models.RunnerJob, error)
	GetByUUID(ctx context.Context, jobUUID string) (*models.RunnerJob, error)
}

// Notifier tells connected runners that new jobs can be requested.
type Notifier interface {
	NotifyAvailableJobs(ctx context.Context) error
	Close() error
}

// ClampPriority raises p to MinPriority.
func ClampPriority(p int) int {
	if p < MinPriority {
		return MinPriority
	}
	return p
}
