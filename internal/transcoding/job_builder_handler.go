package transcoding

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gnout1912/VieTube-sub001/internal/jobqueue"
	"github.com/gnout1912/VieTube-sub001/internal/models"
)

// NewJobBuilderHandler returns the queue handler for transcoding-job-builder
// jobs.
func NewJobBuilderHandler(b *QueueJobBuilder) jobqueue.Handler {
	return func(ctx context.Context, job *models.QueueJob) error {
		var payload models.JobBuilderPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode job builder payload of job %s: %w", job.ID, err)
		}
		return b.ResumeJobs(ctx, payload)
	}
}
