package transcoding

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gnout1912/VieTube-sub001/internal/config"
	"github.com/gnout1912/VieTube-sub001/internal/jobqueue"
	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/gnout1912/VieTube-sub001/internal/priority"
	"github.com/gnout1912/VieTube-sub001/pkg/logger"
)

// QueueJobBuilder submits a plan to the internal job queue. The queue can
// only run one job after another, so each submission is one hop: the next
// transcoding job followed by a transcoding-job-builder job that carries the
// stages still to be created.
type QueueJobBuilder struct {
	assembler
	store       QueueStore
	jobInfo     PendingJobAccounting
	maxAttempts int
}

func NewQueueJobBuilder(
	cfg config.TranscodingConfig,
	resolver priority.Resolver,
	store QueueStore,
	jobInfo PendingJobAccounting,
	log logger.Logger,
) *QueueJobBuilder {
	return &QueueJobBuilder{
		assembler:   newAssembler(resolver, cfg.JobClass, cfg.FallbackPriority, log),
		store:       store,
		jobInfo:     jobInfo,
		maxAttempts: cfg.MaxAttempts,
	}
}

func (b *QueueJobBuilder) CreateJobs(ctx context.Context, plan RenditionPlan, actor *models.User) error {
	graph, err := b.prepare(ctx, plan, actor)
	if err != nil {
		b.logger.Errorf("CreateJobs - prepare error: %v", err)
		return err
	}

	parent := b.buildSpec(graph.parent, graph.basePriority)
	stages := make([][]models.QueueJobSpec, 0, len(graph.stages))
	for _, stage := range graph.stages {
		specs := make([]models.QueueJobSpec, 0, len(stage))
		for _, p := range stage {
			specs = append(specs, b.buildSpec(p, graph.basePriority))
		}
		stages = append(stages, specs)
	}

	if err := b.submitHop(ctx, graph.videoID, parent, stages); err != nil {
		b.logger.Errorf("CreateJobs - submitHop error: %v", err)
		return err
	}

	if _, err := b.jobInfo.IncreasePendingJobs(ctx, graph.videoID, models.PendingTranscode); err != nil {
		b.logger.Errorf("CreateJobs - IncreasePendingJobs error: %v", err)
		return &BackendSubmissionError{Op: "increase pending transcode", Err: err}
	}

	b.logger.Infof("Created transcoding jobs for video %s (payloads=%d, base priority=%d)",
		graph.videoID,
		plan.PayloadCount(),
		graph.basePriority,
	)
	return nil
}

// ResumeJobs is run by the transcoding-job-builder job once the previous hop
// finished. Priorities were fixed at the top-level submission and the pending
// count was already taken, so neither is touched here.
func (b *QueueJobBuilder) ResumeJobs(ctx context.Context, payload models.JobBuilderPayload) error {
	parent, rest, ok := splitLeadingStage(payload.Stages)
	if !ok {
		b.logger.Infof("No remaining transcoding stages for video %s", payload.VideoID)
		return nil
	}
	if err := b.submitHop(ctx, payload.VideoID, parent, rest); err != nil {
		b.logger.Errorf("ResumeJobs - submitHop error: %v", err)
		return err
	}
	return nil
}

func (b *QueueJobBuilder) buildSpec(p models.TranscodingPayload, base int) models.QueueJobSpec {
	return models.QueueJobSpec{
		Type:     models.QueueJobVideoTranscoding,
		Priority: jobqueue.ClampPriority(AdjustPriority(base, p)),
		Payload:  p,
	}
}

func (b *QueueJobBuilder) submitHop(ctx context.Context, videoID string, parent models.QueueJobSpec, remaining [][]models.QueueJobSpec) error {
	// A hop followed by a continuation is not the video's last transcoding job.
	parent.Payload.HasChildren = len(remaining) > 0

	parentJob, err := b.newQueueJob(parent.Type, parent.Priority, parent.Payload)
	if err != nil {
		return err
	}

	if len(remaining) == 0 {
		if _, err := b.store.Submit(ctx, parentJob); err != nil {
			return &BackendSubmissionError{Op: "submit transcoding job", Err: err}
		}
		return nil
	}

	continuation, err := b.newQueueJob(
		models.QueueJobTranscodingJobBuilder,
		remaining[0][0].Priority,
		models.JobBuilderPayload{VideoID: videoID, Stages: remaining},
	)
	if err != nil {
		return err
	}

	if _, _, err := b.store.SubmitSequentialFlow(ctx, parentJob, continuation); err != nil {
		return &BackendSubmissionError{Op: "submit sequential job flow", Err: err}
	}
	return nil
}

func (b *QueueJobBuilder) newQueueJob(jobType models.QueueJobType, prio int, payload interface{}) (*models.QueueJob, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", jobType, err)
	}
	return &models.QueueJob{
		Type:        jobType,
		Priority:    prio,
		Payload:     data,
		MaxAttempts: b.maxAttempts,
	}, nil
}

// splitLeadingStage takes the next hop's parent off the remaining stages.
// When the leading stage has several payloads the others become a stage of
// their own right after it, so siblings are chained one hop at a time.
func splitLeadingStage(stages [][]models.QueueJobSpec) (models.QueueJobSpec, [][]models.QueueJobSpec, bool) {
	for i, stage := range stages {
		if len(stage) == 0 {
			continue
		}
		rest := make([][]models.QueueJobSpec, 0, len(stages)-i)
		if len(stage) > 1 {
			rest = append(rest, stage[1:])
		}
		for _, s := range stages[i+1:] {
			if len(s) > 0 {
				rest = append(rest, s)
			}
		}
		return stage[0], rest, true
	}
	return models.QueueJobSpec{}, nil, false
}
