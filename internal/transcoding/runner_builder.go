package transcoding

import (
	"context"
	"fmt"

	"github.com/gnout1912/VieTube-sub001/internal/config"
	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/gnout1912/VieTube-sub001/internal/priority"
	"github.com/gnout1912/VieTube-sub001/internal/runners"
	"github.com/gnout1912/VieTube-sub001/pkg/logger"
)

// RunnerJobBuilder submits a plan as runner jobs. Runner jobs reference their
// predecessor directly, so the whole graph is created up front.
type RunnerJobBuilder struct {
	assembler
	store    RunnerStore
	sources  SourceURLProvider
	notifier runners.Notifier
}

func NewRunnerJobBuilder(
	cfg config.TranscodingConfig,
	resolver priority.Resolver,
	store RunnerStore,
	sources SourceURLProvider,
	notifier runners.Notifier,
	log logger.Logger,
) *RunnerJobBuilder {
	return &RunnerJobBuilder{
		assembler: newAssembler(resolver, cfg.JobClass, cfg.FallbackPriority, log),
		store:     store,
		sources:   sources,
		notifier:  notifier,
	}
}

func (b *RunnerJobBuilder) CreateJobs(ctx context.Context, plan RenditionPlan, actor *models.User) error {
	graph, err := b.prepare(ctx, plan, actor)
	if err != nil {
		b.logger.Errorf("CreateJobs - prepare error: %v", err)
		return err
	}

	inputURL, err := b.sources.GetSourceDownloadURL(ctx, graph.videoUUID)
	if err != nil {
		b.logger.Errorf("CreateJobs - GetSourceDownloadURL error: %v", err)
		return &BackendSubmissionError{Op: "resolve input file url", Err: err}
	}

	create := func(p models.TranscodingPayload, dependsOn *models.RunnerJob) (*models.RunnerJob, error) {
		job, err := b.store.Create(ctx, runnerJobOptions(p, graph.basePriority, inputURL), dependsOn)
		if err != nil {
			return nil, &BackendSubmissionError{Op: fmt.Sprintf("create %s runner job", p.Type), Err: err}
		}
		return job, nil
	}

	cursor, err := create(graph.parent, nil)
	if err != nil {
		b.logger.Errorf("CreateJobs - create parent error: %v", err)
		return err
	}
	created := 1
	for _, stage := range graph.stages {
		cursor, err = chainStage(stage, cursor, create)
		if err != nil {
			b.logger.Errorf("CreateJobs - chainStage error: %v", err)
			return err
		}
		created += len(stage)
	}

	b.logger.Infof("Created %d runner jobs for video %s (base priority=%d)", created, graph.videoID, graph.basePriority)

	if b.notifier != nil {
		if err := b.notifier.NotifyAvailableJobs(ctx); err != nil {
			b.logger.Warnf("CreateJobs - NotifyAvailableJobs error: %v", err)
		}
	}
	return nil
}

// chainStage creates the jobs of one stage and returns the job the next stage
// hangs off. Every job depends on the job created just before it, so siblings
// of a stage run one after another starting from entry rather than all
// branching from entry. Creation is sequential because a job's predecessor
// must exist first.
func chainStage(
	stage Stage,
	entry *models.RunnerJob,
	create func(models.TranscodingPayload, *models.RunnerJob) (*models.RunnerJob, error),
) (*models.RunnerJob, error) {
	cursor := entry
	for _, p := range stage {
		job, err := create(p, cursor)
		if err != nil {
			return nil, err
		}
		cursor = job
	}
	return cursor, nil
}

func runnerJobOptions(p models.TranscodingPayload, base int, inputURL string) runners.CreateOptions {
	return runners.CreateOptions{
		Type: runnerJobType(p.Type),
		Payload: models.RunnerJobPayload{
			Input: models.RunnerJobInput{VideoFileURL: inputURL},
			Output: models.RunnerJobOutput{
				Resolution:     p.Resolution,
				FPS:            p.FPS,
				SeparatedAudio: p.SeparatedAudio,
			},
		},
		PrivatePayload: p,
		Priority:       runners.ClampPriority(AdjustPriority(base, p)),
	}
}

func runnerJobType(t models.TranscodingPayloadType) models.RunnerJobType {
	switch t {
	case models.PayloadMergeAudioToWebVideo:
		return models.RunnerJobAudioMergeTranscoding
	case models.PayloadNewResolutionToHLS:
		return models.RunnerJobHLSTranscoding
	default:
		return models.RunnerJobWebVideoTranscoding
	}
}
