package transcoding

import (
	"context"
	"errors"
	"fmt"

	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/gnout1912/VieTube-sub001/internal/priority"
	"github.com/gnout1912/VieTube-sub001/pkg/logger"
	"github.com/google/uuid"
)

// GraphSubmitter turns a rendition plan into backend jobs. CreateJobs returns
// once every job has been submitted; it never waits for execution.
type GraphSubmitter interface {
	CreateJobs(ctx context.Context, plan RenditionPlan, actor *models.User) error
}

// assembler holds the logic both backends share: plan shape checks and
// priority resolution.
type assembler struct {
	resolver priority.Resolver
	jobClass priority.JobClass
	fallback *int
	logger   logger.Logger
}

type preparedGraph struct {
	videoID      string
	videoUUID    uuid.UUID
	parent       models.TranscodingPayload
	stages       []Stage
	basePriority int
}

func newAssembler(resolver priority.Resolver, jobClass string, fallback *int, log logger.Logger) assembler {
	class := priority.JobClass(jobClass)
	if class == "" {
		class = priority.ClassVOD
	}
	return assembler{
		resolver: resolver,
		jobClass: class,
		fallback: fallback,
		logger:   log,
	}
}

// prepare validates plan, resolves the base priority once and splits off the
// parent payload. Empty later stages are dropped. The caller's plan is not
// modified.
func (a *assembler) prepare(ctx context.Context, plan RenditionPlan, actor *models.User) (*preparedGraph, error) {
	if err := ValidatePlan(plan); err != nil {
		return nil, err
	}

	base, err := a.resolver.Resolve(ctx, actor, a.jobClass, a.fallback)
	if err != nil {
		if !errors.Is(err, ErrPriorityResolution) {
			err = fmt.Errorf("%w: %v", ErrPriorityResolution, err)
		}
		return nil, fmt.Errorf("video %s: %w", plan.VideoID(), err)
	}

	stages := make([]Stage, 0, len(plan)-1)
	for _, stage := range plan[1:] {
		if len(stage) == 0 {
			continue
		}
		stages = append(stages, append(Stage(nil), stage...))
	}

	parent := plan[0][0]
	parent.HasChildren = hasPayloads(stages)

	return &preparedGraph{
		videoID:      parent.VideoID,
		videoUUID:    uuid.MustParse(parent.VideoID),
		parent:       parent,
		stages:       stages,
		basePriority: base,
	}, nil
}

// AdjustPriority applies the payload's own urgency offset to base.
func AdjustPriority(base int, p models.TranscodingPayload) int {
	if p.HigherPriority {
		return base - 1
	}
	return base
}
