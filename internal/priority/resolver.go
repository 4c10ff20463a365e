package priority

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/gnout1912/VieTube-sub001/internal/videofiles"
	"github.com/gnout1912/VieTube-sub001/pkg/logger"
)

type JobClass string

const (
	ClassVOD    JobClass = "vod"
	ClassStudio JobClass = "studio"
)

// Base priorities per job class. Lower runs sooner.
var basePriorities = map[JobClass]int{
	ClassVOD:    100,
	ClassStudio: 150,
}

const uploadWindow = 7 * 24 * time.Hour

var ErrPriorityResolution = errors.New("could not resolve job priority")

// Resolver computes the base priority of a job graph for an actor.
type Resolver interface {
	Resolve(ctx context.Context, actor *models.User, class JobClass, fallback *int) (int, error)
}

type uploadCountResolver struct {
	videoRepo videofiles.Repository
	logger    logger.Logger
	now       func() time.Time
}

// NewResolver returns a Resolver that pushes back actors who uploaded a lot
// recently: every video uploaded in the last week adds one to the class base.
func NewResolver(videoRepo videofiles.Repository, log logger.Logger) Resolver {
	return &uploadCountResolver{
		videoRepo: videoRepo,
		logger:    log,
		now:       time.Now,
	}
}

func (r *uploadCountResolver) Resolve(ctx context.Context, actor *models.User, class JobClass, fallback *int) (int, error) {
	base, ok := basePriorities[class]
	if !ok {
		if fallback != nil {
			return *fallback, nil
		}
		return 0, fmt.Errorf("%w: unknown job class %q", ErrPriorityResolution, class)
	}

	if actor == nil {
		if fallback != nil {
			return *fallback, nil
		}
		return 0, fmt.Errorf("%w: no actor", ErrPriorityResolution)
	}

	count, err := r.videoRepo.CountVideosUploadedByUserSince(ctx, actor.UserID, r.now().Add(-uploadWindow))
	if err != nil {
		if fallback != nil {
			r.logger.Warnf("Resolve - CountVideosUploadedByUserSince error, using fallback %d: %v", *fallback, err)
			return *fallback, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrPriorityResolution, err)
	}

	return base + count, nil
}
