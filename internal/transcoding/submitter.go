package transcoding

import (
	"errors"
	"fmt"

	"github.com/gnout1912/VieTube-sub001/internal/config"
	"github.com/gnout1912/VieTube-sub001/internal/jobqueue"
	"github.com/gnout1912/VieTube-sub001/internal/priority"
	"github.com/gnout1912/VieTube-sub001/internal/runners"
	"github.com/gnout1912/VieTube-sub001/pkg/logger"
)

// Dependencies are the collaborators a submitter may need. Only the ones used
// by the selected backend have to be set.
type Dependencies struct {
	Resolver    priority.Resolver
	QueueStore  QueueStore
	JobInfo     PendingJobAccounting
	RunnerStore RunnerStore
	Sources     SourceURLProvider
	Notifier    runners.Notifier
	Logger      logger.Logger
}

// NewSubmitter returns the GraphSubmitter for cfg.Backend.
func NewSubmitter(cfg config.TranscodingConfig, deps Dependencies) (GraphSubmitter, error) {
	if deps.Resolver == nil {
		return nil, errors.New("priority resolver is required")
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}

	switch cfg.Backend {
	case config.BackendQueue:
		if err := checkFallback(cfg.FallbackPriority, jobqueue.MinPriority); err != nil {
			return nil, err
		}
		if deps.QueueStore == nil || deps.JobInfo == nil {
			return nil, errors.New("queue backend needs a queue store and job info repository")
		}
		return NewQueueJobBuilder(cfg, deps.Resolver, deps.QueueStore, deps.JobInfo, deps.Logger), nil
	case config.BackendRunner:
		if err := checkFallback(cfg.FallbackPriority, runners.MinPriority); err != nil {
			return nil, err
		}
		if deps.RunnerStore == nil || deps.Sources == nil {
			return nil, errors.New("runner backend needs a runner job store and source url provider")
		}
		return NewRunnerJobBuilder(cfg, deps.Resolver, deps.RunnerStore, deps.Sources, deps.Notifier, deps.Logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// checkFallback rejects a fallback base the backend would have to clamp when
// it is made more urgent.
func checkFallback(fallback *int, minPriority int) error {
	if fallback != nil && *fallback <= minPriority {
		return fmt.Errorf("%w: fallback priority %d must be greater than %d", ErrInvalidFallback, *fallback, minPriority)
	}
	return nil
}
