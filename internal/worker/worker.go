package worker

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gnout1912/VieTube-sub001/internal/config"
	"github.com/gnout1912/VieTube-sub001/internal/jobqueue"
	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/gnout1912/VieTube-sub001/pkg/logger"
)

func NewWorker(cfg *config.Config, logger logger.Logger, store jobqueue.Store) *Worker {
	interval := defaultPollInterval
	if cfg.Worker.PollInterval > 0 {
		interval = time.Duration(cfg.Worker.PollInterval) * time.Second
	}
	return &Worker{
		logger:       logger,
		store:        store,
		cfg:          cfg,
		handlers:     make(map[models.QueueJobType]jobqueue.Handler),
		pollInterval: interval,
		checkCPU:     cpuBelow,
	}
}

// Register binds a handler to a job type. Must be called before Start.
func (w *Worker) Register(jobType models.QueueJobType, h jobqueue.Handler) {
	if _, ok := w.handlers[jobType]; !ok {
		w.jobTypes = append(w.jobTypes, jobType)
		sort.Slice(w.jobTypes, func(i, j int) bool { return w.jobTypes[i] < w.jobTypes[j] })
	}
	w.handlers[jobType] = h
}

func (w *Worker) Start(ctx context.Context) {
	count := w.cfg.Worker.WorkerCount
	if count <= 0 {
		count = 1
	}
	w.logger.Infof("Starting %d workers for %v", count, w.jobTypes)
	for i := range count {
		w.wg.Add(1)
		go w.run(ctx, i)
	}
}

// Wait blocks until every worker goroutine has returned.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context, id int) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("worker %d shutting down", id)
			return
		default:
		}

		if w.cfg.Worker.MaxCPUUsage > 0 {
			if ok, usage := w.checkCPU(ctx, w.cfg.Worker.MaxCPUUsage); !ok {
				w.logger.Infof("CPU usage is high: %f", usage)
				sleep(ctx, cpuBackoff)
				continue
			}
		}

		processed, err := w.ProcessNext(ctx)
		if err != nil {
			w.logger.Errorf("worker %d: %v", id, err)
			sleep(ctx, w.pollInterval)
			continue
		}
		if !processed {
			sleep(ctx, w.pollInterval)
		}
	}
}

// ProcessNext runs at most one job, trying the registered types in name
// order. It reports whether a job was dequeued.
func (w *Worker) ProcessNext(ctx context.Context) (bool, error) {
	for _, jobType := range w.jobTypes {
		job, err := w.store.Dequeue(ctx, jobType)
		if err != nil {
			return false, fmt.Errorf("failed to dequeue %s job: %w", jobType, err)
		}
		if job == nil {
			continue
		}

		w.logger.Infof("Processing job %s (type=%s, priority=%d, attempt=%d)", job.ID, job.Type, job.Priority, job.Attempts)
		if err := w.handlers[jobType](ctx, job); err != nil {
			w.logger.Errorf("Job %s failed: %v", job.ID, err)
			if failErr := w.store.Fail(ctx, job, err); failErr != nil {
				return true, fmt.Errorf("failed to record failure of job %s: %w", job.ID, failErr)
			}
			return true, nil
		}
		if err := w.store.Complete(ctx, job); err != nil {
			return true, fmt.Errorf("failed to complete job %s: %w", job.ID, err)
		}
		w.logger.Infof("Job %s completed successfully", job.ID)
		return true, nil
	}
	return false, nil
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
