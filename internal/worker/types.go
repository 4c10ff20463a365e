package worker

import (
	"context"
	"sync"
	"time"

	"github.com/gnout1912/VieTube-sub001/internal/config"
	"github.com/gnout1912/VieTube-sub001/internal/jobqueue"
	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/gnout1912/VieTube-sub001/pkg/logger"
)

const (
	defaultPollInterval = 2 * time.Second
	cpuBackoff          = 10 * time.Second
)

type Worker struct {
	logger       logger.Logger
	store        jobqueue.Store
	cfg          *config.Config
	handlers     map[models.QueueJobType]jobqueue.Handler
	jobTypes     []models.QueueJobType
	pollInterval time.Duration
	checkCPU     func(ctx context.Context, maxCPUUsage float64) (bool, float64)
	wg           sync.WaitGroup
}
