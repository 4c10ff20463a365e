package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gnout1912/VieTube-sub001/internal/config"
	"github.com/gnout1912/VieTube-sub001/internal/jobqueue"
	jobqueueRepository "github.com/gnout1912/VieTube-sub001/internal/jobqueue/repository"
	"github.com/gnout1912/VieTube-sub001/internal/priority"
	"github.com/gnout1912/VieTube-sub001/internal/runners"
	"github.com/gnout1912/VieTube-sub001/internal/runners/notify"
	runnerRepository "github.com/gnout1912/VieTube-sub001/internal/runners/repository"
	"github.com/gnout1912/VieTube-sub001/internal/transcoding"
	"github.com/gnout1912/VieTube-sub001/internal/users"
	userRepository "github.com/gnout1912/VieTube-sub001/internal/users/repository"
	videoRepository "github.com/gnout1912/VieTube-sub001/internal/videofiles/repository"
	videoUsecase "github.com/gnout1912/VieTube-sub001/internal/videofiles/usecase"
	"github.com/gnout1912/VieTube-sub001/pkg/db/aws"
	"github.com/gnout1912/VieTube-sub001/pkg/db/postgres"
	clientRedis "github.com/gnout1912/VieTube-sub001/pkg/db/redis"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
)

// services holds the long-lived clients of one process.
type services struct {
	db          *sqlx.DB
	redisClient *redis.Client
	queueStore  jobqueue.Store
	users       users.Repository
	notifier    runners.Notifier
	deps        transcoding.Dependencies
}

func openServices(ctx context.Context, cc *commandContext) (*services, error) {
	cfg := cc.cfg
	s := &services{}

	db, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not connect to db: %w", err)
	}
	s.db = db
	cc.logger.Infof("db connected, status: %#v", db.Stats())

	redisClient, err := clientRedis.NewRedisClient(ctx, cfg)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	s.redisClient = redisClient
	cc.logger.Infof("redis connected")

	videoRepo := videoRepository.NewVideoRepo(db)
	s.users = userRepository.NewUserRepo(db)
	s.deps = transcoding.Dependencies{
		Resolver: priority.NewResolver(videoRepo, cc.logger),
		Logger:   cc.logger,
	}

	switch cfg.Transcoding.Backend {
	case config.BackendQueue:
		s.queueStore = jobqueueRepository.NewQueueRedisRepo(redisClient, cfg.Redis.KeyPrefix)
		s.deps.QueueStore = s.queueStore
		s.deps.JobInfo = videoRepository.NewVideoRedisRepo(redisClient, cfg.Redis.KeyPrefix)
	case config.BackendRunner:
		_, presignClient, err := aws.NewAWSClient(ctx, cfg.S3)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("could not create s3 client: %w", err)
		}
		awsRepo := videoRepository.NewAwsRepository(presignClient)
		s.deps.RunnerStore = runnerRepository.NewRunnerJobRepo(db)
		s.deps.Sources = videoUsecase.NewVideoUseCase(cfg, videoRepo, awsRepo, cc.logger)
		s.notifier = newNotifier(cfg, redisClient)
		s.deps.Notifier = s.notifier
	}
	return s, nil
}

func newNotifier(cfg *config.Config, redisClient *redis.Client) runners.Notifier {
	if cfg.Runner.Notifier == config.NotifierKafka {
		return notify.NewKafkaNotifier(cfg.Runner.KafkaBrokers, cfg.Runner.KafkaTopic)
	}
	return notify.NewRedisNotifier(redisClient, cfg.Runner.Channel)
}

func (s *services) Close() error {
	var errs []error
	if s.notifier != nil {
		errs = append(errs, s.notifier.Close())
	}
	if s.redisClient != nil {
		errs = append(errs, s.redisClient.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}
