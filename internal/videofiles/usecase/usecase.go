package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gnout1912/VieTube-sub001/internal/config"
	"github.com/gnout1912/VieTube-sub001/internal/videofiles"
	"github.com/gnout1912/VieTube-sub001/pkg/logger"
	"github.com/google/uuid"
)

var ErrVideoNotFound = errors.New("video not found")

const defaultPresignExpire = 60 * time.Minute

type videoFileUC struct {
	cfg       *config.Config
	videoRepo videofiles.Repository
	awsRepo   videofiles.AWSRepository
	logger    logger.Logger
}

func NewVideoUseCase(
	cfg *config.Config,
	videoRepo videofiles.Repository,
	awsRepo videofiles.AWSRepository,
	log logger.Logger,
) videofiles.UseCase {
	return &videoFileUC{
		cfg:       cfg,
		videoRepo: videoRepo,
		awsRepo:   awsRepo,
		logger:    log,
	}
}

// GetSourceDownloadURL returns a time-limited URL runners use to fetch the
// uploaded source file of a video.
func (v *videoFileUC) GetSourceDownloadURL(ctx context.Context, videoID uuid.UUID) (string, error) {
	if videoID == uuid.Nil {
		return "", fmt.Errorf("invalid video id: cannot be empty")
	}

	video, err := v.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			v.logger.Warnf("Video not found with ID: %s", videoID.String())
			return "", fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
		}
		v.logger.Errorf("GetSourceDownloadURL - GetVideoByID error: %v", err)
		return "", fmt.Errorf("failed to fetch video: %w", err)
	}

	bucket := video.S3Bucket
	if bucket == "" {
		bucket = v.cfg.S3.InputBucket
	}
	expire := defaultPresignExpire
	if v.cfg.S3.PresignExpire > 0 {
		expire = time.Duration(v.cfg.S3.PresignExpire) * time.Minute
	}

	url, err := v.awsRepo.GetPresignedDownloadURL(ctx, bucket, video.S3Key, expire)
	if err != nil {
		v.logger.Errorf("GetSourceDownloadURL - GetPresignedDownloadURL error: %v", err)
		return "", fmt.Errorf("failed to generate download url: %w", err)
	}
	return url, nil
}
