package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gnout1912/VieTube-sub001/internal/config"
	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/gnout1912/VieTube-sub001/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideoRepo struct {
	videos map[uuid.UUID]*models.VideoFile
	err    error
}

func (f *fakeVideoRepo) GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.VideoFile, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.videos[videoID]
	if !ok {
		return nil, fmt.Errorf("failed to get video by id: %w", sql.ErrNoRows)
	}
	return v, nil
}

func (f *fakeVideoRepo) CountVideosUploadedByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	return 0, nil
}

type fakeAWSRepo struct {
	bucket string
	key    string
	expire time.Duration
	err    error
}

func (f *fakeAWSRepo) GetPresignedDownloadURL(ctx context.Context, bucket, key string, expire time.Duration) (string, error) {
	f.bucket, f.key, f.expire = bucket, key, expire
	if f.err != nil {
		return "", f.err
	}
	return "https://s3.example.com/" + bucket + "/" + key, nil
}

func TestGetSourceDownloadURL(t *testing.T) {
	withBucket := &models.VideoFile{VideoID: uuid.New(), S3Key: "a.mp4", S3Bucket: "own-bucket"}
	noBucket := &models.VideoFile{VideoID: uuid.New(), S3Key: "b.mp4"}
	repo := &fakeVideoRepo{videos: map[uuid.UUID]*models.VideoFile{
		withBucket.VideoID: withBucket,
		noBucket.VideoID:   noBucket,
	}}
	awsRepo := &fakeAWSRepo{}
	cfg := &config.Config{S3: config.S3Config{InputBucket: "default-bucket", PresignExpire: 30}}
	uc := NewVideoUseCase(cfg, repo, awsRepo, logger.NewNopLogger())

	url, err := uc.GetSourceDownloadURL(context.Background(), withBucket.VideoID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/own-bucket/a.mp4", url)
	assert.Equal(t, 30*time.Minute, awsRepo.expire)

	url, err = uc.GetSourceDownloadURL(context.Background(), noBucket.VideoID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/default-bucket/b.mp4", url)
}

func TestGetSourceDownloadURL_DefaultExpire(t *testing.T) {
	video := &models.VideoFile{VideoID: uuid.New(), S3Key: "a.mp4", S3Bucket: "b"}
	awsRepo := &fakeAWSRepo{}
	uc := NewVideoUseCase(&config.Config{}, &fakeVideoRepo{videos: map[uuid.UUID]*models.VideoFile{video.VideoID: video}}, awsRepo, logger.NewNopLogger())

	_, err := uc.GetSourceDownloadURL(context.Background(), video.VideoID)
	require.NoError(t, err)
	assert.Equal(t, defaultPresignExpire, awsRepo.expire)
}

func TestGetSourceDownloadURL_Errors(t *testing.T) {
	uc := NewVideoUseCase(&config.Config{}, &fakeVideoRepo{}, &fakeAWSRepo{}, logger.NewNopLogger())

	_, err := uc.GetSourceDownloadURL(context.Background(), uuid.Nil)
	assert.Error(t, err)

	_, err = uc.GetSourceDownloadURL(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrVideoNotFound)

	dbErr := errors.New("connection reset")
	uc = NewVideoUseCase(&config.Config{}, &fakeVideoRepo{err: dbErr}, &fakeAWSRepo{}, logger.NewNopLogger())
	_, err = uc.GetSourceDownloadURL(context.Background(), uuid.New())
	assert.ErrorIs(t, err, dbErr)

	video := &models.VideoFile{VideoID: uuid.New(), S3Key: "a.mp4", S3Bucket: "b"}
	presignErr := errors.New("no credentials")
	uc = NewVideoUseCase(&config.Config{},
		&fakeVideoRepo{videos: map[uuid.UUID]*models.VideoFile{video.VideoID: video}},
		&fakeAWSRepo{err: presignErr},
		logger.NewNopLogger(),
	)
	_, err = uc.GetSourceDownloadURL(context.Background(), video.VideoID)
	assert.ErrorIs(t, err, presignErr)
}
