package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/gnout1912/VieTube-sub001/internal/videofiles"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type videoRepo struct {
	db *sqlx.DB
}

func NewVideoRepo(db *sqlx.DB) videofiles.Repository {
	return &videoRepo{
		db: db,
	}
}

func (v *videoRepo) GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.VideoFile, error) {
	video := &models.VideoFile{}
	if err := v.db.QueryRowxContext(
		ctx,
		v.db.Rebind(getVideoByIDQuery),
		videoID,
	).StructScan(video); err != nil {
		return nil, fmt.Errorf("failed to get video by id: %w", err)
	}
	return video, nil
}

func (v *videoRepo) CountVideosUploadedByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var count int
	if err := v.db.GetContext(
		ctx,
		&count,
		v.db.Rebind(countVideosByUserSinceQuery),
		userID,
		since.UTC(),
	); err != nil {
		return 0, fmt.Errorf("failed to count videos uploaded by user: %w", err)
	}
	return count, nil
}
