package videofiles

import (
	"context"
	"time"

	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/google/uuid"
)

type Repository interface {
	GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.VideoFile, error)
	CountVideosUploadedByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}
