package videofiles

import (
	"context"

	"github.com/google/uuid"
)

type UseCase interface {
	GetSourceDownloadURL(ctx context.Context, videoID uuid.UUID) (string, error)
}
