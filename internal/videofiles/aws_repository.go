package videofiles

import (
	"context"
	"time"
)

type AWSRepository interface {
	GetPresignedDownloadURL(ctx context.Context, bucket, key string, expire time.Duration) (string, error)
}
