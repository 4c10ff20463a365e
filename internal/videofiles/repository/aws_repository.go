package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gnout1912/VieTube-sub001/internal/videofiles"
)

type awsRepository struct {
	preSignClient *s3.PresignClient
}

func NewAwsRepository(preSignClient *s3.PresignClient) videofiles.AWSRepository {
	return &awsRepository{
		preSignClient: preSignClient,
	}
}

func (a *awsRepository) GetPresignedDownloadURL(ctx context.Context, bucket, key string, expire time.Duration) (string, error) {
	req, err := a.preSignClient.PresignGetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		},
		s3.WithPresignExpires(expire),
	)
	if err != nil {
		return "", fmt.Errorf("failed to presign get object: %w", err)
	}
	return req.URL, nil
}
