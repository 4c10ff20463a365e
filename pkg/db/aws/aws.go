package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/gnout1912/VieTube-sub001/internal/config"
)

// NewAWSClient builds an S3 client plus a presign client for the configured
// endpoint. Path-style addressing keeps S3-compatible stores working.
func NewAWSClient(ctx context.Context, c appConfig.S3Config) (*s3.Client, *s3.PresignClient, error) {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				c.AccessKey,
				c.SecretKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load aws configuration: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		if c.Endpoint != "" {
			o.BaseEndpoint = &c.Endpoint
		}
	})
	return client, s3.NewPresignClient(client), nil
}
