package models

import (
	"time"

	"github.com/google/uuid"
)

type VideoStatus string

const (
	VideoStatusUploaded    VideoStatus = "uploaded"
	VideoStatusTranscoding VideoStatus = "transcoding"
	VideoStatusPublished   VideoStatus = "published"
	VideoStatusFailed      VideoStatus = "failed"
)

type VideoFile struct {
	VideoID    uuid.UUID   `json:"video_id" db:"video_id"`
	UserID     uuid.UUID   `json:"user_id" db:"user_id"`
	FileName   string      `json:"file_name" db:"file_name"`
	FileSize   int64       `json:"file_size" db:"file_size"`
	S3Key      string      `json:"s3_key" db:"s3_key"`
	S3Bucket   string      `json:"s3_bucket" db:"s3_bucket"`
	Status     VideoStatus `json:"status" db:"status"`
	UploadedAt time.Time   `json:"uploaded_at" db:"uploaded_at"`
}
