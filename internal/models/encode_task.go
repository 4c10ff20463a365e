package models

import (
	"encoding/json"
	"time"
)

type QueueJobType string

const (
	QueueJobVideoTranscoding      QueueJobType = "video-transcoding"
	QueueJobTranscodingJobBuilder QueueJobType = "transcoding-job-builder"
)

type JobStatus string

const (
	JobStatusWaiting         JobStatus = "waiting"
	JobStatusWaitingChildren JobStatus = "waiting-children"
	JobStatusActive          JobStatus = "active"
	JobStatusCompleted       JobStatus = "completed"
	JobStatusFailed          JobStatus = "failed"
)

// QueueJob is a job held by the internal queue. A job in
// JobStatusWaitingChildren is released once the job named by ParentID
// completes.
type QueueJob struct {
	ID          string          `json:"id"`
	Type        QueueJobType    `json:"type"`
	Priority    int             `json:"priority"`
	Payload     json.RawMessage `json:"payload"`
	Status      JobStatus       `json:"status"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts"`
	ParentID    string          `json:"parent_id,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	FinishedAt  *time.Time      `json:"finished_at,omitempty"`
}

// QueueJobSpec is a transcoding job that has been prioritised but not yet
// submitted. Continuation jobs carry these for the stages they still have to
// create.
type QueueJobSpec struct {
	Type     QueueJobType       `json:"type"`
	Priority int                `json:"priority"`
	Payload  TranscodingPayload `json:"payload"`
}

// JobBuilderPayload is the payload of a transcoding-job-builder job.
type JobBuilderPayload struct {
	VideoID string           `json:"video_id"`
	Stages  [][]QueueJobSpec `json:"stages"`
}
