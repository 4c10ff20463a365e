package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type RunnerJobType string

const (
	RunnerJobWebVideoTranscoding   RunnerJobType = "vod-web-video-transcoding"
	RunnerJobHLSTranscoding        RunnerJobType = "vod-hls-transcoding"
	RunnerJobAudioMergeTranscoding RunnerJobType = "vod-audio-merge-transcoding"
)

type RunnerJobState string

const (
	RunnerJobPending             RunnerJobState = "pending"
	RunnerJobWaitingForParentJob RunnerJobState = "waiting-for-parent-job"
	RunnerJobProcessing          RunnerJobState = "processing"
	RunnerJobCompleted           RunnerJobState = "completed"
	RunnerJobErrored             RunnerJobState = "errored"
	RunnerJobCancelled           RunnerJobState = "cancelled"
	RunnerJobParentErrored       RunnerJobState = "parent-errored"
	RunnerJobParentCancelled     RunnerJobState = "parent-cancelled"
)

// RunnerJobPayload is the part of a runner job that is sent to the runner.
type RunnerJobPayload struct {
	Input  RunnerJobInput  `json:"input"`
	Output RunnerJobOutput `json:"output"`
}

type RunnerJobInput struct {
	VideoFileURL string `json:"videoFileUrl" validate:"required,url"`
}

type RunnerJobOutput struct {
	Resolution     int  `json:"resolution" validate:"gte=0"`
	FPS            int  `json:"fps" validate:"gte=0"`
	SeparatedAudio bool `json:"separatedAudio,omitempty"`
}

type RunnerJob struct {
	ID                   int64           `json:"id" db:"id"`
	UUID                 uuid.UUID       `json:"uuid" db:"uuid"`
	Type                 RunnerJobType   `json:"type" db:"type"`
	Payload              json.RawMessage `json:"payload" db:"payload"`
	PrivatePayload       json.RawMessage `json:"-" db:"private_payload"`
	Priority             int             `json:"priority" db:"priority"`
	State                RunnerJobState  `json:"state" db:"state"`
	DependsOnRunnerJobID *int64          `json:"depends_on_runner_job_id,omitempty" db:"depends_on_runner_job_id"`
	CreatedAt            time.Time       `json:"created_at" db:"created_at"`
}
