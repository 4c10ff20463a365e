package models

type TranscodingPayloadType string

const (
	PayloadOptimizeToWebVideo      TranscodingPayloadType = "optimize-to-web-video"
	PayloadMergeAudioToWebVideo    TranscodingPayloadType = "merge-audio-to-web-video"
	PayloadNewResolutionToWebVideo TranscodingPayloadType = "new-resolution-to-web-video"
	PayloadNewResolutionToHLS      TranscodingPayloadType = "new-resolution-to-hls"
)

// TranscodingPayload describes one rendition job. Type selects which of the
// optional flags are meaningful.
type TranscodingPayload struct {
	Type                TranscodingPayloadType `json:"type"`
	VideoID             string                 `json:"video_id"`
	Resolution          int                    `json:"resolution"`
	FPS                 int                    `json:"fps"`
	IsNewVideo          bool                   `json:"is_new_video"`
	HasChildren         bool                   `json:"has_children,omitempty"`
	SeparatedAudio      bool                   `json:"separated_audio,omitempty"`
	CopyCodecs          bool                   `json:"copy_codecs,omitempty"`
	DeleteWebVideoFiles bool                   `json:"delete_web_video_files,omitempty"`
	DeleteInputFileID   *int64                 `json:"delete_input_file_id,omitempty"`
	HigherPriority      bool                   `json:"higher_priority,omitempty"`
}

// JobInfoCounter names a per-video pending counter.
type JobInfoCounter string

const (
	PendingTranscode JobInfoCounter = "pendingTranscode"
	PendingMove      JobInfoCounter = "pendingMove"
)
