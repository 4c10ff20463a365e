package transcoding

import "github.com/gnout1912/VieTube-sub001/internal/models"

type OptimizeOptions struct {
	VideoID        string
	Resolution     int
	FPS            int
	IsNewVideo     bool
	HigherPriority bool
}

type MergeAudioOptions struct {
	VideoID           string
	Resolution        int
	FPS               int
	IsNewVideo        bool
	DeleteInputFileID *int64
	HigherPriority    bool
}

type WebVideoOptions struct {
	VideoID        string
	Resolution     int
	FPS            int
	IsNewVideo     bool
	HigherPriority bool
}

type HLSOptions struct {
	VideoID             string
	Resolution          int
	FPS                 int
	IsNewVideo          bool
	SeparatedAudio      bool
	CopyCodecs          bool
	DeleteWebVideoFiles bool
	HigherPriority      bool
}

func NewOptimizePayload(o OptimizeOptions) models.TranscodingPayload {
	return models.TranscodingPayload{
		Type:           models.PayloadOptimizeToWebVideo,
		VideoID:        o.VideoID,
		Resolution:     o.Resolution,
		FPS:            o.FPS,
		IsNewVideo:     o.IsNewVideo,
		HigherPriority: o.HigherPriority,
	}
}

func NewMergeAudioPayload(o MergeAudioOptions) models.TranscodingPayload {
	var deleteInput *int64
	if o.DeleteInputFileID != nil {
		id := *o.DeleteInputFileID
		deleteInput = &id
	}
	return models.TranscodingPayload{
		Type:              models.PayloadMergeAudioToWebVideo,
		VideoID:           o.VideoID,
		Resolution:        o.Resolution,
		FPS:               o.FPS,
		IsNewVideo:        o.IsNewVideo,
		DeleteInputFileID: deleteInput,
		HigherPriority:    o.HigherPriority,
	}
}

func NewWebVideoPayload(o WebVideoOptions) models.TranscodingPayload {
	return models.TranscodingPayload{
		Type:           models.PayloadNewResolutionToWebVideo,
		VideoID:        o.VideoID,
		Resolution:     o.Resolution,
		FPS:            o.FPS,
		IsNewVideo:     o.IsNewVideo,
		HigherPriority: o.HigherPriority,
	}
}

func NewHLSPayload(o HLSOptions) models.TranscodingPayload {
	return models.TranscodingPayload{
		Type:                models.PayloadNewResolutionToHLS,
		VideoID:             o.VideoID,
		Resolution:          o.Resolution,
		FPS:                 o.FPS,
		IsNewVideo:          o.IsNewVideo,
		SeparatedAudio:      o.SeparatedAudio,
		CopyCodecs:          o.CopyCodecs,
		DeleteWebVideoFiles: o.DeleteWebVideoFiles,
		HigherPriority:      o.HigherPriority,
	}
}
