package transcoding

import (
	"errors"
	"testing"

	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePlan(t *testing.T) {
	tests := []struct {
		name      string
		plan      RenditionPlan
		wantErr   bool
		stage0Len int
	}{
		{name: "single stage", plan: RenditionPlan{{optimize(1080, false)}}},
		{name: "empty later stage", plan: RenditionPlan{{optimize(1080, false)}, {}, {webVideo(720)}}},
		{name: "nil plan", plan: nil, wantErr: true},
		{name: "empty stage 0", plan: RenditionPlan{{}, {webVideo(720)}}, wantErr: true},
		{name: "two parents", plan: RenditionPlan{{optimize(1080, false), webVideo(720)}}, wantErr: true, stage0Len: 2},
		{name: "parent video id not a uuid", plan: RenditionPlan{{models.TranscodingPayload{Type: models.PayloadOptimizeToWebVideo, VideoID: "v1"}}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlan(tt.plan)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var shapeErr *PlanShapeError
			require.True(t, errors.As(err, &shapeErr))
			assert.Equal(t, tt.stage0Len, shapeErr.Stage0Len)
		})
	}
}

func TestRenditionPlanHelpers(t *testing.T) {
	plan := RenditionPlan{{optimize(1080, false)}, {webVideo(720), hls(720)}, {}, {hls(480)}}

	assert.Equal(t, 4, plan.PayloadCount())
	assert.Equal(t, testVideoID, plan.VideoID())
	assert.Equal(t, "", RenditionPlan{}.VideoID())
}

func TestAdjustPriority(t *testing.T) {
	assert.Equal(t, 9, AdjustPriority(10, optimize(1080, true)))
	assert.Equal(t, 10, AdjustPriority(10, optimize(1080, false)))
	assert.Equal(t, 0, AdjustPriority(1, models.TranscodingPayload{HigherPriority: true}))
}
