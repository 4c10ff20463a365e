package transcoding

import (
	"fmt"

	"github.com/gnout1912/VieTube-sub001/internal/models"
	"github.com/google/uuid"
)

// Stage is a set of payloads that all depend on the previous stage.
type Stage []models.TranscodingPayload

// RenditionPlan is the ordered list of stages for one video. Stage 0 holds
// exactly the parent payload.
type RenditionPlan []Stage

// ValidatePlan checks the shape of a top-level plan and that its parent names
// a video by UUID.
func ValidatePlan(plan RenditionPlan) error {
	switch {
	case len(plan) == 0:
		return &PlanShapeError{Reason: "plan has no stages"}
	case len(plan[0]) == 0:
		return &PlanShapeError{Reason: "stage 0 has no parent payload"}
	case len(plan[0]) > 1:
		return &PlanShapeError{Reason: "stage 0 must contain exactly one payload", Stage0Len: len(plan[0])}
	}
	if _, err := uuid.Parse(plan[0][0].VideoID); err != nil {
		return &PlanShapeError{Reason: fmt.Sprintf("invalid video id %q", plan[0][0].VideoID)}
	}
	return nil
}

// PayloadCount is the number of payloads across all stages.
func (p RenditionPlan) PayloadCount() int {
	n := 0
	for _, stage := range p {
		n += len(stage)
	}
	return n
}

// VideoID returns the video of the parent payload.
func (p RenditionPlan) VideoID() string {
	if len(p) == 0 || len(p[0]) == 0 {
		return ""
	}
	return p[0][0].VideoID
}

func hasPayloads(stages []Stage) bool {
	for _, stage := range stages {
		if len(stage) > 0 {
			return true
		}
	}
	return false
}
