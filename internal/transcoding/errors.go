package transcoding

import (
	"errors"
	"fmt"

	"github.com/gnout1912/VieTube-sub001/internal/priority"
)

// ErrPriorityResolution is returned, wrapped, when no base priority could be
// resolved and no fallback was configured.
var ErrPriorityResolution = priority.ErrPriorityResolution

var (
	ErrUnknownBackend  = errors.New("unknown transcoding backend")
	ErrInvalidFallback = errors.New("invalid fallback priority")
)

// PlanShapeError reports a malformed rendition plan. It is returned before any
// collaborator is called.
type PlanShapeError struct {
	Reason    string
	Stage0Len int
}

func (e *PlanShapeError) Error() string {
	if e.Stage0Len > 0 {
		return fmt.Sprintf("invalid rendition plan: %s (got %d)", e.Reason, e.Stage0Len)
	}
	return "invalid rendition plan: " + e.Reason
}

// BackendSubmissionError wraps a store rejection. Jobs created before the
// failing call are left in place.
type BackendSubmissionError struct {
	Op  string
	Err error
}

func (e *BackendSubmissionError) Error() string {
	return fmt.Sprintf("backend submission failed during %s: %v", e.Op, e.Err)
}

func (e *BackendSubmissionError) Unwrap() error {
	return e.Err
}
