package syncrun

import "time"

type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

const (
	JobPrimarySync  = "primary_sync"
	JobRealtimeSync = "realtime_sync"
	JobFallback     = "fallback"
	JobMatchWindows = "match_windows"
	JobDuration     = "duration_recalculation"
)

// Run is one recorded job execution.
type Run struct {
	JobName        string
	Status         Status
	Message        string
	ItemsProcessed int
	ItemsFailed    int
	Duration       time.Duration
	StartedAt      time.Time
	TraceID        string
	SpanID         string
}

// StatusFor classifies a run from its item counts.
func StatusFor(processed, failed int) Status {
	switch {
	case failed == 0:
		return StatusSuccess
	case processed > failed:
		return StatusPartial
	default:
		return StatusError
	}
}
