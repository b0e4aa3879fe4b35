package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/apicall"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
)

// SyncMetrics receives provider call and job run observations.
type SyncMetrics interface {
	ObserveAPICall(provider, callType string, success bool, elapsed time.Duration)
	ObserveSyncRun(job, status string, elapsed time.Duration)
}

type noopSyncMetrics struct{}

func (noopSyncMetrics) ObserveAPICall(string, string, bool, time.Duration) {}
func (noopSyncMetrics) ObserveSyncRun(string, string, time.Duration)       {}

func NewNoopSyncMetrics() SyncMetrics {
	return noopSyncMetrics{}
}

// APICallAuditor appends provider calls to the audit log. Failures to write
// the log are logged and never returned.
type APICallAuditor struct {
	repo    apicall.Repository
	metrics SyncMetrics
	logger  *logging.Logger
	now     func() time.Time
}

func NewAPICallAuditor(repo apicall.Repository, metrics SyncMetrics, logger *logging.Logger) *APICallAuditor {
	if metrics == nil {
		metrics = NewNoopSyncMetrics()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &APICallAuditor{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Record stores one provider call. elapsed is measured by the caller with the
// same clock that timed the call.
func (a *APICallAuditor) Record(ctx context.Context, provider, callType string, competitionID *int64, elapsed time.Duration, callErr error) {
	if a == nil {
		return
	}

	elapsed = max(elapsed, 0)
	success := callErr == nil
	a.metrics.ObserveAPICall(provider, callType, success, elapsed)

	if a.repo == nil {
		return
	}
	err := a.repo.Insert(ctx, apicall.Entry{
		Provider:      provider,
		CallType:      callType,
		CompetitionID: competitionID,
		Success:       success,
		ResponseTime:  elapsed,
		CreatedAt:     a.now().UTC(),
	})
	if err != nil {
		a.logger.WarnContext(ctx, "record api call failed",
			"provider", provider,
			"call_type", callType,
			"error", err,
		)
	}
}
