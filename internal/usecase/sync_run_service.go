package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/syncrun"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
	"go.opentelemetry.io/otel/trace"
)

const defaultRecentRunsLimit = 50

// SyncRunService keeps the operational log of job runs.
type SyncRunService struct {
	repo    syncrun.Repository
	metrics SyncMetrics
	logger  *logging.Logger
	now     func() time.Time
}

func NewSyncRunService(repo syncrun.Repository, metrics SyncMetrics, logger *logging.Logger) *SyncRunService {
	if metrics == nil {
		metrics = NewNoopSyncMetrics()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SyncRunService{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Record stores a finished run. Storage errors are logged only.
func (s *SyncRunService) Record(ctx context.Context, run syncrun.Run) {
	if s == nil {
		return
	}
	if run.Duration == 0 && !run.StartedAt.IsZero() {
		run.Duration = s.now().Sub(run.StartedAt)
	}
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		run.TraceID = spanCtx.TraceID().String()
		run.SpanID = spanCtx.SpanID().String()
	}
	s.metrics.ObserveSyncRun(run.JobName, string(run.Status), run.Duration)

	s.logger.InfoContext(ctx, "job run finished",
		"job", run.JobName,
		"status", run.Status,
		"items_processed", run.ItemsProcessed,
		"items_failed", run.ItemsFailed,
		"duration_ms", run.Duration.Milliseconds(),
		"message", run.Message,
	)
	if s.repo == nil {
		return
	}
	if err := s.repo.Insert(ctx, run); err != nil {
		s.logger.WarnContext(ctx, "record job run failed", "job", run.JobName, "error", err)
	}
}

func (s *SyncRunService) ListRecent(ctx context.Context, jobName string, limit int) ([]syncrun.Run, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncRunService.ListRecent")
	defer span.End()

	if limit <= 0 || limit > 500 {
		limit = defaultRecentRunsLimit
	}
	runs, err := s.repo.ListRecent(ctx, strings.TrimSpace(jobName), limit)
	if err != nil {
		return nil, fmt.Errorf("list recent runs: %w", err)
	}
	return runs, nil
}
