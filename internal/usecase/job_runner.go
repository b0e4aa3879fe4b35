package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/syncrun"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
)

type PrimarySyncer interface {
	Run(ctx context.Context, input PrimarySyncInput) (PrimarySyncResult, error)
}

type RealtimeSyncer interface {
	Run(ctx context.Context) (RealtimeSyncResult, error)
}

type FallbackRunner interface {
	Run(ctx context.Context) (FallbackResult, error)
}

type MatchWindowGenerator interface {
	Generate(ctx context.Context) (MatchWindowResult, error)
}

type DurationBatchRunner interface {
	RecalculateActive(ctx context.Context, reason string) (DurationBatchResult, error)
}

type runOutcome struct {
	status    syncrun.Status
	message   string
	processed int
	failed    int
}

// JobRunner executes sync jobs for both the scheduler and the internal HTTP
// routes. A job never overlaps itself; different jobs may run concurrently.
type JobRunner struct {
	primary  PrimarySyncer
	realtime RealtimeSyncer
	fallback FallbackRunner
	windows  MatchWindowGenerator
	duration DurationBatchRunner
	runs     *SyncRunService
	logger   *logging.Logger
	now      func() time.Time
	guards   map[string]*atomic.Bool
}

func NewJobRunner(
	primary PrimarySyncer,
	realtime RealtimeSyncer,
	fallback FallbackRunner,
	windows MatchWindowGenerator,
	duration DurationBatchRunner,
	runs *SyncRunService,
	logger *logging.Logger,
) *JobRunner {
	if logger == nil {
		logger = logging.Default()
	}

	guards := make(map[string]*atomic.Bool)
	for _, job := range []string{
		syncrun.JobPrimarySync,
		syncrun.JobRealtimeSync,
		syncrun.JobFallback,
		syncrun.JobMatchWindows,
		syncrun.JobDuration,
	} {
		guards[job] = &atomic.Bool{}
	}

	return &JobRunner{
		primary:  primary,
		realtime: realtime,
		fallback: fallback,
		windows:  windows,
		duration: duration,
		runs:     runs,
		logger:   logger,
		now:      time.Now,
		guards:   guards,
	}
}

// RunPrimarySync runs the primary sync and regenerates the match windows from the fresh calendar.
func (r *JobRunner) RunPrimarySync(ctx context.Context, input PrimarySyncInput) (PrimarySyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobRunner.RunPrimarySync")
	defer span.End()

	result, err := runGuarded(ctx, r, syncrun.JobPrimarySync,
		func(ctx context.Context) (PrimarySyncResult, error) { return r.primary.Run(ctx, input) },
		func(res PrimarySyncResult) runOutcome {
			return runOutcome{
				status:    syncrun.StatusFor(res.TotalCompetitions, res.FailureCount),
				message:   fmt.Sprintf("%d competitions, %d tournaments completed", res.TotalCompetitions, len(res.CompletedTournaments)),
				processed: res.TotalCompetitions,
				failed:    res.FailureCount,
			}
		},
	)
	if err != nil {
		return result, err
	}

	windows, err := r.RunMatchWindows(ctx)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("match windows: %v", err))
		return result, nil
	}
	result.Windows = &windows
	return result, nil
}

func (r *JobRunner) RunRealtimeSync(ctx context.Context) (RealtimeSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobRunner.RunRealtimeSync")
	defer span.End()

	return runGuarded(ctx, r, syncrun.JobRealtimeSync, r.realtime.Run, func(res RealtimeSyncResult) runOutcome {
		if res.ActiveWindows == 0 {
			return runOutcome{status: syncrun.StatusSkipped, message: "no active match windows"}
		}
		processed := res.TotalMatches + len(res.Errors)
		failed := res.FailureCount + len(res.Errors)
		return runOutcome{
			status:    syncrun.StatusFor(processed, failed),
			message:   fmt.Sprintf("%d windows, %d candidates, %d refreshed", res.ActiveWindows, res.Candidates, res.SuccessCount),
			processed: processed,
			failed:    failed,
		}
	})
}

func (r *JobRunner) RunFallback(ctx context.Context) (FallbackResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobRunner.RunFallback")
	defer span.End()

	return runGuarded(ctx, r, syncrun.JobFallback, r.fallback.Run, func(res FallbackResult) runOutcome {
		if res.Skipped {
			return runOutcome{status: syncrun.StatusSkipped, message: res.SkipReason}
		}
		return runOutcome{
			status:    syncrun.StatusFor(res.Checked, len(res.Errors)),
			message:   fmt.Sprintf("%d patched, %d api calls", res.Patched, res.APICalls),
			processed: res.Checked,
			failed:    len(res.Errors),
		}
	})
}

func (r *JobRunner) RunMatchWindows(ctx context.Context) (MatchWindowResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobRunner.RunMatchWindows")
	defer span.End()

	return runGuarded(ctx, r, syncrun.JobMatchWindows, r.windows.Generate, func(res MatchWindowResult) runOutcome {
		return runOutcome{
			status:    syncrun.StatusSuccess,
			message:   fmt.Sprintf("%d windows updated, %d deleted", res.WindowsUpdated, res.WindowsDeleted),
			processed: res.MatchesScanned,
		}
	})
}

// RunDurationRecalculation only guards the batch; the batch records its own run.
func (r *JobRunner) RunDurationRecalculation(ctx context.Context, reason string) (DurationBatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobRunner.RunDurationRecalculation")
	defer span.End()

	release, ok := r.acquire(syncrun.JobDuration)
	if !ok {
		r.recordSkipped(ctx, syncrun.JobDuration)
		return DurationBatchResult{}, fmt.Errorf("%w: %s", ErrJobRunning, syncrun.JobDuration)
	}
	defer release()

	return r.duration.RecalculateActive(ctx, reason)
}

func runGuarded[T any](
	ctx context.Context,
	r *JobRunner,
	job string,
	fn func(context.Context) (T, error),
	outcome func(T) runOutcome,
) (T, error) {
	var zero T

	release, ok := r.acquire(job)
	if !ok {
		r.recordSkipped(ctx, job)
		return zero, fmt.Errorf("%w: %s", ErrJobRunning, job)
	}
	defer release()

	startedAt := r.now()
	result, err := fn(ctx)
	if err != nil {
		r.runs.Record(ctx, syncrun.Run{
			JobName:   job,
			Status:    syncrun.StatusError,
			Message:   err.Error(),
			StartedAt: startedAt,
		})
		return zero, err
	}

	o := outcome(result)
	r.runs.Record(ctx, syncrun.Run{
		JobName:        job,
		Status:         o.status,
		Message:        o.message,
		ItemsProcessed: o.processed,
		ItemsFailed:    o.failed,
		StartedAt:      startedAt,
	})
	return result, nil
}

func (r *JobRunner) acquire(job string) (func(), bool) {
	guard, ok := r.guards[job]
	if !ok {
		guard = &atomic.Bool{}
	}
	if !guard.CompareAndSwap(false, true) {
		return nil, false
	}
	return func() { guard.Store(false) }, true
}

func (r *JobRunner) recordSkipped(ctx context.Context, job string) {
	r.logger.InfoContext(ctx, "job still running, skipping", "job", job)
	r.runs.Record(ctx, syncrun.Run{
		JobName:   job,
		Status:    syncrun.StatusSkipped,
		Message:   "previous run still in progress",
		StartedAt: r.now(),
	})
}
