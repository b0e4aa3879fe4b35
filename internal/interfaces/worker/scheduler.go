package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/riskibarqy/scoresync/internal/platform/logging"
	"github.com/riskibarqy/scoresync/internal/usecase"
)

const (
	windowsSpec        = "@hourly"
	settingsReloadSpec = "@every 5m"
	stopTimeout        = 30 * time.Second
)

// Jobs is the subset of the job runner the scheduler triggers.
type Jobs interface {
	RunPrimarySync(ctx context.Context, input usecase.PrimarySyncInput) (usecase.PrimarySyncResult, error)
	RunRealtimeSync(ctx context.Context) (usecase.RealtimeSyncResult, error)
	RunMatchWindows(ctx context.Context) (usecase.MatchWindowResult, error)
	RunDurationRecalculation(ctx context.Context, reason string) (usecase.DurationBatchResult, error)
}

type SettingsLoader interface {
	Load(ctx context.Context) (usecase.SyncSettings, error)
}

type scheduledJob struct {
	name string
	spec string
	run  func()
}

// Scheduler drives the sync jobs from cron entries. The daily and realtime
// entries follow the stored settings and are rebuilt when they change.
type Scheduler struct {
	jobs     Jobs
	settings SettingsLoader
	logger   *logging.Logger
	cron     *cron.Cron

	mu      sync.Mutex
	baseCtx context.Context
	current usecase.SyncSettings
	dynamic []cron.EntryID
}

func NewScheduler(jobs Jobs, settings SettingsLoader, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Scheduler{
		jobs:     jobs,
		settings: settings,
		logger:   logger,
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cronLogger{logger: logger})),
		),
		baseCtx: context.Background(),
	}
}

// Run starts the scheduler and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	s.baseCtx = ctx
	s.mu.Unlock()

	if _, err := s.cron.AddFunc(windowsSpec, s.runMatchWindows); err != nil {
		return fmt.Errorf("schedule match windows: %w", err)
	}
	if _, err := s.cron.AddFunc(settingsReloadSpec, s.reload); err != nil {
		return fmt.Errorf("schedule settings reload: %w", err)
	}

	settings, err := s.settings.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "load settings failed, scheduling with defaults", "error", err)
	}
	if settings.Validate() != nil {
		settings = usecase.DefaultSyncSettings()
	}
	if err := s.apply(settings); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.InfoContext(ctx, "scheduler started",
		"daily_enabled", settings.DailySyncEnabled,
		"daily_hour", settings.DailySyncHour,
		"realtime_enabled", settings.RealtimeEnabled,
		"realtime_interval", settings.RealtimeInterval.String(),
	)
	return nil
}

// Stop waits for running jobs, up to a bounded timeout.
func (s *Scheduler) Stop() {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
		s.logger.Info("scheduler stopped")
	case <-time.After(stopTimeout):
		s.logger.Warn("scheduler stop timed out with jobs still running")
	}
}

func (s *Scheduler) apply(settings usecase.SyncSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.dynamic {
		s.cron.Remove(id)
	}
	s.dynamic = s.dynamic[:0]

	for _, job := range s.settingsJobs(settings) {
		id, err := s.cron.AddFunc(job.spec, job.run)
		if err != nil {
			return fmt.Errorf("schedule %s (%s): %w", job.name, job.spec, err)
		}
		s.dynamic = append(s.dynamic, id)
	}
	s.current = settings
	return nil
}

func (s *Scheduler) settingsJobs(settings usecase.SyncSettings) []scheduledJob {
	var out []scheduledJob
	if settings.DailySyncEnabled {
		out = append(out, scheduledJob{name: "daily_sync", spec: dailySpec(settings.DailySyncHour), run: s.runDaily})
	}
	if settings.RealtimeEnabled {
		out = append(out, scheduledJob{name: "realtime_sync", spec: realtimeSpec(settings.RealtimeInterval), run: s.runRealtime})
	}
	return out
}

func dailySpec(hour int) string {
	return fmt.Sprintf("0 %d * * *", hour)
}

func realtimeSpec(interval time.Duration) string {
	return "@every " + interval.String()
}

func (s *Scheduler) reload() {
	ctx := s.context()
	settings, err := s.settings.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "reload settings failed, keeping current schedule", "error", err)
		return
	}

	s.mu.Lock()
	unchanged := settings == s.current
	s.mu.Unlock()
	if unchanged {
		return
	}

	if err := s.apply(settings); err != nil {
		s.logger.ErrorContext(ctx, "reschedule failed", "error", err)
		return
	}
	s.logger.InfoContext(ctx, "schedule updated from settings",
		"daily_enabled", settings.DailySyncEnabled,
		"daily_hour", settings.DailySyncHour,
		"realtime_enabled", settings.RealtimeEnabled,
		"realtime_interval", settings.RealtimeInterval.String(),
	)
}

func (s *Scheduler) runDaily() {
	ctx := s.context()

	result, err := s.jobs.RunPrimarySync(ctx, usecase.PrimarySyncInput{})
	if err != nil {
		s.logJobError(ctx, "primary_sync", err)
	} else {
		s.logger.InfoContext(ctx, "daily primary sync finished",
			"competitions", result.TotalCompetitions,
			"failed", result.FailureCount,
			"errors", len(result.Errors),
		)
	}

	batch, err := s.jobs.RunDurationRecalculation(ctx, "daily_sync")
	if err != nil {
		s.logJobError(ctx, "duration_recalculation", err)
		return
	}
	s.logger.InfoContext(ctx, "duration recalculation finished",
		"tournaments", batch.Total,
		"updated", batch.SuccessCount,
		"failed", batch.FailureCount,
	)
}

func (s *Scheduler) runRealtime() {
	ctx := s.context()
	result, err := s.jobs.RunRealtimeSync(ctx)
	if err != nil {
		s.logJobError(ctx, "realtime_sync", err)
		return
	}
	if result.ActiveWindows > 0 {
		s.logger.InfoContext(ctx, "realtime sync finished",
			"windows", result.ActiveWindows,
			"refreshed", result.SuccessCount,
			"failed", result.FailureCount,
		)
	}
}

func (s *Scheduler) runMatchWindows() {
	ctx := s.context()
	result, err := s.jobs.RunMatchWindows(ctx)
	if err != nil {
		s.logJobError(ctx, "match_windows", err)
		return
	}
	s.logger.DebugContext(ctx, "match windows regenerated",
		"updated", result.WindowsUpdated,
		"deleted", result.WindowsDeleted,
	)
}

func (s *Scheduler) logJobError(ctx context.Context, job string, err error) {
	switch {
	case errors.Is(err, usecase.ErrJobRunning):
		s.logger.InfoContext(ctx, "job skipped, previous run in progress", "job", job)
	case errors.Is(err, usecase.ErrNotConfigured):
		s.logger.WarnContext(ctx, "job not configured", "job", job, "error", err)
	default:
		s.logger.ErrorContext(ctx, "job failed", "job", job, "error", err)
	}
}

func (s *Scheduler) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseCtx
}

// cronLogger adapts the zap wrapper to cron.Logger.
type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
