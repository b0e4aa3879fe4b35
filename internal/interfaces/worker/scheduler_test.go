package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/riskibarqy/scoresync/internal/platform/logging"
	"github.com/riskibarqy/scoresync/internal/usecase"
)

type jobsStub struct {
	mu    sync.Mutex
	calls []string

	primaryErr error
}

func (s *jobsStub) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *jobsStub) RunPrimarySync(context.Context, usecase.PrimarySyncInput) (usecase.PrimarySyncResult, error) {
	s.record("primary_sync")
	return usecase.PrimarySyncResult{TotalCompetitions: 2, SuccessCount: 2}, s.primaryErr
}

func (s *jobsStub) RunRealtimeSync(context.Context) (usecase.RealtimeSyncResult, error) {
	s.record("realtime_sync")
	return usecase.RealtimeSyncResult{}, nil
}

func (s *jobsStub) RunMatchWindows(context.Context) (usecase.MatchWindowResult, error) {
	s.record("match_windows")
	return usecase.MatchWindowResult{}, nil
}

func (s *jobsStub) RunDurationRecalculation(_ context.Context, reason string) (usecase.DurationBatchResult, error) {
	s.record("duration:" + reason)
	return usecase.DurationBatchResult{}, nil
}

type settingsStub struct {
	mu       sync.Mutex
	settings usecase.SyncSettings
	err      error
}

func (s *settingsStub) Load(context.Context) (usecase.SyncSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings, s.err
}

func (s *settingsStub) set(settings usecase.SyncSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

func TestDailySpecFiresAtConfiguredHourUTC(t *testing.T) {
	t.Parallel()

	schedule, err := cron.ParseStandard(dailySpec(6))
	if err != nil {
		t.Fatalf("parse daily spec: %v", err)
	}
	from := time.Date(2026, 10, 16, 5, 30, 0, 0, time.UTC)
	want := time.Date(2026, 10, 16, 6, 0, 0, 0, time.UTC)
	if got := schedule.Next(from); !got.Equal(want) {
		t.Fatalf("unexpected next run: got=%s want=%s", got, want)
	}
}

func TestRealtimeSpecUsesInterval(t *testing.T) {
	t.Parallel()

	spec := realtimeSpec(2 * time.Minute)
	if spec != "@every 2m0s" {
		t.Fatalf("unexpected realtime spec: %q", spec)
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		t.Fatalf("parse realtime spec: %v", err)
	}
	from := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	if got := schedule.Next(from); !got.Equal(from.Add(2 * time.Minute)) {
		t.Fatalf("unexpected next realtime run: %s", got)
	}
}

func TestScheduler_SettingsJobsFollowFlags(t *testing.T) {
	t.Parallel()

	s := NewScheduler(&jobsStub{}, &settingsStub{}, logging.NewNop())

	settings := usecase.DefaultSyncSettings()
	jobs := s.settingsJobs(settings)
	if len(jobs) != 2 || jobs[0].spec != "0 6 * * *" || jobs[1].spec != "@every 2m0s" {
		t.Fatalf("unexpected jobs for defaults: %+v", jobs)
	}

	settings.RealtimeEnabled = false
	jobs = s.settingsJobs(settings)
	if len(jobs) != 1 || jobs[0].name != "daily_sync" {
		t.Fatalf("realtime must not be scheduled when disabled: %+v", jobs)
	}

	settings.DailySyncEnabled = false
	if jobs := s.settingsJobs(settings); len(jobs) != 0 {
		t.Fatalf("expected no settings jobs, got %+v", jobs)
	}
}

func TestScheduler_ReloadReschedulesOnChange(t *testing.T) {
	t.Parallel()

	settings := &settingsStub{settings: usecase.DefaultSyncSettings()}
	s := NewScheduler(&jobsStub{}, settings, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start scheduler: %v", err)
	}
	defer s.Stop()

	// windows + reload + daily + realtime
	if got := len(s.cron.Entries()); got != 4 {
		t.Fatalf("unexpected entry count after start: %d", got)
	}

	changed := usecase.DefaultSyncSettings()
	changed.RealtimeEnabled = false
	changed.DailySyncHour = 7
	settings.set(changed)
	s.reload()

	if got := len(s.cron.Entries()); got != 3 {
		t.Fatalf("unexpected entry count after reload: %d", got)
	}
	if s.current != changed {
		t.Fatalf("current settings not updated: %+v", s.current)
	}

	s.reload()
	if got := len(s.cron.Entries()); got != 3 {
		t.Fatalf("unchanged settings must keep entries, got %d", got)
	}
}

func TestScheduler_StartFallsBackToDefaultsOnLoadError(t *testing.T) {
	t.Parallel()

	settings := &settingsStub{err: errors.New("db down")}
	s := NewScheduler(&jobsStub{}, settings, logging.NewNop())

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start scheduler: %v", err)
	}
	defer s.Stop()

	if s.current != usecase.DefaultSyncSettings() {
		t.Fatalf("expected default settings, got %+v", s.current)
	}
}

func TestScheduler_DailyRunsPrimaryThenDuration(t *testing.T) {
	t.Parallel()

	jobs := &jobsStub{primaryErr: usecase.ErrJobRunning}
	s := NewScheduler(jobs, &settingsStub{}, logging.NewNop())

	s.runDaily()

	want := []string{"primary_sync", "duration:daily_sync"}
	if len(jobs.calls) != len(want) {
		t.Fatalf("unexpected calls: %v", jobs.calls)
	}
	for i := range want {
		if jobs.calls[i] != want[i] {
			t.Fatalf("unexpected call order: got=%v want=%v", jobs.calls, want)
		}
	}
}

func TestScheduler_RunStopsWithContext(t *testing.T) {
	t.Parallel()

	s := NewScheduler(&jobsStub{}, &settingsStub{settings: usecase.DefaultSyncSettings()}, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}
