package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/setting"
	settingmock "github.com/riskibarqy/scoresync/internal/mocks/domain/setting"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestSettingsService_LoadOverlaysStoredValues(t *testing.T) {
	t.Parallel()

	repo := settingmock.NewRepository(t)
	repo.On("GetMany", mock.Anything, mock.Anything).Return(map[string]string{
		setting.KeyDailySyncEnabled:   "false",
		setting.KeyDailySyncHour:      "4",
		setting.KeyRealtimeInterval:   "5",
		setting.KeyWindowMarginBefore: "15m",
		setting.KeyWindowMarginAfter:  "not-a-duration",
	}, nil).Once()

	svc := NewSettingsService(repo, DefaultSyncSettings(), logging.NewNop())
	got, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if got.DailySyncEnabled || got.DailySyncHour != 4 {
		t.Fatalf("unexpected daily settings: %+v", got)
	}
	if got.RealtimeInterval != 5*time.Minute || got.WindowMarginBefore != 15*time.Minute || got.WindowMarginAfter != 3*time.Hour {
		t.Fatalf("unexpected durations: %+v", got)
	}
	if !got.RealtimeEnabled {
		t.Fatalf("expected realtime default to stay enabled")
	}
}

func TestSettingsService_LoadFallsBackOnInvalidRange(t *testing.T) {
	t.Parallel()

	repo := settingmock.NewRepository(t)
	repo.On("GetMany", mock.Anything, mock.Anything).Return(map[string]string{setting.KeyDailySyncHour: "31"}, nil).Once()

	svc := NewSettingsService(repo, DefaultSyncSettings(), logging.NewNop())
	got, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if got != DefaultSyncSettings() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestSettingsService_SaveValidates(t *testing.T) {
	t.Parallel()

	repo := settingmock.NewRepository(t)
	svc := NewSettingsService(repo, DefaultSyncSettings(), logging.NewNop())

	invalid := DefaultSyncSettings()
	invalid.RealtimeInterval = time.Second
	if _, err := svc.Save(context.Background(), invalid); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	repo.On("Upsert", mock.Anything, setting.KeyDailySyncHour, "7").Return(nil).Once()
	repo.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(5)
	valid := DefaultSyncSettings()
	valid.DailySyncHour = 7
	if _, err := svc.Save(context.Background(), valid); err != nil {
		t.Fatalf("save settings: %v", err)
	}
}

func TestSettingsService_LastRunRoundTrip(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 10, 16, 8, 30, 15, 123000000, time.UTC)
	repo := settingmock.NewRepository(t)
	repo.On("Upsert", mock.Anything, setting.KeyFallbackLastRun, "2026-10-16T08:30:15.123Z").Return(nil).Once()
	repo.On("Get", mock.Anything, setting.KeyFallbackLastRun).Return("2026-10-16T08:30:15.123Z", true, nil).Once()
	repo.On("Get", mock.Anything, setting.KeyRealtimeLastRun).Return("", false, nil).Once()

	svc := NewSettingsService(repo, DefaultSyncSettings(), logging.NewNop())
	if err := svc.MarkRun(context.Background(), setting.KeyFallbackLastRun, at); err != nil {
		t.Fatalf("mark run: %v", err)
	}
	got, err := svc.LastRun(context.Background(), setting.KeyFallbackLastRun)
	if err != nil {
		t.Fatalf("last run: %v", err)
	}
	if got == nil || !got.Equal(at) {
		t.Fatalf("unexpected last run: got=%v want=%v", got, at)
	}
	missing, err := svc.LastRun(context.Background(), setting.KeyRealtimeLastRun)
	if err != nil || missing != nil {
		t.Fatalf("expected no last run, got=%v err=%v", missing, err)
	}
}
