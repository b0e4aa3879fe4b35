package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/setting"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
)

// SyncSettings are the schedule knobs an operator may change at runtime.
type SyncSettings struct {
	DailySyncEnabled   bool
	DailySyncHour      int
	RealtimeEnabled    bool
	RealtimeInterval   time.Duration
	WindowMarginBefore time.Duration
	WindowMarginAfter  time.Duration
}

func DefaultSyncSettings() SyncSettings {
	return SyncSettings{
		DailySyncEnabled:   true,
		DailySyncHour:      6,
		RealtimeEnabled:    true,
		RealtimeInterval:   2 * time.Minute,
		WindowMarginBefore: 5 * time.Minute,
		WindowMarginAfter:  3 * time.Hour,
	}
}

func (s SyncSettings) Validate() error {
	if s.DailySyncHour < 0 || s.DailySyncHour > 23 {
		return fmt.Errorf("%w: daily sync hour must be within 0..23", ErrInvalidInput)
	}
	if s.RealtimeInterval < 30*time.Second || s.RealtimeInterval > time.Hour {
		return fmt.Errorf("%w: realtime interval must be within 30s..1h", ErrInvalidInput)
	}
	if s.WindowMarginBefore < 0 || s.WindowMarginBefore > 6*time.Hour {
		return fmt.Errorf("%w: window margin before must be within 0..6h", ErrInvalidInput)
	}
	if s.WindowMarginAfter < 0 || s.WindowMarginAfter > 6*time.Hour {
		return fmt.Errorf("%w: window margin after must be within 0..6h", ErrInvalidInput)
	}
	return nil
}

// LastRunStore persists one "last run" timestamp per mechanism.
type LastRunStore interface {
	LastRun(ctx context.Context, key string) (*time.Time, error)
	MarkRun(ctx context.Context, key string, at time.Time) error
}

// SettingsService reads and writes persisted settings over typed defaults.
type SettingsService struct {
	repo     setting.Repository
	defaults SyncSettings
	logger   *logging.Logger
}

func NewSettingsService(repo setting.Repository, defaults SyncSettings, logger *logging.Logger) *SettingsService {
	if logger == nil {
		logger = logging.Default()
	}
	if defaults.Validate() != nil {
		defaults = DefaultSyncSettings()
	}
	return &SettingsService{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
	}
}

// Load overlays stored values on the defaults. On storage failure it returns
// the defaults together with the error.
func (s *SettingsService) Load(ctx context.Context) (SyncSettings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.Load")
	defer span.End()

	out := s.defaults
	stored, err := s.repo.GetMany(ctx, []string{
		setting.KeyDailySyncEnabled,
		setting.KeyDailySyncHour,
		setting.KeyRealtimeEnabled,
		setting.KeyRealtimeInterval,
		setting.KeyWindowMarginBefore,
		setting.KeyWindowMarginAfter,
	})
	if err != nil {
		return out, fmt.Errorf("load settings: %w", err)
	}

	s.overlayBool(ctx, stored, setting.KeyDailySyncEnabled, &out.DailySyncEnabled)
	s.overlayInt(ctx, stored, setting.KeyDailySyncHour, &out.DailySyncHour)
	s.overlayBool(ctx, stored, setting.KeyRealtimeEnabled, &out.RealtimeEnabled)
	s.overlayDuration(ctx, stored, setting.KeyRealtimeInterval, &out.RealtimeInterval)
	s.overlayDuration(ctx, stored, setting.KeyWindowMarginBefore, &out.WindowMarginBefore)
	s.overlayDuration(ctx, stored, setting.KeyWindowMarginAfter, &out.WindowMarginAfter)

	if err := out.Validate(); err != nil {
		s.logger.WarnContext(ctx, "stored settings out of range, using defaults", "error", err)
		return s.defaults, nil
	}
	return out, nil
}

func (s *SettingsService) Save(ctx context.Context, in SyncSettings) (SyncSettings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.Save")
	defer span.End()

	if err := in.Validate(); err != nil {
		return SyncSettings{}, err
	}

	values := []struct {
		key   string
		value string
	}{
		{setting.KeyDailySyncEnabled, strconv.FormatBool(in.DailySyncEnabled)},
		{setting.KeyDailySyncHour, strconv.Itoa(in.DailySyncHour)},
		{setting.KeyRealtimeEnabled, strconv.FormatBool(in.RealtimeEnabled)},
		{setting.KeyRealtimeInterval, in.RealtimeInterval.String()},
		{setting.KeyWindowMarginBefore, in.WindowMarginBefore.String()},
		{setting.KeyWindowMarginAfter, in.WindowMarginAfter.String()},
	}
	for _, item := range values {
		if err := s.repo.Upsert(ctx, item.key, item.value); err != nil {
			return SyncSettings{}, fmt.Errorf("save setting %s: %w", item.key, err)
		}
	}
	return in, nil
}

func (s *SettingsService) LastRun(ctx context.Context, key string) (*time.Time, error) {
	raw, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	at, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		s.logger.WarnContext(ctx, "ignore unparseable last run", "key", key, "value", raw)
		return nil, nil
	}
	return &at, nil
}

func (s *SettingsService) MarkRun(ctx context.Context, key string, at time.Time) error {
	if err := s.repo.Upsert(ctx, key, at.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SettingsService) overlayBool(ctx context.Context, stored map[string]string, key string, dst *bool) {
	raw, ok := stored[key]
	if !ok {
		return
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		s.logger.WarnContext(ctx, "ignore invalid setting", "key", key, "value", raw)
		return
	}
	*dst = v
}

func (s *SettingsService) overlayInt(ctx context.Context, stored map[string]string, key string, dst *int) {
	raw, ok := stored[key]
	if !ok {
		return
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		s.logger.WarnContext(ctx, "ignore invalid setting", "key", key, "value", raw)
		return
	}
	*dst = v
}

// overlayDuration accepts Go durations ("2m") and bare integers as minutes.
func (s *SettingsService) overlayDuration(ctx context.Context, stored map[string]string, key string, dst *time.Duration) {
	raw, ok := stored[key]
	if !ok {
		return
	}
	value := strings.TrimSpace(raw)
	if minutes, err := strconv.Atoi(value); err == nil {
		*dst = time.Duration(minutes) * time.Minute
		return
	}
	v, err := time.ParseDuration(value)
	if err != nil {
		s.logger.WarnContext(ctx, "ignore invalid setting", "key", key, "value", raw)
		return
	}
	*dst = v
}
