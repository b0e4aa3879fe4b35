package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/competition"
	"github.com/riskibarqy/scoresync/internal/domain/match"
	"github.com/riskibarqy/scoresync/internal/domain/matchwindow"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
)

// SettingsLoader returns the current schedule settings.
type SettingsLoader interface {
	Load(ctx context.Context) (SyncSettings, error)
}

type MatchWindowResult struct {
	MatchesScanned int `json:"matches_scanned"`
	WindowsUpdated int `json:"windows_updated"`
	WindowsDeleted int `json:"windows_deleted"`
}

// MatchWindowService rebuilds the realtime windows from the stored calendar.
type MatchWindowService struct {
	matchRepo  match.Repository
	windowRepo matchwindow.Repository
	settings   SettingsLoader
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchWindowService(
	matchRepo match.Repository,
	windowRepo matchwindow.Repository,
	settings SettingsLoader,
	logger *logging.Logger,
) *MatchWindowService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchWindowService{
		matchRepo:  matchRepo,
		windowRepo: windowRepo,
		settings:   settings,
		logger:     logger.Named("match_windows"),
		now:        time.Now,
	}
}

func (s *MatchWindowService) Generate(ctx context.Context) (MatchWindowResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchWindowService.Generate")
	defer span.End()

	settings := DefaultSyncSettings()
	if s.settings != nil {
		loaded, err := s.settings.Load(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "load settings failed, using defaults", "error", err)
		}
		settings = loaded
	}

	now := s.now().UTC()
	upcoming, err := s.matchRepo.ListUpcoming(ctx, match.Range{
		From: now.AddDate(0, 0, -1),
		To:   now.AddDate(0, 0, 7),
	})
	if err != nil {
		return MatchWindowResult{}, fmt.Errorf("list upcoming matches: %w", err)
	}

	windows := buildMatchWindows(upcoming, settings.WindowMarginBefore, settings.WindowMarginAfter)
	if err := s.windowRepo.UpsertMany(ctx, windows); err != nil {
		return MatchWindowResult{}, fmt.Errorf("upsert match windows: %w", err)
	}

	deleted, err := s.windowRepo.DeleteEndedBefore(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return MatchWindowResult{}, fmt.Errorf("delete ended match windows: %w", err)
	}

	result := MatchWindowResult{
		MatchesScanned: len(upcoming),
		WindowsUpdated: len(windows),
		WindowsDeleted: deleted,
	}
	s.logger.InfoContext(ctx, "match windows generated",
		"matches", result.MatchesScanned,
		"windows", result.WindowsUpdated,
		"deleted", result.WindowsDeleted,
	)
	return result, nil
}

// buildMatchWindows groups dated, unfinished matches per competition and UTC day.
func buildMatchWindows(matches []match.Match, before, after time.Duration) []matchwindow.Window {
	type key struct {
		competitionID int64
		day           time.Time
	}
	byKey := make(map[key]*matchwindow.Window)
	for _, item := range matches {
		if item.KickoffAt == nil || match.IsFinished(item.Status) {
			continue
		}
		kickoff := item.KickoffAt.UTC()
		k := key{competitionID: item.CompetitionID, day: competition.DateOnly(kickoff)}

		window, ok := byKey[k]
		if !ok {
			byKey[k] = &matchwindow.Window{
				CompetitionID: k.competitionID,
				MatchDate:     k.day,
				Start:         kickoff.Add(-before),
				End:           kickoff.Add(after),
				MatchCount:    1,
			}
			continue
		}
		if start := kickoff.Add(-before); start.Before(window.Start) {
			window.Start = start
		}
		if end := kickoff.Add(after); end.After(window.End) {
			window.End = end
		}
		window.MatchCount++
	}

	out := make([]matchwindow.Window, 0, len(byKey))
	for _, window := range byKey {
		out = append(out, *window)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MatchDate.Equal(out[j].MatchDate) {
			return out[i].MatchDate.Before(out[j].MatchDate)
		}
		return out[i].CompetitionID < out[j].CompetitionID
	})
	return out
}
