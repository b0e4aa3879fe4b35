package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/apicall"
	"github.com/riskibarqy/scoresync/internal/domain/match"
	"github.com/riskibarqy/scoresync/internal/domain/matchwindow"
	"github.com/riskibarqy/scoresync/internal/domain/setting"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
	"github.com/riskibarqy/scoresync/internal/platform/pacing"
)

type RealtimeSyncConfig struct {
	MarginBeforeKickoff time.Duration
	MarginAfterKickoff  time.Duration
	FreshnessWindow     time.Duration
	LiveDelay           time.Duration
	DefaultDelay        time.Duration
}

type RealtimeMatchResult struct {
	MatchID   int64  `json:"match_id"`
	Success   bool   `json:"success"`
	Status    string `json:"status,omitempty"`
	HomeScore *int   `json:"home_score,omitempty"`
	AwayScore *int   `json:"away_score,omitempty"`
	Error     string `json:"error,omitempty"`
}

type RealtimeSyncResult struct {
	ActiveWindows int                   `json:"active_windows"`
	Candidates    int                   `json:"candidates"`
	Skipped       int                   `json:"skipped"`
	TotalMatches  int                   `json:"total_matches"`
	SuccessCount  int                   `json:"success_count"`
	FailureCount  int                   `json:"failure_count"`
	Results       []RealtimeMatchResult `json:"results"`
	Errors        []string              `json:"errors,omitempty"`
}

// RealtimeSyncService refreshes imminent and in-play matches inside active windows.
type RealtimeSyncService struct {
	primary    PrimaryProvider
	windowRepo matchwindow.Repository
	matchRepo  match.Repository
	lastRuns   LastRunStore
	audit      *APICallAuditor
	sleeper    pacing.Sleeper
	cfg        RealtimeSyncConfig
	logger     *logging.Logger
	now        func() time.Time
}

func NewRealtimeSyncService(
	primary PrimaryProvider,
	windowRepo matchwindow.Repository,
	matchRepo match.Repository,
	lastRuns LastRunStore,
	audit *APICallAuditor,
	sleeper pacing.Sleeper,
	cfg RealtimeSyncConfig,
	logger *logging.Logger,
) *RealtimeSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if sleeper == nil {
		sleeper = pacing.TimerSleeper{}
	}
	if cfg.MarginBeforeKickoff <= 0 {
		cfg.MarginBeforeKickoff = 10 * time.Minute
	}
	if cfg.MarginAfterKickoff <= 0 {
		cfg.MarginAfterKickoff = 3 * time.Hour
	}
	if cfg.FreshnessWindow <= 0 {
		cfg.FreshnessWindow = 3 * time.Minute
	}
	if cfg.LiveDelay <= 0 {
		cfg.LiveDelay = 3 * time.Second
	}
	if cfg.DefaultDelay <= 0 {
		cfg.DefaultDelay = 6 * time.Second
	}

	return &RealtimeSyncService{
		primary:    primary,
		windowRepo: windowRepo,
		matchRepo:  matchRepo,
		lastRuns:   lastRuns,
		audit:      audit,
		sleeper:    sleeper,
		cfg:        cfg,
		logger:     logger.Named("realtime_sync"),
		now:        time.Now,
	}
}

func (s *RealtimeSyncService) Run(ctx context.Context) (RealtimeSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RealtimeSyncService.Run")
	defer span.End()

	if s.primary == nil {
		return RealtimeSyncResult{}, fmt.Errorf("%w: primary provider credentials are missing", ErrNotConfigured)
	}

	now := s.now().UTC()
	windows, err := s.windowRepo.ListActive(ctx, now)
	if err != nil {
		return RealtimeSyncResult{}, fmt.Errorf("list active match windows: %w", err)
	}

	result := RealtimeSyncResult{ActiveWindows: len(windows), Results: []RealtimeMatchResult{}}
	if len(windows) == 0 {
		s.logger.DebugContext(ctx, "no active match windows")
		return result, nil
	}

	selected := make([]match.Match, 0)
	seen := make(map[int64]struct{})
	for _, window := range windows {
		day := window.MatchDate.UTC()
		candidates, err := s.matchRepo.ListByCompetitionRange(ctx, window.CompetitionID,
			match.Range{From: day, To: day.AddDate(0, 0, 1)},
			[]match.Status{match.StatusTimed, match.StatusInPlay, match.StatusPaused},
		)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("competition %d: list window matches: %v", window.CompetitionID, err))
			continue
		}

		for _, candidate := range candidates {
			if _, dup := seen[candidate.ExternalID]; dup {
				continue
			}
			seen[candidate.ExternalID] = struct{}{}
			result.Candidates++
			if !s.shouldRefresh(candidate, now) {
				result.Skipped++
				continue
			}
			selected = append(selected, candidate)
		}
	}
	result.TotalMatches = len(selected)

	for idx, item := range selected {
		if idx > 0 {
			delay := s.cfg.DefaultDelay
			if match.IsLive(item.Status) {
				delay = s.cfg.LiveDelay
			}
			if err := s.sleeper.Sleep(ctx, delay); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("pacing interrupted: %v", err))
				break
			}
		}

		outcome := s.refresh(ctx, item)
		if outcome.Success {
			result.SuccessCount++
		} else {
			result.FailureCount++
		}
		result.Results = append(result.Results, outcome)
	}

	if s.lastRuns != nil {
		if err := s.lastRuns.MarkRun(ctx, setting.KeyRealtimeLastRun, now); err != nil {
			s.logger.WarnContext(ctx, "update realtime last run failed", "error", err)
		}
	}

	s.logger.InfoContext(ctx, "realtime sync finished",
		"windows", result.ActiveWindows,
		"candidates", result.Candidates,
		"updated", result.SuccessCount,
		"failed", result.FailureCount,
	)
	return result, nil
}

// shouldRefresh keeps live matches and timed matches near kickoff that were not refreshed recently.
func (s *RealtimeSyncService) shouldRefresh(item match.Match, now time.Time) bool {
	if match.IsLive(item.Status) {
		return true
	}
	if item.Status != match.StatusTimed || item.KickoffAt == nil {
		return false
	}

	sinceKickoff := now.Sub(*item.KickoffAt)
	if sinceKickoff < -s.cfg.MarginBeforeKickoff || sinceKickoff > s.cfg.MarginAfterKickoff {
		return false
	}
	if !item.LastUpdatedAt.IsZero() && now.Sub(item.LastUpdatedAt) < s.cfg.FreshnessWindow {
		return false
	}
	return true
}

func (s *RealtimeSyncService) refresh(ctx context.Context, item match.Match) RealtimeMatchResult {
	out := RealtimeMatchResult{MatchID: item.ExternalID}
	competitionID := item.CompetitionID

	startedAt := s.now()
	ext, err := s.primary.FetchMatch(ctx, item.ExternalID)
	s.audit.Record(ctx, apicall.ProviderFootballData, apicall.CallTypeMatch, &competitionID, s.now().Sub(startedAt), err)
	if err != nil {
		out.Error = fmt.Sprintf("fetch match: %v", err)
		s.logger.WarnContext(ctx, "fetch match failed", "match_id", item.ExternalID, "error", err)
		return out
	}

	update := liveScoreUpdate(ext, s.now().UTC())
	update.ExternalID = item.ExternalID
	if err := s.matchRepo.ApplyScoreUpdate(ctx, update); err != nil {
		out.Error = fmt.Sprintf("update match: %v", err)
		s.logger.ErrorContext(ctx, "update match failed", "match_id", item.ExternalID, "error", err)
		return out
	}

	out.Success = true
	out.Status = string(update.Status)
	out.HomeScore = update.HomeScore
	out.AwayScore = update.AwayScore
	return out
}
