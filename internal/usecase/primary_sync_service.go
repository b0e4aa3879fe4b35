package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/apicall"
	"github.com/riskibarqy/scoresync/internal/domain/competition"
	"github.com/riskibarqy/scoresync/internal/domain/match"
	"github.com/riskibarqy/scoresync/internal/domain/setting"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
	"github.com/riskibarqy/scoresync/internal/platform/pacing"
)

type PrimarySyncConfig struct {
	CompetitionDelay time.Duration
	StaleThreshold   time.Duration
}

type PrimarySyncInput struct {
	// CompetitionIDs limits the run; empty means every syncable competition.
	CompetitionIDs []int64
}

type CompetitionSyncResult struct {
	CompetitionID   int64  `json:"competition_id"`
	Name            string `json:"name,omitempty"`
	Success         bool   `json:"success"`
	MatchesUpserted int    `json:"matches_upserted"`
	MatchesSkipped  int    `json:"matches_skipped"`
	TotalMatchdays  int    `json:"total_matchdays"`
	Error           string `json:"error,omitempty"`
}

type PrimarySyncResult struct {
	TotalCompetitions    int                     `json:"total_competitions"`
	SuccessCount         int                     `json:"success_count"`
	FailureCount         int                     `json:"failure_count"`
	Competitions         []CompetitionSyncResult `json:"competitions"`
	CompletedTournaments []CompletedTournament   `json:"completed_tournaments"`
	Fallback             *FallbackResult         `json:"fallback,omitempty"`
	Windows              *MatchWindowResult      `json:"windows,omitempty"`
	Errors               []string                `json:"errors,omitempty"`
}

// PrimarySyncService refreshes competitions and their matches from the primary provider.
type PrimarySyncService struct {
	primary         PrimaryProvider
	competitionRepo competition.Repository
	matchRepo       match.Repository
	completion      *TournamentCompletionService
	fallback        *FallbackReconciler
	lastRuns        LastRunStore
	audit           *APICallAuditor
	policy          StalenessPolicy
	sleeper         pacing.Sleeper
	cfg             PrimarySyncConfig
	logger          *logging.Logger
	now             func() time.Time
}

func NewPrimarySyncService(
	primary PrimaryProvider,
	competitionRepo competition.Repository,
	matchRepo match.Repository,
	completion *TournamentCompletionService,
	fallback *FallbackReconciler,
	lastRuns LastRunStore,
	audit *APICallAuditor,
	sleeper pacing.Sleeper,
	cfg PrimarySyncConfig,
	logger *logging.Logger,
) *PrimarySyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if sleeper == nil {
		sleeper = pacing.TimerSleeper{}
	}
	if cfg.CompetitionDelay <= 0 {
		cfg.CompetitionDelay = 12 * time.Second
	}

	return &PrimarySyncService{
		primary:         primary,
		competitionRepo: competitionRepo,
		matchRepo:       matchRepo,
		completion:      completion,
		fallback:        fallback,
		lastRuns:        lastRuns,
		audit:           audit,
		policy:          NewStalenessPolicy(cfg.StaleThreshold),
		sleeper:         sleeper,
		cfg:             cfg,
		logger:          logger.Named("primary_sync"),
		now:             time.Now,
	}
}

// Run processes competitions one after another. Per-competition failures are
// reported in the result; only a missing provider fails the run.
func (s *PrimarySyncService) Run(ctx context.Context, input PrimarySyncInput) (PrimarySyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PrimarySyncService.Run")
	defer span.End()

	if s.primary == nil {
		return PrimarySyncResult{}, fmt.Errorf("%w: primary provider credentials are missing", ErrNotConfigured)
	}

	competitions, missing, err := s.pickCompetitions(ctx, input)
	if err != nil {
		return PrimarySyncResult{}, err
	}

	result := PrimarySyncResult{
		TotalCompetitions: len(competitions) + len(missing),
		Competitions:      make([]CompetitionSyncResult, 0, len(competitions)+len(missing)),
	}
	for _, id := range missing {
		result.FailureCount++
		result.Competitions = append(result.Competitions, CompetitionSyncResult{
			CompetitionID: id,
			Error:         ErrNotFound.Error() + ": competition is not registered",
		})
	}
	for idx, comp := range competitions {
		if idx > 0 {
			if err := s.sleeper.Sleep(ctx, s.cfg.CompetitionDelay); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("pacing interrupted: %v", err))
				break
			}
		}

		item := s.syncCompetition(ctx, comp)
		if item.Success {
			result.SuccessCount++
		} else {
			result.FailureCount++
		}
		result.Competitions = append(result.Competitions, item)
	}

	if s.completion != nil {
		completed, err := s.completion.Evaluate(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "tournament completion check failed", "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("tournament completion: %v", err))
		}
		result.CompletedTournaments = completed
	}

	if s.fallback != nil {
		fallback, err := s.fallback.Run(ctx)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("fallback: %v", err))
		} else {
			result.Fallback = &fallback
		}
	}

	if s.lastRuns != nil {
		if err := s.lastRuns.MarkRun(ctx, setting.KeyPrimaryLastRun, s.now().UTC()); err != nil {
			s.logger.WarnContext(ctx, "update primary last run failed", "error", err)
		}
	}

	s.logger.InfoContext(ctx, "primary sync finished",
		"competitions", result.TotalCompetitions,
		"success", result.SuccessCount,
		"failed", result.FailureCount,
		"completed_tournaments", len(result.CompletedTournaments),
	)
	return result, nil
}

// pickCompetitions returns the competitions to process and the requested ids
// that are not registered locally.
func (s *PrimarySyncService) pickCompetitions(ctx context.Context, input PrimarySyncInput) ([]competition.Competition, []int64, error) {
	today := competition.DateOnly(s.now())
	if len(input.CompetitionIDs) == 0 {
		items, err := s.competitionRepo.ListSyncable(ctx, today)
		if err != nil {
			return nil, nil, fmt.Errorf("list syncable competitions: %w", err)
		}
		return items, nil, nil
	}

	found, err := s.competitionRepo.GetByIDs(ctx, input.CompetitionIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("get competitions: %w", err)
	}
	out := make([]competition.Competition, 0, len(input.CompetitionIDs))
	var missing []int64
	for _, id := range input.CompetitionIDs {
		if item, ok := found[id]; ok {
			out = append(out, item)
			continue
		}
		missing = append(missing, id)
	}
	return out, missing, nil
}

func (s *PrimarySyncService) syncCompetition(ctx context.Context, comp competition.Competition) CompetitionSyncResult {
	result := CompetitionSyncResult{CompetitionID: comp.ID, Name: comp.Name}
	competitionID := comp.ID

	startedAt := s.now()
	meta, err := s.primary.FetchCompetition(ctx, comp.ID)
	s.audit.Record(ctx, apicall.ProviderFootballData, apicall.CallTypeCompetition, &competitionID, s.now().Sub(startedAt), err)
	if err != nil {
		return s.failCompetition(ctx, result, fmt.Errorf("fetch competition: %w", err))
	}
	if meta.Name != "" {
		result.Name = meta.Name
	}

	now := s.now().UTC()
	comp.Code = meta.Code
	comp.Name = result.Name
	comp.Emblem = meta.Emblem
	comp.AreaName = meta.AreaName
	comp.SeasonStart = meta.SeasonStart
	comp.SeasonEnd = meta.SeasonEnd
	comp.CurrentMatchday = meta.CurrentMatchday
	comp.LastUpdatedAt = &now
	if err := s.competitionRepo.UpdateMetadata(ctx, comp); err != nil {
		return s.failCompetition(ctx, result, fmt.Errorf("update competition: %w", err))
	}

	startedAt = s.now()
	fetched, err := s.primary.FetchCompetitionMatches(ctx, comp.ID)
	s.audit.Record(ctx, apicall.ProviderFootballData, apicall.CallTypeMatches, &competitionID, s.now().Sub(startedAt), err)
	if err != nil {
		return s.failCompetition(ctx, result, fmt.Errorf("fetch matches: %w", err))
	}

	result.TotalMatchdays = countMatchdays(fetched)
	if result.TotalMatchdays > 0 {
		if err := s.competitionRepo.UpdateTotalMatchdays(ctx, comp.ID, result.TotalMatchdays); err != nil {
			return s.failCompetition(ctx, result, fmt.Errorf("update total matchdays: %w", err))
		}
	}

	batch, skipped, err := s.buildBatch(ctx, comp.ID, fetched)
	if err != nil {
		return s.failCompetition(ctx, result, err)
	}
	result.MatchesSkipped = skipped
	if len(batch) > 0 {
		if err := s.matchRepo.UpsertMany(ctx, batch); err != nil {
			return s.failCompetition(ctx, result, fmt.Errorf("upsert matches: %w", err))
		}
	}
	result.MatchesUpserted = len(batch)
	result.Success = true

	s.logger.InfoContext(ctx, "competition synced",
		"competition_id", comp.ID,
		"name", result.Name,
		"upserted", result.MatchesUpserted,
		"skipped_stale", result.MatchesSkipped,
		"total_matchdays", result.TotalMatchdays,
	)
	return result
}

// buildBatch maps fetched matches and drops stale snapshots before the upsert.
func (s *PrimarySyncService) buildBatch(ctx context.Context, competitionID int64, fetched []ExternalMatch) ([]match.Match, int, error) {
	if len(fetched) == 0 {
		return nil, 0, nil
	}

	ids := make([]int64, 0, len(fetched))
	for _, ext := range fetched {
		ids = append(ids, ext.ID)
	}
	stored, err := s.matchRepo.GetByExternalIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("load stored matches: %w", err)
	}

	now := s.now().UTC()
	batch := make([]match.Match, 0, len(fetched))
	skipped := 0
	for _, ext := range fetched {
		incoming := mapExternalMatch(ext, competitionID, now)

		var current *match.Match
		if existing, ok := stored[ext.ID]; ok {
			current = &existing
		}
		if !s.policy.ShouldAccept(current, incoming, now) {
			skipped++
			s.logger.DebugContext(ctx, "skip stale snapshot",
				"match_id", ext.ID,
				"status", incoming.Status,
				"stored_status", current.Status,
			)
			continue
		}
		batch = append(batch, incoming)
	}
	return batch, skipped, nil
}

func (s *PrimarySyncService) failCompetition(ctx context.Context, result CompetitionSyncResult, err error) CompetitionSyncResult {
	s.logger.ErrorContext(ctx, "competition sync failed", "competition_id", result.CompetitionID, "error", err)
	result.Success = false
	result.Error = err.Error()
	return result
}
