package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/competition"
	"github.com/riskibarqy/scoresync/internal/domain/tournament"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
)

type CompletedTournament struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TournamentCompletionService moves active tournaments past their ending date to completed.
type TournamentCompletionService struct {
	tournamentRepo  tournament.Repository
	competitionRepo competition.Repository
	logger          *logging.Logger
	now             func() time.Time
}

func NewTournamentCompletionService(
	tournamentRepo tournament.Repository,
	competitionRepo competition.Repository,
	logger *logging.Logger,
) *TournamentCompletionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TournamentCompletionService{
		tournamentRepo:  tournamentRepo,
		competitionRepo: competitionRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// Evaluate completes custom and fixed-length tournaments on their ending date.
// Whole-season tournaments on a standard competition also wait for the season end.
func (s *TournamentCompletionService) Evaluate(ctx context.Context) ([]CompletedTournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentCompletionService.Evaluate")
	defer span.End()

	now := s.now().UTC()
	candidates, err := s.tournamentRepo.ListActiveEndedBefore(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("list tournaments to complete: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	s.logger.InfoContext(ctx, "checking tournaments for completion", "count", len(candidates))

	competitions, err := s.loadSeasonCompetitions(ctx, candidates)
	if err != nil {
		return nil, err
	}

	completed := make([]CompletedTournament, 0, len(candidates))
	for _, item := range candidates {
		if !s.eligible(ctx, item, competitions, now) {
			continue
		}
		if err := s.tournamentRepo.MarkCompleted(ctx, item.ID, now); err != nil {
			s.logger.ErrorContext(ctx, "complete tournament failed", "tournament_id", item.ID, "error", err)
			continue
		}
		s.logger.InfoContext(ctx, "tournament completed",
			"tournament_id", item.ID,
			"name", item.Name,
			"all_matchdays", item.AllMatchdays,
			"custom", item.IsCustom(),
		)
		completed = append(completed, CompletedTournament{ID: item.ID, Name: item.Name})
	}

	return completed, nil
}

func (s *TournamentCompletionService) eligible(
	ctx context.Context,
	item tournament.Tournament,
	competitions map[int64]competition.Competition,
	now time.Time,
) bool {
	if item.IsCustom() || !item.AllMatchdays {
		return true
	}
	if item.CompetitionID == nil {
		return true
	}

	comp, ok := competitions[*item.CompetitionID]
	if !ok || comp.SeasonEndedBy(now) {
		return true
	}
	s.logger.InfoContext(ctx, "season still running, completion deferred",
		"tournament_id", item.ID,
		"competition_id", comp.ID,
		"season_end", comp.SeasonEnd.Format(time.DateOnly),
	)
	return false
}

func (s *TournamentCompletionService) loadSeasonCompetitions(
	ctx context.Context,
	items []tournament.Tournament,
) (map[int64]competition.Competition, error) {
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if item.IsCustom() || !item.AllMatchdays || item.CompetitionID == nil {
			continue
		}
		if _, ok := seen[*item.CompetitionID]; ok {
			continue
		}
		seen[*item.CompetitionID] = struct{}{}
		ids = append(ids, *item.CompetitionID)
	}
	if len(ids) == 0 {
		return map[int64]competition.Competition{}, nil
	}

	out, err := s.competitionRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load tournament competitions: %w", err)
	}
	return out, nil
}
