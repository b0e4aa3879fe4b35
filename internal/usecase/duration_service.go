package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/scoresync/internal/domain/customcompetition"
	"github.com/riskibarqy/scoresync/internal/domain/durationevent"
	"github.com/riskibarqy/scoresync/internal/domain/match"
	"github.com/riskibarqy/scoresync/internal/domain/syncrun"
	"github.com/riskibarqy/scoresync/internal/domain/tournament"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
)

const (
	defaultDurationWorkers    = 4
	defaultDurationEventLimit = 50
)

type RecalculateDurationInput struct {
	TournamentID           string     `json:"tournament_id" validate:"required"`
	Reason                 string     `json:"reason" validate:"required,max=200"`
	PreviousEndingMatchday *int       `json:"previous_ending_matchday,omitempty"`
	PreviousEndingDate     *time.Time `json:"previous_ending_date,omitempty"`
}

type DurationBatchItem struct {
	TournamentID string            `json:"tournament_id"`
	Estimate     *DurationEstimate `json:"estimate,omitempty"`
	Error        string            `json:"error,omitempty"`
}

type DurationBatchResult struct {
	Total        int                 `json:"total"`
	SuccessCount int                 `json:"success_count"`
	FailureCount int                 `json:"failure_count"`
	Items        []DurationBatchItem `json:"items"`
}

// DurationService recomputes tournament ending dates and keeps their history.
type DurationService struct {
	tournamentRepo tournament.Repository
	matchRepo      match.Repository
	customRepo     customcompetition.Repository
	eventRepo      durationevent.Repository
	runs           *SyncRunService
	workers        int
	logger         *logging.Logger
	now            func() time.Time
}

func NewDurationService(
	tournamentRepo tournament.Repository,
	matchRepo match.Repository,
	customRepo customcompetition.Repository,
	eventRepo durationevent.Repository,
	runs *SyncRunService,
	workers int,
	logger *logging.Logger,
) *DurationService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultDurationWorkers
	}
	return &DurationService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		customRepo:     customRepo,
		eventRepo:      eventRepo,
		runs:           runs,
		workers:        workers,
		logger:         logger.Named("duration"),
		now:            time.Now,
	}
}

// Recalculate stores a new ending date for the tournament and appends a duration event.
func (s *DurationService) Recalculate(ctx context.Context, input RecalculateDurationInput) (DurationEstimate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DurationService.Recalculate")
	defer span.End()

	input.TournamentID = strings.TrimSpace(input.TournamentID)
	input.Reason = strings.TrimSpace(input.Reason)
	if input.TournamentID == "" {
		return DurationEstimate{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	if input.Reason == "" {
		return DurationEstimate{}, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}

	item, ok, err := s.tournamentRepo.GetByID(ctx, input.TournamentID)
	if err != nil {
		return DurationEstimate{}, fmt.Errorf("get tournament: %w", err)
	}
	if !ok {
		return DurationEstimate{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, input.TournamentID)
	}

	estimate, err := s.estimate(ctx, item)
	if err != nil {
		return DurationEstimate{}, err
	}

	now := s.now().UTC()
	if err := s.tournamentRepo.UpdateEndingDate(ctx, item.ID, estimate.EndingDate, now); err != nil {
		return DurationEstimate{}, fmt.Errorf("update tournament ending date: %w", err)
	}

	event := durationevent.Event{
		TournamentID:           item.ID,
		EventType:              durationevent.EventTypeRecalculation,
		PreviousEndingMatchday: input.PreviousEndingMatchday,
		NewEndingMatchday:      intPtrValue(estimate.EndingMatchday),
		PreviousEndingDate:     input.PreviousEndingDate,
		NewEndingDate:          estimate.EndingDate,
		Reason:                 input.Reason,
		EstimationUsed:         estimate.EstimationUsed,
		EstimationDetails:      estimate.EstimationDetails,
		CreatedAt:              now,
	}
	if event.PreviousEndingMatchday == nil {
		event.PreviousEndingMatchday = intPtrValue(item.EndingMatchday)
	}
	if event.PreviousEndingDate == nil {
		event.PreviousEndingDate = item.EndingDate
	}
	if err := s.eventRepo.Insert(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "record duration event failed", "tournament_id", item.ID, "error", err)
	}

	s.logger.InfoContext(ctx, "tournament ending date recalculated",
		"tournament_id", item.ID,
		"ending_matchday", estimate.EndingMatchday,
		"estimation_used", estimate.EstimationUsed,
		"details", estimate.EstimationDetails,
	)
	return estimate, nil
}

func (s *DurationService) estimate(ctx context.Context, item tournament.Tournament) (DurationEstimate, error) {
	switch {
	case item.IsCustom():
		matchdays, err := s.customRepo.ListMatchdays(ctx, *item.CustomCompetitionID, item.EndingMatchday)
		if err != nil {
			return DurationEstimate{}, fmt.Errorf("list custom matchdays: %w", err)
		}
		return EstimateCustomEnding(matchdays, item.EndingMatchday), nil
	case item.CompetitionID != nil:
		from := item.StartingMatchday
		if from <= 0 {
			from = 1
		}
		matches, err := s.matchRepo.ListByCompetitionMatchdays(ctx, *item.CompetitionID, from, item.EndingMatchday)
		if err != nil {
			return DurationEstimate{}, fmt.Errorf("list competition matches: %w", err)
		}
		return EstimateCompetitionEnding(matches, item.EndingMatchday), nil
	default:
		return DurationEstimate{}, fmt.Errorf("%w: tournament %s has no competition", ErrInvalidInput, item.ID)
	}
}

// RecalculateActive refreshes the ending date of every active tournament.
func (s *DurationService) RecalculateActive(ctx context.Context, reason string) (DurationBatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DurationService.RecalculateActive")
	defer span.End()

	startedAt := s.now()
	items, err := s.tournamentRepo.ListActive(ctx)
	if err != nil {
		return DurationBatchResult{}, fmt.Errorf("list active tournaments: %w", err)
	}
	result := DurationBatchResult{Total: len(items), Items: make([]DurationBatchItem, len(items))}
	if len(items) == 0 {
		return result, nil
	}
	if strings.TrimSpace(reason) == "" {
		reason = "scheduled recalculation"
	}

	pool, err := ants.NewPool(min(s.workers, len(items)))
	if err != nil {
		return DurationBatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for idx, item := range items {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := DurationBatchItem{TournamentID: item.ID}
			estimate, err := s.Recalculate(ctx, RecalculateDurationInput{TournamentID: item.ID, Reason: reason})
			if err != nil {
				row.Error = err.Error()
				failedCount.Add(1)
			} else {
				row.Estimate = &estimate
				successCount.Add(1)
			}
			result.Items[idx] = row
		}); err != nil {
			workers.Done()
			return DurationBatchResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	result.SuccessCount = int(successCount.Load())
	result.FailureCount = int(failedCount.Load())

	s.runs.Record(ctx, syncrun.Run{
		JobName:        syncrun.JobDuration,
		Status:         syncrun.StatusFor(result.Total, result.FailureCount),
		Message:        reason,
		ItemsProcessed: result.Total,
		ItemsFailed:    result.FailureCount,
		StartedAt:      startedAt,
	})
	return result, nil
}

func (s *DurationService) ListEvents(ctx context.Context, tournamentID string, limit int) ([]durationevent.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DurationService.ListEvents")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	if limit <= 0 || limit > 200 {
		limit = defaultDurationEventLimit
	}

	events, err := s.eventRepo.ListByTournament(ctx, tournamentID, limit)
	if err != nil {
		return nil, fmt.Errorf("list duration events: %w", err)
	}
	return events, nil
}

func intPtrValue(v int) *int {
	return &v
}
