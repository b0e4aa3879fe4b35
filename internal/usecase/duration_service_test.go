package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/customcompetition"
	"github.com/riskibarqy/scoresync/internal/domain/durationevent"
	"github.com/riskibarqy/scoresync/internal/domain/match"
	"github.com/riskibarqy/scoresync/internal/domain/syncrun"
	"github.com/riskibarqy/scoresync/internal/domain/tournament"
	customcompetitionmock "github.com/riskibarqy/scoresync/internal/mocks/domain/customcompetition"
	durationeventmock "github.com/riskibarqy/scoresync/internal/mocks/domain/durationevent"
	matchmock "github.com/riskibarqy/scoresync/internal/mocks/domain/match"
	syncrunmock "github.com/riskibarqy/scoresync/internal/mocks/domain/syncrun"
	tournamentmock "github.com/riskibarqy/scoresync/internal/mocks/domain/tournament"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestDurationService_RecalculateStoresDateAndEvent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	competitionID := int64(2021)
	previousEnd := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	item := tournament.Tournament{
		ID:               "t-1",
		CompetitionID:    &competitionID,
		StartingMatchday: 1,
		EndingMatchday:   5,
		EndingDate:       &previousEnd,
		Status:           tournament.StatusActive,
	}
	md1 := time.Date(2026, 8, 15, 15, 0, 0, 0, time.UTC)
	md2 := md1.AddDate(0, 0, 7)
	md3 := md2.AddDate(0, 0, 7)
	wantEnd := md3.AddDate(0, 0, 14)

	tournamentRepo := tournamentmock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	eventRepo := durationeventmock.NewRepository(t)
	customRepo := customcompetitionmock.NewRepository(t)

	tournamentRepo.On("GetByID", mock.Anything, "t-1").Return(item, true, nil).Once()
	matchRepo.
		On("ListByCompetitionMatchdays", mock.Anything, competitionID, 1, 5).
		Return([]match.Match{
			datedMatch(1, 1, "", &md1),
			datedMatch(2, 2, "", &md2),
			datedMatch(3, 3, "", &md3),
		}, nil).
		Once()
	tournamentRepo.
		On("UpdateEndingDate", mock.Anything, "t-1", mock.MatchedBy(func(v *time.Time) bool { return v != nil && v.Equal(wantEnd) }), now).
		Return(nil).
		Once()
	eventRepo.
		On("Insert", mock.Anything, mock.MatchedBy(func(e durationevent.Event) bool {
			return e.TournamentID == "t-1" &&
				e.EventType == durationevent.EventTypeRecalculation &&
				*e.PreviousEndingMatchday == 5 && *e.NewEndingMatchday == 5 &&
				e.PreviousEndingDate.Equal(previousEnd) && e.NewEndingDate.Equal(wantEnd) &&
				e.Reason == "ending matchday changed" &&
				e.EstimationUsed && e.EstimationDetails != ""
		})).
		Return(nil).
		Once()

	svc := NewDurationService(tournamentRepo, matchRepo, customRepo, eventRepo, nil, 0, logging.NewNop())
	svc.now = fixedClock(now)

	got, err := svc.Recalculate(context.Background(), RecalculateDurationInput{TournamentID: "t-1", Reason: "ending matchday changed"})
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if got.EndingDate == nil || !got.EndingDate.Equal(wantEnd) {
		t.Fatalf("unexpected ending date: got=%v want=%v", got.EndingDate, wantEnd)
	}
}

func TestDurationService_RecalculateValidation(t *testing.T) {
	t.Parallel()

	tournamentRepo := tournamentmock.NewRepository(t)
	svc := NewDurationService(tournamentRepo, nil, nil, nil, nil, 0, logging.NewNop())

	if _, err := svc.Recalculate(context.Background(), RecalculateDurationInput{Reason: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	tournamentRepo.On("GetByID", mock.Anything, "missing").Return(tournament.Tournament{}, false, nil).Once()
	if _, err := svc.Recalculate(context.Background(), RecalculateDurationInput{TournamentID: "missing", Reason: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDurationService_RecalculateActiveUsesCustomMatchdays(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	customID := "cc-1"
	kickoff := time.Date(2026, 9, 20, 18, 0, 0, 0, time.UTC)
	items := []tournament.Tournament{
		{ID: "custom", CustomCompetitionID: &customID, EndingMatchday: 2, Status: tournament.StatusActive},
		{ID: "orphan", EndingMatchday: 3, Status: tournament.StatusActive},
	}

	tournamentRepo := tournamentmock.NewRepository(t)
	customRepo := customcompetitionmock.NewRepository(t)
	eventRepo := durationeventmock.NewRepository(t)
	runRepo := syncrunmock.NewRepository(t)

	tournamentRepo.On("ListActive", mock.Anything).Return(items, nil).Once()
	tournamentRepo.On("GetByID", mock.Anything, "custom").Return(items[0], true, nil).Once()
	tournamentRepo.On("GetByID", mock.Anything, "orphan").Return(items[1], true, nil).Once()
	customRepo.
		On("ListMatchdays", mock.Anything, customID, 2).
		Return([]customcompetition.Matchday{{ID: "m2", Number: 2, Kickoffs: []time.Time{kickoff}}}, nil).
		Once()
	tournamentRepo.On("UpdateEndingDate", mock.Anything, "custom", mock.Anything, now).Return(nil).Once()
	eventRepo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()
	runRepo.
		On("Insert", mock.Anything, mock.MatchedBy(func(r syncrun.Run) bool {
			return r.JobName == syncrun.JobDuration && r.Status == syncrun.StatusPartial && r.ItemsProcessed == 2 && r.ItemsFailed == 1
		})).
		Return(nil).
		Once()

	runs := NewSyncRunService(runRepo, nil, logging.NewNop())
	svc := NewDurationService(tournamentRepo, nil, customRepo, eventRepo, runs, 2, logging.NewNop())
	svc.now = fixedClock(now)

	got, err := svc.RecalculateActive(context.Background(), "")
	if err != nil {
		t.Fatalf("recalculate active: %v", err)
	}
	if got.SuccessCount != 1 || got.FailureCount != 1 {
		t.Fatalf("unexpected counts: success=%d failure=%d", got.SuccessCount, got.FailureCount)
	}
	if got.Items[0].Estimate == nil || got.Items[0].Estimate.EstimationUsed {
		t.Fatalf("expected exact custom estimate, got %+v", got.Items[0])
	}
	if got.Items[1].Error == "" {
		t.Fatalf("expected orphan tournament to fail")
	}
}

func TestDurationService_ListEventsClampsLimit(t *testing.T) {
	t.Parallel()

	eventRepo := durationeventmock.NewRepository(t)
	eventRepo.On("ListByTournament", mock.Anything, "t-1", 50).Return([]durationevent.Event{{ID: 1}}, nil).Once()

	svc := NewDurationService(nil, nil, nil, eventRepo, nil, 0, logging.NewNop())
	got, err := svc.ListEvents(context.Background(), " t-1 ", 1000)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected event count: got=%d want=1", len(got))
	}
}
