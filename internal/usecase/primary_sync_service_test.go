package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/apicall"
	"github.com/riskibarqy/scoresync/internal/domain/competition"
	"github.com/riskibarqy/scoresync/internal/domain/match"
	"github.com/riskibarqy/scoresync/internal/domain/setting"
	"github.com/riskibarqy/scoresync/internal/domain/tournament"
	apicallmock "github.com/riskibarqy/scoresync/internal/mocks/domain/apicall"
	competitionmock "github.com/riskibarqy/scoresync/internal/mocks/domain/competition"
	matchmock "github.com/riskibarqy/scoresync/internal/mocks/domain/match"
	tournamentmock "github.com/riskibarqy/scoresync/internal/mocks/domain/tournament"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
	"github.com/riskibarqy/scoresync/internal/platform/pacing"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/mock"
)

func TestPrimarySyncService_UpsertsFinishedAndSkipsStaleTimed(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 16, 21, 0, 0, 0, time.UTC)
	kickoff := now.Add(-5 * time.Hour)
	competitionID := int64(2021)

	primary := &stubPrimary{
		competitions: map[int64]ExternalCompetition{
			competitionID: {ID: competitionID, Code: "PL", Name: "Premier League", CurrentMatchday: intPtr(8)},
		},
		matches: map[int64][]ExternalMatch{
			competitionID: {
				{
					ID: 100, Matchday: intPtr(8), KickoffAt: &kickoff, Status: "FINISHED",
					HomeTeam: ExternalTeam{ID: 57, Name: "Arsenal FC"},
					AwayTeam: ExternalTeam{ID: 61, Name: "Chelsea FC"},
					Score: ExternalScore{
						Winner:   "HOME_TEAM",
						Duration: "REGULAR",
						FullTime: ExternalScorePair{Home: intPtr(2), Away: intPtr(1)},
					},
				},
				{
					ID: 200, Matchday: intPtr(8), KickoffAt: &kickoff, Status: "TIMED",
					HomeTeam: ExternalTeam{ID: 65, Name: "Manchester City FC"},
					AwayTeam: ExternalTeam{ID: 64, Name: "Liverpool FC"},
				},
			},
		},
	}

	competitionRepo := competitionmock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	auditRepo := apicallmock.NewRepository(t)

	competitionRepo.
		On("ListSyncable", mock.Anything, competition.DateOnly(now)).
		Return([]competition.Competition{{ID: competitionID, Name: "PL", Active: true}}, nil).
		Once()
	competitionRepo.
		On("UpdateMetadata", mock.Anything, mock.MatchedBy(func(c competition.Competition) bool {
			return c.ID == competitionID && c.Name == "Premier League" && *c.CurrentMatchday == 8
		})).
		Return(nil).
		Once()
	competitionRepo.On("UpdateTotalMatchdays", mock.Anything, competitionID, 1).Return(nil).Once()
	matchRepo.
		On("GetByExternalIDs", mock.Anything, []int64{100, 200}).
		Return(map[int64]match.Match{
			100: {ExternalID: 100, Status: match.StatusTimed, KickoffAt: &kickoff},
			200: {ExternalID: 200, Status: match.StatusInPlay, KickoffAt: &kickoff, HomeScore: intPtr(1), AwayScore: intPtr(1)},
		}, nil).
		Once()
	matchRepo.
		On("UpsertMany", mock.Anything, mock.MatchedBy(func(items []match.Match) bool {
			if len(items) != 1 {
				return false
			}
			got := items[0]
			return got.ExternalID == 100 &&
				got.Status == match.StatusFinished && got.Finished &&
				*got.HomeScore == 2 && *got.AwayScore == 1 &&
				*got.Extended.HomeScore90 == 2 && *got.Extended.AwayScore90 == 1 &&
				*got.WinnerTeamID == 57
		})).
		Return(nil).
		Once()
	auditRepo.
		On("Insert", mock.Anything, mock.MatchedBy(func(e apicall.Entry) bool {
			return e.Provider == apicall.ProviderFootballData && e.Success && *e.CompetitionID == competitionID
		})).
		Return(errors.New("audit table missing")).
		Twice()

	lastRuns := newMemLastRuns()
	audit := NewAPICallAuditor(auditRepo, nil, logging.NewNop())
	svc := NewPrimarySyncService(primary, competitionRepo, matchRepo, nil, nil, lastRuns, audit, &pacing.Recorder{}, PrimarySyncConfig{}, logging.NewNop())
	svc.now = fixedClock(now)

	got, err := svc.Run(context.Background(), PrimarySyncInput{})
	if err != nil {
		t.Fatalf("run primary sync: %v", err)
	}
	if got.SuccessCount != 1 || got.FailureCount != 0 {
		t.Fatalf("unexpected counts: success=%d failure=%d", got.SuccessCount, got.FailureCount)
	}
	item := got.Competitions[0]
	if item.MatchesUpserted != 1 || item.MatchesSkipped != 1 || item.TotalMatchdays != 1 {
		t.Fatalf("unexpected competition result: %+v", item)
	}
	if last, _ := lastRuns.LastRun(context.Background(), setting.KeyPrimaryLastRun); last == nil || !last.Equal(now) {
		t.Fatalf("expected primary last run to be stored, got %v", last)
	}
}

func TestPrimarySyncService_PacesAndIsolatesCompetitionFailures(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 16, 6, 0, 0, 0, time.UTC)
	primary := &stubPrimary{
		competitions: map[int64]ExternalCompetition{2014: {ID: 2014, Name: "Primera Division"}},
		matches:      map[int64][]ExternalMatch{2014: {}},
		errs:         map[string]error{"competition:2021": errors.New("upstream 503")},
	}

	competitionRepo := competitionmock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	competitionRepo.
		On("ListSyncable", mock.Anything, mock.Anything).
		Return([]competition.Competition{{ID: 2021}, {ID: 2014}}, nil).
		Once()
	competitionRepo.On("UpdateMetadata", mock.Anything, mock.Anything).Return(nil).Once()

	sleeper := &pacing.Recorder{}
	svc := NewPrimarySyncService(primary, competitionRepo, matchRepo, nil, nil, nil, nil, sleeper, PrimarySyncConfig{}, logging.NewNop())
	svc.now = fixedClock(now)

	got, err := svc.Run(context.Background(), PrimarySyncInput{})
	if err != nil {
		t.Fatalf("run primary sync: %v", err)
	}
	if got.SuccessCount != 1 || got.FailureCount != 1 {
		t.Fatalf("unexpected counts: success=%d failure=%d", got.SuccessCount, got.FailureCount)
	}
	if got.Competitions[0].Error == "" || got.Competitions[1].Error != "" {
		t.Fatalf("unexpected per-competition errors: %+v", got.Competitions)
	}
	delays := sleeper.Delays()
	if len(delays) != 1 || delays[0] != 12*time.Second {
		t.Fatalf("unexpected delays: %v", delays)
	}
	wantCalls := []string{"competition:2021", "competition:2014", "matches:2014"}
	if calls := primary.Calls(); len(calls) != len(wantCalls) {
		t.Fatalf("unexpected calls: got=%v want=%v", calls, wantCalls)
	}
}

type callOrder struct {
	mu    sync.Mutex
	calls []string
}

func (o *callOrder) add(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, name)
}

func (o *callOrder) list() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.calls...)
}

type orderedSecondary struct {
	*stubSecondary
	order *callOrder
}

func (s orderedSecondary) FetchSeasonEvents(ctx context.Context, leagueID int64, season string) ([]ExternalSeasonEvent, error) {
	s.order.add("FetchSeasonEvents")
	return s.stubSecondary.FetchSeasonEvents(ctx, leagueID, season)
}

func TestPrimarySyncService_CompletesTournamentsThenRunsFallbackAfterUpserts(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 16, 21, 0, 0, 0, time.UTC)
	kickoff := now.Add(-5 * time.Hour)
	order := &callOrder{}

	primary := &stubPrimary{
		competitions: map[int64]ExternalCompetition{2014: {ID: 2014, Name: "Primera Division"}},
		matches: map[int64][]ExternalMatch{
			2014: {{
				ID: 300, Matchday: intPtr(8), KickoffAt: &kickoff, Status: "FINISHED",
				HomeTeam: ExternalTeam{ID: 86, Name: "Real Madrid CF"},
				AwayTeam: ExternalTeam{ID: 81, Name: "FC Barcelona"},
				Score: ExternalScore{
					Winner:   "DRAW",
					Duration: "REGULAR",
					FullTime: ExternalScorePair{Home: intPtr(1), Away: intPtr(1)},
				},
			}},
		},
		errs: map[string]error{"competition:2021": errors.New("upstream 503")},
	}
	secondary := orderedSecondary{
		stubSecondary: &stubSecondary{events: map[string][]ExternalSeasonEvent{
			"4335:2026-2027": {finishedEvent("e9", "7", "Sevilla", "Valencia", "2", "0")},
		}},
		order: order,
	}

	competitionRepo := competitionmock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	tournamentRepo := tournamentmock.NewRepository(t)

	competitionRepo.
		On("ListSyncable", mock.Anything, mock.Anything).
		Return([]competition.Competition{{ID: 2021}, {ID: 2014}}, nil).
		Once()
	competitionRepo.On("UpdateMetadata", mock.Anything, mock.Anything).Return(nil).Once()
	competitionRepo.On("UpdateTotalMatchdays", mock.Anything, int64(2014), 1).Return(nil).Once()
	matchRepo.On("GetByExternalIDs", mock.Anything, []int64{300}).Return(map[int64]match.Match{}, nil).Once()
	matchRepo.
		On("UpsertMany", mock.Anything, mock.MatchedBy(func(items []match.Match) bool {
			return len(items) == 1 && items[0].ExternalID == 300
		})).
		Run(func(mock.Arguments) { order.add("UpsertMany") }).
		Return(nil).
		Once()
	tournamentRepo.
		On("ListActiveEndedBefore", mock.Anything, now).
		Run(func(mock.Arguments) { order.add("ListActiveEndedBefore") }).
		Return([]tournament.Tournament{{ID: "t-1", Name: "Autumn Cup", EndingMatchday: 8, Status: tournament.StatusActive}}, nil).
		Once()
	tournamentRepo.On("MarkCompleted", mock.Anything, "t-1", now).Return(nil).Once()
	matchRepo.
		On("ListStale", mock.Anything, mock.Anything).
		Return([]match.Match{staleCandidate(9, 2014, 7, "Sevilla FC", "Valencia CF", now.Add(-26*time.Hour))}, nil).
		Once()
	competitionRepo.On("GetByIDs", mock.Anything, []int64{2014}).Return(map[int64]competition.Competition{}, nil).Once()
	matchRepo.
		On("ApplyScoreUpdate", mock.Anything, mock.MatchedBy(func(u match.ScoreUpdate) bool {
			return u.ExternalID == 9 && *u.HomeScore == 2 && *u.AwayScore == 0
		})).
		Return(nil).
		Once()

	lastRuns := newMemLastRuns()
	completion := NewTournamentCompletionService(tournamentRepo, competitionRepo, logging.NewNop())
	completion.now = fixedClock(now)
	fallback := NewFallbackReconciler(secondary, matchRepo, competitionRepo, lastRuns, nil, nil, &pacing.Recorder{}, FallbackConfig{}, logging.NewNop())
	fallback.now = fixedClock(now)
	svc := NewPrimarySyncService(primary, competitionRepo, matchRepo, completion, fallback, lastRuns, nil, &pacing.Recorder{}, PrimarySyncConfig{}, logging.NewNop())
	svc.now = fixedClock(now)

	got, err := svc.Run(context.Background(), PrimarySyncInput{})
	if err != nil {
		t.Fatalf("run primary sync: %v", err)
	}
	if got.SuccessCount != 1 || got.FailureCount != 1 {
		t.Fatalf("unexpected counts: success=%d failure=%d", got.SuccessCount, got.FailureCount)
	}
	if len(got.CompletedTournaments) != 1 || got.CompletedTournaments[0].ID != "t-1" {
		t.Fatalf("unexpected completed tournaments: %+v", got.CompletedTournaments)
	}
	if got.Fallback == nil || got.Fallback.Skipped || got.Fallback.Patched != 1 || got.Fallback.APICalls != 1 {
		t.Fatalf("unexpected fallback result: %+v", got.Fallback)
	}

	want := []string{"UpsertMany", "ListActiveEndedBefore", "FetchSeasonEvents"}
	if diff := cmp.Diff(want, order.list()); diff != "" {
		t.Fatalf("unexpected call order (-want +got):\n%s", diff)
	}
}

func TestPrimarySyncService_FilterReportsUnknownCompetitions(t *testing.T) {
	t.Parallel()

	competitionRepo := competitionmock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	competitionRepo.
		On("GetByIDs", mock.Anything, []int64{1}).
		Return(map[int64]competition.Competition{}, nil).
		Once()

	svc := NewPrimarySyncService(&stubPrimary{}, competitionRepo, matchRepo, nil, nil, nil, nil, &pacing.Recorder{}, PrimarySyncConfig{}, logging.NewNop())
	got, err := svc.Run(context.Background(), PrimarySyncInput{CompetitionIDs: []int64{1}})
	if err != nil {
		t.Fatalf("run primary sync: %v", err)
	}
	if got.TotalCompetitions != 1 || got.FailureCount != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestPrimarySyncService_MissingProviderIsNotConfigured(t *testing.T) {
	t.Parallel()

	svc := NewPrimarySyncService(nil, nil, nil, nil, nil, nil, nil, nil, PrimarySyncConfig{}, logging.NewNop())
	if _, err := svc.Run(context.Background(), PrimarySyncInput{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
