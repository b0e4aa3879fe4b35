package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/match"
	"github.com/riskibarqy/scoresync/internal/domain/matchwindow"
	"github.com/riskibarqy/scoresync/internal/domain/setting"
	matchmock "github.com/riskibarqy/scoresync/internal/mocks/domain/match"
	matchwindowmock "github.com/riskibarqy/scoresync/internal/mocks/domain/matchwindow"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
	"github.com/riskibarqy/scoresync/internal/platform/pacing"
	"github.com/stretchr/testify/mock"
)

func TestRealtimeSyncService_SelectsByProximityAndPacesCalls(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 17, 19, 55, 0, 0, time.UTC)
	day := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	at := func(offset time.Duration) *time.Time {
		v := now.Add(offset)
		return &v
	}
	window := matchwindow.Window{CompetitionID: 2021, MatchDate: day, Start: now.Add(-time.Hour), End: now.Add(4 * time.Hour)}

	candidates := []match.Match{
		{ExternalID: 1, CompetitionID: 2021, Status: match.StatusTimed, KickoffAt: at(5 * time.Minute)},
		{ExternalID: 2, CompetitionID: 2021, Status: match.StatusInPlay, KickoffAt: at(-40 * time.Minute), LastUpdatedAt: now.Add(-time.Minute)},
		{ExternalID: 3, CompetitionID: 2021, Status: match.StatusTimed, KickoffAt: at(2 * time.Hour)},
		{ExternalID: 4, CompetitionID: 2021, Status: match.StatusTimed, KickoffAt: at(5 * time.Minute), LastUpdatedAt: now.Add(-time.Minute)},
		{ExternalID: 5, CompetitionID: 2021, Status: match.StatusTimed, KickoffAt: at(-4 * time.Hour)},
		{ExternalID: 6, CompetitionID: 2021, Status: match.StatusPaused, KickoffAt: at(-50 * time.Minute)},
	}

	windowRepo := matchwindowmock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	windowRepo.On("ListActive", mock.Anything, now).Return([]matchwindow.Window{window, window}, nil).Once()
	matchRepo.
		On("ListByCompetitionRange", mock.Anything, int64(2021),
			match.Range{From: day, To: day.AddDate(0, 0, 1)},
			[]match.Status{match.StatusTimed, match.StatusInPlay, match.StatusPaused},
		).
		Return(candidates, nil).
		Twice()
	matchRepo.
		On("ApplyScoreUpdate", mock.Anything, mock.MatchedBy(func(u match.ScoreUpdate) bool { return u.ExternalID != 6 })).
		Return(nil).
		Twice()
	matchRepo.
		On("ApplyScoreUpdate", mock.Anything, mock.MatchedBy(func(u match.ScoreUpdate) bool { return u.ExternalID == 6 })).
		Return(errors.New("deadlock detected")).
		Once()

	primary := &stubPrimary{single: map[int64]ExternalMatch{
		1: {ID: 1, Status: "TIMED"},
		2: {ID: 2, Status: "IN_PLAY", Score: ExternalScore{FullTime: ExternalScorePair{Home: intPtr(1), Away: intPtr(0)}}},
		6: {ID: 6, Status: "PAUSED", Score: ExternalScore{FullTime: ExternalScorePair{Home: intPtr(0), Away: intPtr(0)}}},
	}}
	lastRuns := newMemLastRuns()
	sleeper := &pacing.Recorder{}

	svc := NewRealtimeSyncService(primary, windowRepo, matchRepo, lastRuns, nil, sleeper, RealtimeSyncConfig{}, logging.NewNop())
	svc.now = fixedClock(now)

	got, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run realtime sync: %v", err)
	}
	if got.Candidates != 6 || got.Skipped != 3 || got.TotalMatches != 3 {
		t.Fatalf("unexpected selection: candidates=%d skipped=%d total=%d", got.Candidates, got.Skipped, got.TotalMatches)
	}
	if got.SuccessCount != 2 || got.FailureCount != 1 {
		t.Fatalf("unexpected counts: success=%d failure=%d", got.SuccessCount, got.FailureCount)
	}
	if got.Results[1].HomeScore == nil || *got.Results[1].HomeScore != 1 {
		t.Fatalf("unexpected live score: %+v", got.Results[1])
	}

	wantCalls := []string{"match:1", "match:2", "match:6"}
	calls := primary.Calls()
	for i := range wantCalls {
		if calls[i] != wantCalls[i] {
			t.Fatalf("unexpected call order: got=%v want=%v", calls, wantCalls)
		}
	}
	delays := sleeper.Delays()
	if len(delays) != 2 || delays[0] != 3*time.Second || delays[1] != 3*time.Second {
		t.Fatalf("unexpected delays: %v", delays)
	}
	if last, _ := lastRuns.LastRun(context.Background(), setting.KeyRealtimeLastRun); last == nil {
		t.Fatalf("expected realtime last run to be stored")
	}
}

func TestRealtimeSyncService_TimedMatchesUseLongerDelay(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 17, 14, 58, 0, 0, time.UTC)
	kickoff := now.Add(2 * time.Minute)
	window := matchwindow.Window{CompetitionID: 2002, MatchDate: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)}

	windowRepo := matchwindowmock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	windowRepo.On("ListActive", mock.Anything, now).Return([]matchwindow.Window{window}, nil).Once()
	matchRepo.
		On("ListByCompetitionRange", mock.Anything, int64(2002), mock.Anything, mock.Anything).
		Return([]match.Match{
			{ExternalID: 11, Status: match.StatusTimed, KickoffAt: &kickoff},
			{ExternalID: 12, Status: match.StatusTimed, KickoffAt: &kickoff},
		}, nil).
		Once()
	matchRepo.On("ApplyScoreUpdate", mock.Anything, mock.Anything).Return(nil).Twice()

	sleeper := &pacing.Recorder{}
	svc := NewRealtimeSyncService(&stubPrimary{}, windowRepo, matchRepo, nil, nil, sleeper, RealtimeSyncConfig{}, logging.NewNop())
	svc.now = fixedClock(now)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("run realtime sync: %v", err)
	}
	if delays := sleeper.Delays(); len(delays) != 1 || delays[0] != 6*time.Second {
		t.Fatalf("unexpected delays: %v", delays)
	}
}

func TestRealtimeSyncService_NoActiveWindows(t *testing.T) {
	t.Parallel()

	windowRepo := matchwindowmock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	windowRepo.On("ListActive", mock.Anything, mock.Anything).Return(nil, nil).Once()

	svc := NewRealtimeSyncService(&stubPrimary{}, windowRepo, matchRepo, nil, nil, &pacing.Recorder{}, RealtimeSyncConfig{}, logging.NewNop())
	got, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run realtime sync: %v", err)
	}
	if got.ActiveWindows != 0 || len(got.Results) != 0 {
		t.Fatalf("unexpected result: %+v", got)
	}
}
