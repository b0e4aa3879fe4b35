package usecase

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/scoresync/internal/domain/match"
)

func TestCountMatchdays(t *testing.T) {
	t.Parallel()

	matches := []ExternalMatch{
		{ID: 1, Matchday: intPtr(1)},
		{ID: 2, Matchday: intPtr(1)},
		{ID: 3, Stage: "FINAL"},
	}
	if got := countMatchdays(matches); got != 2 {
		t.Fatalf("unexpected matchday count: got=%d want=2", got)
	}

	knockout := []ExternalMatch{
		{ID: 1, Stage: "LEAGUE_STAGE", Matchday: intPtr(1)},
		{ID: 2, Stage: "LEAGUE_STAGE", Matchday: intPtr(2)},
		{ID: 3, Stage: "ROUND_OF_16", Matchday: intPtr(1)},
		{ID: 4, Stage: "ROUND_OF_16", Matchday: intPtr(2)},
		{ID: 5, Stage: "QUARTER_FINALS", Matchday: intPtr(1)},
	}
	if got := countMatchdays(knockout); got != 5 {
		t.Fatalf("unexpected knockout matchday count: got=%d want=5", got)
	}

	if got := countMatchdays(nil); got != 0 {
		t.Fatalf("unexpected empty count: got=%d", got)
	}
}

func TestMapExternalMatch_ExtendedScore(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 16, 22, 0, 0, 0, time.UTC)
	kickoff := now.Add(-3 * time.Hour)
	ext := ExternalMatch{
		ID:        555,
		Stage:     "FINAL",
		KickoffAt: &kickoff,
		Status:    "FINISHED",
		HomeTeam:  ExternalTeam{ID: 10, Name: "Home"},
		AwayTeam:  ExternalTeam{ID: 20, Name: "Away"},
		Score: ExternalScore{
			Winner:      "AWAY_TEAM",
			Duration:    "PENALTY_SHOOTOUT",
			FullTime:    ExternalScorePair{Home: intPtr(5), Away: intPtr(6)},
			RegularTime: ExternalScorePair{Home: intPtr(1), Away: intPtr(1)},
			ExtraTime:   ExternalScorePair{Home: intPtr(0), Away: intPtr(0)},
			Penalties:   ExternalScorePair{Home: intPtr(4), Away: intPtr(5)},
		},
	}

	got := mapExternalMatch(ext, 2001, now)
	want := match.Match{
		ExternalID:    555,
		CompetitionID: 2001,
		Matchday:      1,
		Stage:         "FINAL",
		KickoffAt:     &kickoff,
		Status:        match.StatusFinished,
		Finished:      true,
		HomeTeam:      match.Team{ID: 10, Name: "Home"},
		AwayTeam:      match.Team{ID: 20, Name: "Away"},
		HomeScore:     intPtr(5),
		AwayScore:     intPtr(6),
		Extended: match.ExtendedScore{
			HomeScore90:   intPtr(1),
			AwayScore90:   intPtr(1),
			HomeExtraTime: intPtr(0),
			AwayExtraTime: intPtr(0),
			HomePenalties: intPtr(4),
			AwayPenalties: intPtr(5),
		},
		WinnerTeamID:  int64Ptr(20),
		LastUpdatedAt: now,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected mapped match (-want +got):\n%s", diff)
	}
}

func TestMapExternalMatch_ExtraTimeFallsBackToFullTime(t *testing.T) {
	t.Parallel()

	ext := ExternalMatch{
		ID:     7,
		Status: "FINISHED",
		Score: ExternalScore{
			Duration:  "EXTRA_TIME",
			FullTime:  ExternalScorePair{Home: intPtr(2), Away: intPtr(1)},
			ExtraTime: ExternalScorePair{Home: intPtr(1), Away: intPtr(0)},
		},
	}
	got := mapExternalMatch(ext, 1, time.Now())
	if got.Extended.HomeScore90 == nil || *got.Extended.HomeScore90 != 2 {
		t.Fatalf("expected 90 minute score to fall back to full time, got %+v", got.Extended)
	}
	if got.Extended.HomePenalties != nil {
		t.Fatalf("penalties must stay empty when not reported")
	}
	if got.WinnerTeamID != nil {
		t.Fatalf("winner must be nil without provider winner tag")
	}
}

func TestMapExternalMatch_RegularAndUnfinished(t *testing.T) {
	t.Parallel()

	regular := mapExternalMatch(ExternalMatch{
		ID:       8,
		Matchday: intPtr(12),
		Status:   "FINISHED",
		HomeTeam: ExternalTeam{ID: 1},
		AwayTeam: ExternalTeam{ID: 2},
		Score: ExternalScore{
			Winner:   "DRAW",
			Duration: "REGULAR",
			FullTime: ExternalScorePair{Home: intPtr(0), Away: intPtr(0)},
		},
	}, 1, time.Now())
	if regular.Matchday != 12 || regular.Extended.HomeScore90 == nil || *regular.Extended.AwayScore90 != 0 {
		t.Fatalf("unexpected regular mapping: %+v", regular)
	}
	if regular.Extended.HomeExtraTime != nil || regular.WinnerTeamID != nil {
		t.Fatalf("regular draw must not carry extra time or winner: %+v", regular)
	}

	live := mapExternalMatch(ExternalMatch{
		ID:     9,
		Status: "in_play",
		Score:  ExternalScore{FullTime: ExternalScorePair{Home: intPtr(1), Away: intPtr(0)}},
	}, 1, time.Now())
	if live.Status != match.StatusInPlay || live.Finished {
		t.Fatalf("unexpected live status mapping: %+v", live)
	}
	if live.Extended != (match.ExtendedScore{}) {
		t.Fatalf("unfinished match must not carry extended score: %+v", live.Extended)
	}
}

func TestLiveScoreUpdate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 16, 21, 0, 0, 0, time.UTC)
	update := liveScoreUpdate(ExternalMatch{
		ID:       42,
		Status:   "FINISHED",
		HomeTeam: ExternalTeam{ID: 100},
		AwayTeam: ExternalTeam{ID: 200},
		Score: ExternalScore{
			Winner:   "HOME_TEAM",
			FullTime: ExternalScorePair{Home: intPtr(3), Away: intPtr(1)},
		},
	}, now)

	want := match.ScoreUpdate{
		ExternalID:   42,
		Status:       match.StatusFinished,
		HomeScore:    intPtr(3),
		AwayScore:    intPtr(1),
		WinnerTeamID: int64Ptr(100),
		UpdatedAt:    now,
	}
	if diff := cmp.Diff(want, update); diff != "" {
		t.Fatalf("unexpected update (-want +got):\n%s", diff)
	}
}
