package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/match"
)

func TestStalenessPolicy_ShouldAccept(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)
	kickoff := func(ago time.Duration) *time.Time {
		v := now.Add(-ago)
		return &v
	}
	finished := &match.Match{ExternalID: 1, Status: match.StatusFinished, Finished: true, HomeScore: intPtr(2), AwayScore: intPtr(1)}
	policy := NewStalenessPolicy(0)

	tests := []struct {
		name     string
		stored   *match.Match
		incoming match.Match
		want     bool
	}{
		{name: "first import timed long ago", stored: nil, incoming: match.Match{Status: match.StatusTimed, KickoffAt: kickoff(48 * time.Hour)}, want: true},
		{name: "first import without kickoff", stored: nil, incoming: match.Match{Status: match.StatusScheduled}, want: true},
		{name: "timed over threshold", stored: finished, incoming: match.Match{Status: match.StatusTimed, KickoffAt: kickoff(5 * time.Hour)}, want: false},
		{name: "scheduled over threshold", stored: finished, incoming: match.Match{Status: match.StatusScheduled, KickoffAt: kickoff(3*time.Hour + time.Second)}, want: false},
		{name: "timed exactly at threshold", stored: finished, incoming: match.Match{Status: match.StatusTimed, KickoffAt: kickoff(3 * time.Hour)}, want: true},
		{name: "timed within threshold", stored: finished, incoming: match.Match{Status: match.StatusTimed, KickoffAt: kickoff(2 * time.Hour)}, want: true},
		{name: "timed in future", stored: finished, incoming: match.Match{Status: match.StatusTimed, KickoffAt: kickoff(-24 * time.Hour)}, want: true},
		{name: "finished long ago", stored: finished, incoming: match.Match{Status: match.StatusFinished, KickoffAt: kickoff(72 * time.Hour)}, want: true},
		{name: "postponed long ago", stored: finished, incoming: match.Match{Status: match.StatusPostponed, KickoffAt: kickoff(72 * time.Hour)}, want: true},
		{name: "timed without kickoff", stored: finished, incoming: match.Match{Status: match.StatusTimed}, want: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := policy.ShouldAccept(tc.stored, tc.incoming, now); got != tc.want {
				t.Fatalf("unexpected decision: got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestStalenessPolicy_FinishedNeverDowngraded(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)
	policy := NewStalenessPolicy(3 * time.Hour)
	stored := &match.Match{ExternalID: 9, Status: match.StatusFinished, Finished: true}

	for _, status := range []match.Status{match.StatusTimed, match.StatusScheduled} {
		for _, ago := range []time.Duration{3*time.Hour + time.Minute, 6 * time.Hour, 13 * 24 * time.Hour} {
			kickoff := now.Add(-ago)
			incoming := match.Match{
				ExternalID: 9,
				Status:     status,
				KickoffAt:  &kickoff,
				HomeScore:  intPtr(0),
				AwayScore:  intPtr(0),
				HomeTeam:   match.Team{ID: 1, Name: "Other"},
			}
			if policy.ShouldAccept(stored, incoming, now) {
				t.Fatalf("stale %s snapshot %s after kickoff must be rejected", status, ago)
			}
		}
	}
}

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

func timePtr(v time.Time) *time.Time { return &v }
