package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/match"
	"github.com/riskibarqy/scoresync/internal/domain/matchwindow"
)

func kickoffAt(t time.Time) *time.Time { return &t }

func TestMatchRepository_ListStaleOrdersNewestFirstAndLimits(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := NewMatchRepository([]match.Match{
		{ExternalID: 1, Status: match.StatusTimed, KickoffAt: kickoffAt(now.Add(-30 * time.Hour))},
		{ExternalID: 2, Status: match.StatusTimed, KickoffAt: kickoffAt(now.Add(-5 * time.Hour))},
		{ExternalID: 3, Status: match.StatusFinished, KickoffAt: kickoffAt(now.Add(-6 * time.Hour))},
		{ExternalID: 4, Status: match.StatusScheduled, KickoffAt: kickoffAt(now.Add(-10 * time.Hour))},
		{ExternalID: 5, Status: match.StatusTimed, KickoffAt: kickoffAt(now.Add(-1 * time.Hour))},
		{ExternalID: 6, Status: match.StatusTimed},
	})

	got, err := repo.ListStale(context.Background(), match.StaleQuery{
		KickoffAfter:  now.Add(-14 * 24 * time.Hour),
		KickoffBefore: now.Add(-3 * time.Hour),
		Statuses:      []match.Status{match.StatusTimed, match.StatusScheduled},
		Limit:         2,
	})
	if err != nil {
		t.Fatalf("list stale: %v", err)
	}
	if len(got) != 2 || got[0].ExternalID != 2 || got[1].ExternalID != 4 {
		t.Fatalf("unexpected stale matches: %+v", got)
	}
}

func TestMatchRepository_ApplyScoreUpdateKeepsExtendedScore(t *testing.T) {
	t.Parallel()

	ninety := 1
	repo := NewMatchRepository([]match.Match{{
		ExternalID: 7,
		Status:     match.StatusInPlay,
		Extended:   match.ExtendedScore{HomeScore90: &ninety, AwayScore90: &ninety},
	}})

	home, away := 2, 1
	updatedAt := time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)
	err := repo.ApplyScoreUpdate(context.Background(), match.ScoreUpdate{
		ExternalID: 7,
		Status:     match.StatusFinished,
		HomeScore:  &home,
		AwayScore:  &away,
		UpdatedAt:  updatedAt,
	})
	if err != nil {
		t.Fatalf("apply score update: %v", err)
	}

	got, _ := repo.GetByExternalIDs(context.Background(), []int64{7})
	item := got[7]
	if !item.Finished || *item.HomeScore != 2 || item.Extended.HomeScore90 == nil {
		t.Fatalf("unexpected match after update: %+v", item)
	}
	if err := repo.ApplyScoreUpdate(context.Background(), match.ScoreUpdate{ExternalID: 99}); err == nil {
		t.Fatalf("expected error for unknown match")
	}
}

func TestMatchWindowRepository_ActiveAndCleanup(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo := NewMatchWindowRepository()
	ctx := context.Background()

	err := repo.UpsertMany(ctx, []matchwindow.Window{
		{CompetitionID: 2021, MatchDate: day, Start: now.Add(-time.Hour), End: now.Add(time.Hour), MatchCount: 2},
		{CompetitionID: 2014, MatchDate: day.AddDate(0, 0, -3), Start: now.Add(-74 * time.Hour), End: now.Add(-70 * time.Hour), MatchCount: 1},
	})
	if err != nil {
		t.Fatalf("upsert windows: %v", err)
	}

	active, _ := repo.ListActive(ctx, now)
	if len(active) != 1 || active[0].CompetitionID != 2021 {
		t.Fatalf("unexpected active windows: %+v", active)
	}
	deleted, _ := repo.DeleteEndedBefore(ctx, now.Add(-24*time.Hour))
	if deleted != 1 {
		t.Fatalf("expected one deleted window, got=%d", deleted)
	}
}
