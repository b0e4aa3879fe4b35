package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/riskibarqy/scoresync/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[int64]match.Match
}

func NewMatchRepository(items []match.Match) *MatchRepository {
	byID := make(map[int64]match.Match, len(items))
	for _, item := range items {
		byID[item.ExternalID] = item
	}
	return &MatchRepository{items: byID}
}

func (r *MatchRepository) GetByExternalIDs(_ context.Context, ids []int64) (map[int64]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[int64]match.Match, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

func (r *MatchRepository) UpsertMany(_ context.Context, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		item.Finished = match.IsFinished(item.Status)
		r.items[item.ExternalID] = item
	}
	return nil
}

func (r *MatchRepository) ApplyScoreUpdate(_ context.Context, update match.ScoreUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[update.ExternalID]
	if !ok {
		return fmt.Errorf("match external_id=%d not found", update.ExternalID)
	}
	current.Status = update.Status
	current.Finished = match.IsFinished(update.Status)
	current.HomeScore = update.HomeScore
	current.AwayScore = update.AwayScore
	current.WinnerTeamID = update.WinnerTeamID
	current.LastUpdatedAt = update.UpdatedAt
	r.items[update.ExternalID] = current
	return nil
}

func (r *MatchRepository) ListStale(_ context.Context, query match.StaleQuery) ([]match.Match, error) {
	out := r.filter(func(item match.Match) bool {
		if item.KickoffAt == nil || !slices.Contains(query.Statuses, item.Status) {
			return false
		}
		return item.KickoffAt.After(query.KickoffAfter) && item.KickoffAt.Before(query.KickoffBefore)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].KickoffAt.After(*out[j].KickoffAt) })
	if query.Limit > 0 && len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

func (r *MatchRepository) ListByCompetitionRange(_ context.Context, competitionID int64, kickoff match.Range, statuses []match.Status) ([]match.Match, error) {
	out := r.filter(func(item match.Match) bool {
		if item.CompetitionID != competitionID || !inRange(item, kickoff) {
			return false
		}
		return len(statuses) == 0 || slices.Contains(statuses, item.Status)
	})
	sortByKickoff(out)
	return out, nil
}

func (r *MatchRepository) ListByCompetitionMatchdays(_ context.Context, competitionID int64, fromMatchday, toMatchday int) ([]match.Match, error) {
	out := r.filter(func(item match.Match) bool {
		return item.CompetitionID == competitionID && item.Matchday >= fromMatchday && item.Matchday <= toMatchday
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Matchday != out[j].Matchday {
			return out[i].Matchday < out[j].Matchday
		}
		return out[i].ExternalID < out[j].ExternalID
	})
	return out, nil
}

func (r *MatchRepository) ListUpcoming(_ context.Context, kickoff match.Range) ([]match.Match, error) {
	out := r.filter(func(item match.Match) bool {
		return !item.Finished && inRange(item, kickoff)
	})
	sortByKickoff(out)
	return out, nil
}

func (r *MatchRepository) filter(keep func(match.Match) bool) []match.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out
}

func inRange(item match.Match, kickoff match.Range) bool {
	if item.KickoffAt == nil {
		return false
	}
	return !item.KickoffAt.Before(kickoff.From) && item.KickoffAt.Before(kickoff.To)
}

// sortByKickoff expects every item to have a kickoff.
func sortByKickoff(items []match.Match) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].KickoffAt.Before(*items[j].KickoffAt) })
}
