package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/competition"
)

type CompetitionRepository struct {
	mu    sync.RWMutex
	items map[int64]competition.Competition
}

func NewCompetitionRepository(items []competition.Competition) *CompetitionRepository {
	byID := make(map[int64]competition.Competition, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &CompetitionRepository{items: byID}
}

func (r *CompetitionRepository) ListSyncable(_ context.Context, today time.Time) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := competition.DateOnly(today)
	out := make([]competition.Competition, 0, len(r.items))
	for _, item := range r.items {
		if !item.Active {
			continue
		}
		if item.SeasonEnd != nil && competition.DateOnly(*item.SeasonEnd).Before(day) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CompetitionRepository) GetByIDs(_ context.Context, ids []int64) (map[int64]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[int64]competition.Competition, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

func (r *CompetitionRepository) UpdateMetadata(_ context.Context, item competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[item.ID]
	if !ok {
		return nil
	}
	current.Code = item.Code
	current.Name = item.Name
	current.Emblem = item.Emblem
	current.AreaName = item.AreaName
	current.SeasonStart = item.SeasonStart
	current.SeasonEnd = item.SeasonEnd
	current.CurrentMatchday = item.CurrentMatchday
	current.LastUpdatedAt = item.LastUpdatedAt
	r.items[item.ID] = current
	return nil
}

func (r *CompetitionRepository) UpdateTotalMatchdays(_ context.Context, id int64, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return nil
	}
	current.TotalMatchdays = &total
	r.items[id] = current
	return nil
}
