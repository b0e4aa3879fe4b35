package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/competition"
	basecache "github.com/riskibarqy/scoresync/internal/platform/cache"
)

const competitionKeyPrefix = "competition:id:"

// CompetitionRepository caches competition lookups by id. Writes go through
// and evict the touched id.
type CompetitionRepository struct {
	next  competition.Repository
	cache *basecache.Store[competition.Competition]
}

func NewCompetitionRepository(next competition.Repository, cache *basecache.Store[competition.Competition]) *CompetitionRepository {
	return &CompetitionRepository{next: next, cache: cache}
}

func (r *CompetitionRepository) ListSyncable(ctx context.Context, today time.Time) ([]competition.Competition, error) {
	items, err := r.next.ListSyncable(ctx, today)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		r.cache.Set(ctx, competitionKey(item.ID), item)
	}
	return items, nil
}

func (r *CompetitionRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]competition.Competition, error) {
	out := make(map[int64]competition.Competition, len(ids))
	var missing []int64
	for _, id := range ids {
		if item, ok := r.cache.Get(ctx, competitionKey(id)); ok {
			out[id] = item
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := r.next.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, item := range loaded {
		r.cache.Set(ctx, competitionKey(id), item)
		out[id] = item
	}
	return out, nil
}

func (r *CompetitionRepository) UpdateMetadata(ctx context.Context, item competition.Competition) error {
	defer r.cache.Delete(ctx, competitionKey(item.ID))
	return r.next.UpdateMetadata(ctx, item)
}

func (r *CompetitionRepository) UpdateTotalMatchdays(ctx context.Context, id int64, total int) error {
	defer r.cache.Delete(ctx, competitionKey(id))
	return r.next.UpdateTotalMatchdays(ctx, id, total)
}

func competitionKey(id int64) string {
	return competitionKeyPrefix + strconv.FormatInt(id, 10)
}
