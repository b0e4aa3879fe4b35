package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/matchwindow"
)

type windowKey struct {
	competitionID int64
	date          string
}

type MatchWindowRepository struct {
	mu      sync.RWMutex
	windows map[windowKey]matchwindow.Window
}

func NewMatchWindowRepository() *MatchWindowRepository {
	return &MatchWindowRepository{windows: make(map[windowKey]matchwindow.Window)}
}

func (r *MatchWindowRepository) ListActive(_ context.Context, now time.Time) ([]matchwindow.Window, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchwindow.Window, 0)
	for _, w := range r.windows {
		if w.Contains(now) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MatchDate.Equal(out[j].MatchDate) {
			return out[i].MatchDate.Before(out[j].MatchDate)
		}
		return out[i].CompetitionID < out[j].CompetitionID
	})
	return out, nil
}

func (r *MatchWindowRepository) UpsertMany(_ context.Context, windows []matchwindow.Window) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, w := range windows {
		r.windows[windowKey{competitionID: w.CompetitionID, date: w.MatchDate.Format(time.DateOnly)}] = w
	}
	return nil
}

func (r *MatchWindowRepository) DeleteEndedBefore(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for key, w := range r.windows {
		if w.End.Before(cutoff) {
			delete(r.windows, key)
			deleted++
		}
	}
	return deleted, nil
}
