package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/tournament"
)

type TournamentRepository struct {
	mu    sync.RWMutex
	items map[string]tournament.Tournament
}

func NewTournamentRepository(items []tournament.Tournament) *TournamentRepository {
	byID := make(map[string]tournament.Tournament, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &TournamentRepository{items: byID}
}

func (r *TournamentRepository) GetByID(_ context.Context, id string) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *TournamentRepository) ListActive(_ context.Context) ([]tournament.Tournament, error) {
	return r.list(func(item tournament.Tournament) bool {
		return item.Status == tournament.StatusActive
	}), nil
}

func (r *TournamentRepository) ListActiveEndedBefore(_ context.Context, cutoff time.Time) ([]tournament.Tournament, error) {
	return r.list(func(item tournament.Tournament) bool {
		return item.Status == tournament.StatusActive && item.EndingDate != nil && item.EndingDate.Before(cutoff)
	}), nil
}

func (r *TournamentRepository) MarkCompleted(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.Status != tournament.StatusActive {
		return nil
	}
	item.Status = tournament.StatusCompleted
	item.UpdatedAt = at
	r.items[id] = item
	return nil
}

func (r *TournamentRepository) UpdateEndingDate(_ context.Context, id string, endingDate *time.Time, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil
	}
	item.EndingDate = endingDate
	item.UpdatedAt = at
	r.items[id] = item
	return nil
}

func (r *TournamentRepository) list(keep func(tournament.Tournament) bool) []tournament.Tournament {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tournament.Tournament, 0)
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
