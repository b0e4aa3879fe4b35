package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/apicall"
	"github.com/riskibarqy/scoresync/internal/domain/durationevent"
	"github.com/riskibarqy/scoresync/internal/domain/syncrun"
)

type DurationEventRepository struct {
	mu     sync.RWMutex
	nextID int64
	events []durationevent.Event
}

func NewDurationEventRepository() *DurationEventRepository {
	return &DurationEventRepository{}
}

func (r *DurationEventRepository) Insert(_ context.Context, event durationevent.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	event.ID = r.nextID
	r.events = append(r.events, event)
	return nil
}

func (r *DurationEventRepository) ListByTournament(_ context.Context, tournamentID string, limit int) ([]durationevent.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]durationevent.Event, 0)
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].TournamentID != tournamentID {
			continue
		}
		out = append(out, r.events[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type APICallRepository struct {
	mu      sync.RWMutex
	entries []apicall.Entry
}

func NewAPICallRepository() *APICallRepository {
	return &APICallRepository{}
}

func (r *APICallRepository) Insert(_ context.Context, entry apicall.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	return nil
}

func (r *APICallRepository) StatsSince(_ context.Context, since time.Time) ([]apicall.Stat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type key struct{ provider, callType string }
	totals := make(map[key]*apicall.Stat)
	elapsed := make(map[key]time.Duration)
	for _, entry := range r.entries {
		if entry.CreatedAt.Before(since) {
			continue
		}
		k := key{provider: entry.Provider, callType: entry.CallType}
		stat, ok := totals[k]
		if !ok {
			stat = &apicall.Stat{Provider: entry.Provider, CallType: entry.CallType}
			totals[k] = stat
		}
		stat.Total++
		if !entry.Success {
			stat.Failed++
		}
		elapsed[k] += entry.ResponseTime
	}

	out := make([]apicall.Stat, 0, len(totals))
	for k, stat := range totals {
		stat.AvgResponseMs = float64(elapsed[k].Milliseconds()) / float64(stat.Total)
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Provider != out[j].Provider {
			return out[i].Provider < out[j].Provider
		}
		return out[i].CallType < out[j].CallType
	})
	return out, nil
}

type SyncRunRepository struct {
	mu   sync.RWMutex
	runs []syncrun.Run
}

func NewSyncRunRepository() *SyncRunRepository {
	return &SyncRunRepository{}
}

func (r *SyncRunRepository) Insert(_ context.Context, run syncrun.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs = append(r.runs, run)
	return nil
}

func (r *SyncRunRepository) ListRecent(_ context.Context, jobName string, limit int) ([]syncrun.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]syncrun.Run, 0)
	for i := len(r.runs) - 1; i >= 0; i-- {
		if jobName != "" && r.runs[i].JobName != jobName {
			continue
		}
		out = append(out, r.runs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
