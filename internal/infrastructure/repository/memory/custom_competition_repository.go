package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/scoresync/internal/domain/customcompetition"
)

type CustomCompetitionRepository struct {
	mu        sync.RWMutex
	matchdays map[string][]customcompetition.Matchday
}

func NewCustomCompetitionRepository(matchdays map[string][]customcompetition.Matchday) *CustomCompetitionRepository {
	if matchdays == nil {
		matchdays = make(map[string][]customcompetition.Matchday)
	}
	return &CustomCompetitionRepository{matchdays: matchdays}
}

func (r *CustomCompetitionRepository) ListMatchdays(_ context.Context, customCompetitionID string, toNumber int) ([]customcompetition.Matchday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]customcompetition.Matchday, 0)
	for _, item := range r.matchdays[customCompetitionID] {
		if item.Number <= toNumber {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}
