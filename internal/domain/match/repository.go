package match

import "context"

type Repository interface {
	GetByExternalIDs(ctx context.Context, ids []int64) (map[int64]Match, error)
	UpsertMany(ctx context.Context, items []Match) error
	ApplyScoreUpdate(ctx context.Context, update ScoreUpdate) error
	// ListStale returns pending matches in the kickoff range, most recent kickoff first.
	ListStale(ctx context.Context, query StaleQuery) ([]Match, error)
	ListByCompetitionRange(ctx context.Context, competitionID int64, kickoff Range, statuses []Status) ([]Match, error)
	ListByCompetitionMatchdays(ctx context.Context, competitionID int64, fromMatchday, toMatchday int) ([]Match, error)
	ListUpcoming(ctx context.Context, kickoff Range) ([]Match, error)
}
