package durationevent

import "context"

type Repository interface {
	Insert(ctx context.Context, event Event) error
	ListByTournament(ctx context.Context, tournamentID string, limit int) ([]Event, error)
}
