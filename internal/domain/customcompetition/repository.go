package customcompetition

import "context"

type Repository interface {
	// ListMatchdays returns matchdays ordered by number, up to and including toNumber.
	ListMatchdays(ctx context.Context, customCompetitionID string, toNumber int) ([]Matchday, error)
}
