package tournament

import (
	"context"
	"time"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (Tournament, bool, error)
	ListActive(ctx context.Context) ([]Tournament, error)
	// ListActiveEndedBefore returns active tournaments with a non-null ending date before cutoff.
	ListActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]Tournament, error)
	MarkCompleted(ctx context.Context, id string, at time.Time) error
	UpdateEndingDate(ctx context.Context, id string, endingDate *time.Time, at time.Time) error
}
