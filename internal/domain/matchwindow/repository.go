package matchwindow

import (
	"context"
	"time"
)

type Repository interface {
	ListActive(ctx context.Context, now time.Time) ([]Window, error)
	UpsertMany(ctx context.Context, windows []Window) error
	DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int, error)
}
