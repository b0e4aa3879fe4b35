package apicall

import (
	"context"
	"time"
)

type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	StatsSince(ctx context.Context, since time.Time) ([]Stat, error)
}
