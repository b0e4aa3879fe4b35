package competition

import (
	"context"
	"time"
)

type Repository interface {
	// ListSyncable returns active competitions whose season end is unknown or on/after today.
	ListSyncable(ctx context.Context, today time.Time) ([]Competition, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]Competition, error)
	UpdateMetadata(ctx context.Context, item Competition) error
	UpdateTotalMatchdays(ctx context.Context, id int64, total int) error
}
