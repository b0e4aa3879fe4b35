package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/syncrun"
	syncrunmock "github.com/riskibarqy/scoresync/internal/mocks/domain/syncrun"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestSyncRunService_RecordFillsDurationAndObserves(t *testing.T) {
	t.Parallel()

	startedAt := time.Date(2026, 10, 16, 6, 0, 0, 0, time.UTC)
	repo := syncrunmock.NewRepository(t)
	repo.
		On("Insert", mock.Anything, mock.MatchedBy(func(r syncrun.Run) bool {
			return r.JobName == syncrun.JobPrimarySync && r.Duration == 42*time.Second
		})).
		Return(errors.New("insert failed")).
		Once()

	metrics := &recordingMetrics{}
	svc := NewSyncRunService(repo, metrics, logging.NewNop())
	svc.now = fixedClock(startedAt.Add(42 * time.Second))

	svc.Record(context.Background(), syncrun.Run{
		JobName:        syncrun.JobPrimarySync,
		Status:         syncrun.StatusFor(5, 1),
		ItemsProcessed: 5,
		ItemsFailed:    1,
		StartedAt:      startedAt,
	})
	if len(metrics.runs) != 1 || metrics.runs[0] != "primary_sync/partial" {
		t.Fatalf("unexpected run metrics: %v", metrics.runs)
	}
}

func TestSyncRunService_ListRecentDefaultsLimit(t *testing.T) {
	t.Parallel()

	repo := syncrunmock.NewRepository(t)
	repo.On("ListRecent", mock.Anything, "fallback", 50).Return([]syncrun.Run{{JobName: "fallback"}}, nil).Once()

	svc := NewSyncRunService(repo, nil, logging.NewNop())
	got, err := svc.ListRecent(context.Background(), " fallback ", 0)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected run count: got=%d want=1", len(got))
	}
}
