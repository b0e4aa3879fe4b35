package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/scoresync/internal/domain/syncrun"
	qb "github.com/riskibarqy/scoresync/internal/platform/querybuilder"
)

type syncRunTableModel struct {
	JobName        string    `db:"job_name"`
	Status         string    `db:"status"`
	Message        string    `db:"message"`
	ItemsProcessed int       `db:"items_processed"`
	ItemsFailed    int       `db:"items_failed"`
	DurationMs     int64     `db:"duration_ms"`
	StartedAt      time.Time `db:"started_at"`
	TraceID        string    `db:"trace_id"`
	SpanID         string    `db:"span_id"`
}

type syncRunRow struct {
	ID int64 `db:"id"`
	syncRunTableModel
}

type SyncRunRepository struct {
	db *sqlx.DB
}

func NewSyncRunRepository(db *sqlx.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

func (r *SyncRunRepository) Insert(ctx context.Context, run syncrun.Run) error {
	model := syncRunTableModel{
		JobName:        run.JobName,
		Status:         string(run.Status),
		Message:        run.Message,
		ItemsProcessed: run.ItemsProcessed,
		ItemsFailed:    run.ItemsFailed,
		DurationMs:     run.Duration.Milliseconds(),
		StartedAt:      run.StartedAt.UTC(),
		TraceID:        run.TraceID,
		SpanID:         run.SpanID,
	}

	query, args, err := qb.InsertModel("sync_runs", model, "")
	if err != nil {
		return fmt.Errorf("build insert sync run query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert sync run job=%s: %w", run.JobName, err)
	}
	return nil
}

// ListRecent returns the newest runs first; an empty job name lists every job.
func (r *SyncRunRepository) ListRecent(ctx context.Context, jobName string, limit int) ([]syncrun.Run, error) {
	builder := qb.Select("*").From("sync_runs").OrderBy("started_at DESC", "id DESC")
	if jobName != "" {
		builder = builder.Where(qb.Eq("job_name", jobName))
	}
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select sync runs query: %w", err)
	}

	var rows []syncRunRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select sync runs: %w", err)
	}

	out := make([]syncrun.Run, 0, len(rows))
	for _, row := range rows {
		out = append(out, syncrun.Run{
			JobName:        row.JobName,
			Status:         syncrun.Status(row.Status),
			Message:        row.Message,
			ItemsProcessed: row.ItemsProcessed,
			ItemsFailed:    row.ItemsFailed,
			Duration:       time.Duration(row.DurationMs) * time.Millisecond,
			StartedAt:      row.StartedAt.UTC(),
			TraceID:        row.TraceID,
			SpanID:         row.SpanID,
		})
	}
	return out, nil
}
