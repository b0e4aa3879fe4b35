package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/scoresync/internal/domain/matchwindow"
	qb "github.com/riskibarqy/scoresync/internal/platform/querybuilder"
)

type matchWindowTableModel struct {
	CompetitionID int64     `db:"competition_id"`
	MatchDate     time.Time `db:"match_date"`
	WindowStart   time.Time `db:"window_start"`
	WindowEnd     time.Time `db:"window_end"`
	MatchCount    int       `db:"match_count"`
}

type MatchWindowRepository struct {
	db *sqlx.DB
}

func NewMatchWindowRepository(db *sqlx.DB) *MatchWindowRepository {
	return &MatchWindowRepository{db: db}
}

func (r *MatchWindowRepository) ListActive(ctx context.Context, now time.Time) ([]matchwindow.Window, error) {
	now = now.UTC()
	query, args, err := qb.Select("*").From("match_windows").
		Where(
			qb.Lte("window_start", now),
			qb.Gte("window_end", now),
		).
		OrderBy("match_date", "competition_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active match windows query: %w", err)
	}

	var rows []matchWindowTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select active match windows: %w", err)
	}

	out := make([]matchwindow.Window, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchwindow.Window{
			CompetitionID: row.CompetitionID,
			MatchDate:     row.MatchDate.UTC(),
			Start:         row.WindowStart.UTC(),
			End:           row.WindowEnd.UTC(),
			MatchCount:    row.MatchCount,
		})
	}
	return out, nil
}

func (r *MatchWindowRepository) UpsertMany(ctx context.Context, windows []matchwindow.Window) error {
	if len(windows) == 0 {
		return nil
	}

	models := make([]matchWindowTableModel, 0, len(windows))
	for _, w := range windows {
		models = append(models, matchWindowTableModel{
			CompetitionID: w.CompetitionID,
			MatchDate:     w.MatchDate.UTC(),
			WindowStart:   w.Start.UTC(),
			WindowEnd:     w.End.UTC(),
			MatchCount:    w.MatchCount,
		})
	}

	query, args, err := qb.InsertModels("match_windows", models,
		qb.OnConflictUpdate([]string{"competition_id", "match_date"}, "window_start", "window_end", "match_count"))
	if err != nil {
		return fmt.Errorf("build upsert match windows query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match windows: %w", err)
	}
	return nil
}

func (r *MatchWindowRepository) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	query, args, err := qb.DeleteFrom("match_windows").
		Where(qb.Lt("window_end", cutoff.UTC())).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete ended match windows query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete ended match windows: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted match windows: %w", err)
	}
	return int(affected), nil
}
