package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/scoresync/internal/domain/apicall"
	qb "github.com/riskibarqy/scoresync/internal/platform/querybuilder"
)

type apiCallTableModel struct {
	Provider       string        `db:"provider"`
	CallType       string        `db:"call_type"`
	CompetitionID  sql.NullInt64 `db:"competition_id"`
	Success        bool          `db:"success"`
	ResponseTimeMs int64         `db:"response_time_ms"`
	CreatedAt      time.Time     `db:"created_at"`
}

type apiCallStatRow struct {
	Provider      string  `db:"provider"`
	CallType      string  `db:"call_type"`
	Total         int     `db:"total"`
	Failed        int     `db:"failed"`
	AvgResponseMs float64 `db:"avg_response_ms"`
}

type APICallRepository struct {
	db *sqlx.DB
}

func NewAPICallRepository(db *sqlx.DB) *APICallRepository {
	return &APICallRepository{db: db}
}

func (r *APICallRepository) Insert(ctx context.Context, entry apicall.Entry) error {
	model := apiCallTableModel{
		Provider:       entry.Provider,
		CallType:       entry.CallType,
		CompetitionID:  int64PtrToNull(entry.CompetitionID),
		Success:        entry.Success,
		ResponseTimeMs: entry.ResponseTime.Milliseconds(),
		CreatedAt:      entry.CreatedAt.UTC(),
	}

	query, args, err := qb.InsertModel("api_calls", model, "")
	if err != nil {
		return fmt.Errorf("build insert api call query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert api call: %w", err)
	}
	return nil
}

func (r *APICallRepository) StatsSince(ctx context.Context, since time.Time) ([]apicall.Stat, error) {
	query, args, err := qb.Select(
		"provider",
		"call_type",
		"COUNT(*) AS total",
		"COUNT(*) FILTER (WHERE NOT success) AS failed",
		"COALESCE(AVG(response_time_ms), 0)::float8 AS avg_response_ms",
	).From("api_calls").
		Where(qb.Gte("created_at", since.UTC())).
		GroupBy("provider", "call_type").
		OrderBy("provider", "call_type").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select api call stats query: %w", err)
	}

	var rows []apiCallStatRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select api call stats: %w", err)
	}

	out := make([]apicall.Stat, 0, len(rows))
	for _, row := range rows {
		out = append(out, apicall.Stat{
			Provider:      row.Provider,
			CallType:      row.CallType,
			Total:         row.Total,
			Failed:        row.Failed,
			AvgResponseMs: row.AvgResponseMs,
		})
	}
	return out, nil
}
