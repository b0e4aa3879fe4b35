package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/scoresync/internal/domain/durationevent"
	qb "github.com/riskibarqy/scoresync/internal/platform/querybuilder"
)

type durationEventTableModel struct {
	TournamentID           string        `db:"tournament_id"`
	EventType              string        `db:"event_type"`
	PreviousEndingMatchday sql.NullInt32 `db:"previous_ending_matchday"`
	NewEndingMatchday      sql.NullInt32 `db:"new_ending_matchday"`
	PreviousEndingDate     sql.NullTime  `db:"previous_ending_date"`
	NewEndingDate          sql.NullTime  `db:"new_ending_date"`
	Reason                 string        `db:"reason"`
	EstimationUsed         bool          `db:"estimation_used"`
	EstimationDetails      string        `db:"estimation_details"`
	CreatedAt              time.Time     `db:"created_at"`
}

type durationEventRow struct {
	ID int64 `db:"id"`
	durationEventTableModel
}

type DurationEventRepository struct {
	db *sqlx.DB
}

func NewDurationEventRepository(db *sqlx.DB) *DurationEventRepository {
	return &DurationEventRepository{db: db}
}

func (r *DurationEventRepository) Insert(ctx context.Context, event durationevent.Event) error {
	model := durationEventTableModel{
		TournamentID:           event.TournamentID,
		EventType:              event.EventType,
		PreviousEndingMatchday: intPtrToNull(event.PreviousEndingMatchday),
		NewEndingMatchday:      intPtrToNull(event.NewEndingMatchday),
		PreviousEndingDate:     timePtrToNull(event.PreviousEndingDate),
		NewEndingDate:          timePtrToNull(event.NewEndingDate),
		Reason:                 event.Reason,
		EstimationUsed:         event.EstimationUsed,
		EstimationDetails:      event.EstimationDetails,
		CreatedAt:              event.CreatedAt.UTC(),
	}

	query, args, err := qb.InsertModel("tournament_duration_events", model, "")
	if err != nil {
		return fmt.Errorf("build insert duration event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert duration event tournament_id=%s: %w", event.TournamentID, err)
	}
	return nil
}

func (r *DurationEventRepository) ListByTournament(ctx context.Context, tournamentID string, limit int) ([]durationevent.Event, error) {
	builder := qb.Select("*").From("tournament_duration_events").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select duration events query: %w", err)
	}

	var rows []durationEventRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select duration events: %w", err)
	}

	out := make([]durationevent.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, durationevent.Event{
			ID:                     row.ID,
			TournamentID:           row.TournamentID,
			EventType:              row.EventType,
			PreviousEndingMatchday: nullInt32ToIntPtr(row.PreviousEndingMatchday),
			NewEndingMatchday:      nullInt32ToIntPtr(row.NewEndingMatchday),
			PreviousEndingDate:     nullTimeToPtr(row.PreviousEndingDate),
			NewEndingDate:          nullTimeToPtr(row.NewEndingDate),
			Reason:                 row.Reason,
			EstimationUsed:         row.EstimationUsed,
			EstimationDetails:      row.EstimationDetails,
			CreatedAt:              row.CreatedAt.UTC(),
		})
	}
	return out, nil
}
