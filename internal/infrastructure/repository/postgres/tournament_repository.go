package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/scoresync/internal/domain/tournament"
	qb "github.com/riskibarqy/scoresync/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) GetByID(ctx context.Context, id string) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select("*").From("tournaments").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build select tournament by id query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("select tournament by id: %w", err)
	}
	return tournamentFromRow(row), true, nil
}

func (r *TournamentRepository) ListActive(ctx context.Context) ([]tournament.Tournament, error) {
	query, args, err := qb.Select("*").From("tournaments").
		Where(qb.Eq("status", string(tournament.StatusActive))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active tournaments query: %w", err)
	}
	return r.selectTournaments(ctx, "select active tournaments", query, args)
}

func (r *TournamentRepository) ListActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]tournament.Tournament, error) {
	query, args, err := qb.Select("*").From("tournaments").
		Where(
			qb.Eq("status", string(tournament.StatusActive)),
			qb.IsNotNull("ending_date"),
			qb.Lt("ending_date", cutoff.UTC()),
		).
		OrderBy("ending_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select ended tournaments query: %w", err)
	}
	return r.selectTournaments(ctx, "select ended tournaments", query, args)
}

// MarkCompleted only moves active tournaments.
func (r *TournamentRepository) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	query, args, err := qb.Update("tournaments").
		Set("status", string(tournament.StatusCompleted)).
		Set("updated_at", at.UTC()).
		Where(
			qb.Eq("id", id),
			qb.Eq("status", string(tournament.StatusActive)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build complete tournament query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("complete tournament id=%s: %w", id, err)
	}
	return nil
}

func (r *TournamentRepository) UpdateEndingDate(ctx context.Context, id string, endingDate *time.Time, at time.Time) error {
	query, args, err := qb.Update("tournaments").
		Set("ending_date", timePtrToNull(endingDate)).
		Set("updated_at", at.UTC()).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update tournament ending date query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update tournament ending date id=%s: %w", id, err)
	}
	return nil
}

func (r *TournamentRepository) selectTournaments(ctx context.Context, op, query string, args []any) ([]tournament.Tournament, error) {
	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournamentFromRow(row))
	}
	return out, nil
}

func tournamentFromRow(row tournamentTableModel) tournament.Tournament {
	return tournament.Tournament{
		ID:                  row.ID,
		Name:                row.Name,
		CompetitionID:       nullInt64ToPtr(row.CompetitionID),
		CustomCompetitionID: nullStringToPtr(row.CustomCompetitionID),
		StartingMatchday:    row.StartingMatchday,
		EndingMatchday:      row.EndingMatchday,
		EndingDate:          nullTimeToPtr(row.EndingDate),
		AllMatchdays:        row.AllMatchdays,
		Status:              tournament.Status(row.Status),
		UpdatedAt:           row.UpdatedAt.UTC(),
	}
}
