package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/scoresync/internal/domain/customcompetition"
	qb "github.com/riskibarqy/scoresync/internal/platform/querybuilder"
)

type customMatchdayKickoffRow struct {
	MatchdayID string       `db:"matchday_id"`
	Number     int          `db:"number"`
	KickoffAt  sql.NullTime `db:"kickoff_at"`
}

type CustomCompetitionRepository struct {
	db *sqlx.DB
}

func NewCustomCompetitionRepository(db *sqlx.DB) *CustomCompetitionRepository {
	return &CustomCompetitionRepository{db: db}
}

func (r *CustomCompetitionRepository) ListMatchdays(ctx context.Context, customCompetitionID string, toNumber int) ([]customcompetition.Matchday, error) {
	query, args, err := qb.Select(
		"md.id AS matchday_id",
		"md.number",
		"cm.kickoff_at",
	).From("custom_competition_matchdays md LEFT JOIN custom_competition_matches cm ON cm.matchday_id = md.id").
		Where(
			qb.Eq("md.custom_competition_id", customCompetitionID),
			qb.Lte("md.number", toNumber),
		).
		OrderBy("md.number", "cm.kickoff_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select custom matchdays query: %w", err)
	}

	var rows []customMatchdayKickoffRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select custom matchdays: %w", err)
	}
	return groupCustomMatchdays(rows), nil
}

// groupCustomMatchdays folds joined rows, already ordered by number, into matchdays.
func groupCustomMatchdays(rows []customMatchdayKickoffRow) []customcompetition.Matchday {
	out := make([]customcompetition.Matchday, 0)
	index := make(map[string]int)
	for _, row := range rows {
		idx, ok := index[row.MatchdayID]
		if !ok {
			idx = len(out)
			index[row.MatchdayID] = idx
			out = append(out, customcompetition.Matchday{ID: row.MatchdayID, Number: row.Number})
		}
		if row.KickoffAt.Valid {
			out[idx].Kickoffs = append(out[idx].Kickoffs, row.KickoffAt.Time.UTC())
		}
	}
	return out
}
