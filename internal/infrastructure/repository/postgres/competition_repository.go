package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/scoresync/internal/domain/competition"
	qb "github.com/riskibarqy/scoresync/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) ListSyncable(ctx context.Context, today time.Time) ([]competition.Competition, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(
			qb.Eq("active", true),
			qb.Or(
				qb.IsNull("season_end"),
				qb.Gte("season_end", competition.DateOnly(today)),
			),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select syncable competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select syncable competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competitionFromRow(row))
	}
	return out, nil
}

func (r *CompetitionRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]competition.Competition, error) {
	out := make(map[int64]competition.Competition, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := qb.Select("*").From("competitions").
		Where(qb.In("id", int64sToAny(ids))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select competitions by ids query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select competitions by ids: %w", err)
	}
	for _, row := range rows {
		out[row.ID] = competitionFromRow(row)
	}
	return out, nil
}

func (r *CompetitionRepository) UpdateMetadata(ctx context.Context, item competition.Competition) error {
	query, args, err := qb.Update("competitions").
		Set("code", item.Code).
		Set("name", item.Name).
		Set("emblem", item.Emblem).
		Set("area_name", item.AreaName).
		Set("season_start", timePtrToNull(item.SeasonStart)).
		Set("season_end", timePtrToNull(item.SeasonEnd)).
		Set("current_matchday", intPtrToNull(item.CurrentMatchday)).
		Set("last_updated_at", timePtrToNull(item.LastUpdatedAt)).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update competition metadata query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update competition metadata id=%d: %w", item.ID, err)
	}
	return nil
}

func (r *CompetitionRepository) UpdateTotalMatchdays(ctx context.Context, id int64, total int) error {
	query, args, err := qb.Update("competitions").
		Set("total_matchdays", total).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update competition total matchdays query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update competition total matchdays id=%d: %w", id, err)
	}
	return nil
}

func competitionFromRow(row competitionTableModel) competition.Competition {
	return competition.Competition{
		ID:              row.ID,
		Code:            row.Code,
		Name:            row.Name,
		Emblem:          row.Emblem,
		AreaName:        row.AreaName,
		Active:          row.Active,
		SeasonStart:     nullTimeToPtr(row.SeasonStart),
		SeasonEnd:       nullTimeToPtr(row.SeasonEnd),
		CurrentMatchday: nullInt32ToIntPtr(row.CurrentMatchday),
		TotalMatchdays:  nullInt32ToIntPtr(row.TotalMatchdays),
		LastUpdatedAt:   nullTimeToPtr(row.LastUpdatedAt),
	}
}
