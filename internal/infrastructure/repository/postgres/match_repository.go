package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/scoresync/internal/domain/match"
	qb "github.com/riskibarqy/scoresync/internal/platform/querybuilder"
)

const matchUpsertChunkSize = 500

var matchUpsertColumns = []string{
	"competition_id",
	"matchday",
	"stage",
	"kickoff_at",
	"status",
	"finished",
	"home_team_id",
	"home_team_name",
	"home_team_crest",
	"away_team_id",
	"away_team_name",
	"away_team_crest",
	"home_score",
	"away_score",
	"home_score_90",
	"away_score_90",
	"home_extra_time",
	"away_extra_time",
	"home_penalties",
	"away_penalties",
	"winner_team_id",
	"last_updated_at",
}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByExternalIDs(ctx context.Context, ids []int64) (map[int64]match.Match, error) {
	out := make(map[int64]match.Match, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := qb.Select("*").From("matches").
		Where(qb.In("external_id", int64sToAny(ids))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by external ids query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by external ids: %w", err)
	}
	for _, row := range rows {
		out[row.ExternalID] = matchFromRow(row)
	}
	return out, nil
}

// UpsertMany writes items in chunks inside one transaction. A later item wins
// over an earlier one with the same external id.
func (r *MatchRepository) UpsertMany(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	position := make(map[int64]int, len(items))
	models := make([]matchTableModel, 0, len(items))
	for _, item := range items {
		if idx, ok := position[item.ExternalID]; ok {
			models[idx] = matchToRow(item)
			continue
		}
		position[item.ExternalID] = len(models)
		models = append(models, matchToRow(item))
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert matches tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	suffix := qb.OnConflictUpdate([]string{"external_id"}, matchUpsertColumns...)
	for start := 0; start < len(models); start += matchUpsertChunkSize {
		end := min(start+matchUpsertChunkSize, len(models))
		query, args, err := qb.InsertModels("matches", models[start:end], suffix)
		if err != nil {
			return fmt.Errorf("build upsert matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert matches: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert matches tx: %w", err)
	}
	return nil
}

// ApplyScoreUpdate leaves the extended breakdown untouched.
func (r *MatchRepository) ApplyScoreUpdate(ctx context.Context, update match.ScoreUpdate) error {
	query, args, err := qb.Update("matches").
		Set("status", string(update.Status)).
		Set("finished", match.IsFinished(update.Status)).
		Set("home_score", intPtrToNull(update.HomeScore)).
		Set("away_score", intPtrToNull(update.AwayScore)).
		Set("winner_team_id", int64PtrToNull(update.WinnerTeamID)).
		Set("last_updated_at", update.UpdatedAt.UTC()).
		Where(qb.Eq("external_id", update.ExternalID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match score query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match score external_id=%d: %w", update.ExternalID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update match score external_id=%d: no rows affected", update.ExternalID)
	}
	return nil
}

func (r *MatchRepository) ListStale(ctx context.Context, query match.StaleQuery) ([]match.Match, error) {
	builder := qb.Select("*").From("matches").
		Where(
			qb.In("status", statusesToAny(query.Statuses)),
			qb.Gt("kickoff_at", query.KickoffAfter.UTC()),
			qb.Lt("kickoff_at", query.KickoffBefore.UTC()),
		).
		OrderBy("kickoff_at DESC", "external_id")
	if query.Limit > 0 {
		builder = builder.Limit(query.Limit)
	}

	sqlQuery, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select stale matches query: %w", err)
	}
	return r.selectMatches(ctx, "select stale matches", sqlQuery, args)
}

func (r *MatchRepository) ListByCompetitionRange(ctx context.Context, competitionID int64, kickoff match.Range, statuses []match.Status) ([]match.Match, error) {
	conditions := []qb.Condition{
		qb.Eq("competition_id", competitionID),
		qb.Gte("kickoff_at", kickoff.From.UTC()),
		qb.Lt("kickoff_at", kickoff.To.UTC()),
	}
	if len(statuses) > 0 {
		conditions = append(conditions, qb.In("status", statusesToAny(statuses)))
	}

	query, args, err := qb.Select("*").From("matches").
		Where(conditions...).
		OrderBy("kickoff_at", "external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by competition range query: %w", err)
	}
	return r.selectMatches(ctx, "select matches by competition range", query, args)
}

func (r *MatchRepository) ListByCompetitionMatchdays(ctx context.Context, competitionID int64, fromMatchday, toMatchday int) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("competition_id", competitionID),
			qb.Gte("matchday", fromMatchday),
			qb.Lte("matchday", toMatchday),
		).
		OrderBy("matchday", "kickoff_at", "external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by matchdays query: %w", err)
	}
	return r.selectMatches(ctx, "select matches by matchdays", query, args)
}

func (r *MatchRepository) ListUpcoming(ctx context.Context, kickoff match.Range) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("finished", false),
			qb.Gte("kickoff_at", kickoff.From.UTC()),
			qb.Lt("kickoff_at", kickoff.To.UTC()),
		).
		OrderBy("kickoff_at", "external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select upcoming matches query: %w", err)
	}
	return r.selectMatches(ctx, "select upcoming matches", query, args)
}

func (r *MatchRepository) selectMatches(ctx context.Context, op, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func statusesToAny(statuses []match.Status) []any {
	out := make([]any, 0, len(statuses))
	for _, status := range statuses {
		out = append(out, string(status))
	}
	return out
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ExternalID:    row.ExternalID,
		CompetitionID: row.CompetitionID,
		Matchday:      row.Matchday,
		Stage:         row.Stage,
		KickoffAt:     nullTimeToPtr(row.KickoffAt),
		Status:        match.NormalizeStatus(row.Status),
		Finished:      row.Finished,
		HomeTeam:      match.Team{ID: row.HomeTeamID, Name: row.HomeTeamName, Crest: row.HomeTeamCrest},
		AwayTeam:      match.Team{ID: row.AwayTeamID, Name: row.AwayTeamName, Crest: row.AwayTeamCrest},
		HomeScore:     nullInt32ToIntPtr(row.HomeScore),
		AwayScore:     nullInt32ToIntPtr(row.AwayScore),
		Extended: match.ExtendedScore{
			HomeScore90:   nullInt32ToIntPtr(row.HomeScore90),
			AwayScore90:   nullInt32ToIntPtr(row.AwayScore90),
			HomeExtraTime: nullInt32ToIntPtr(row.HomeExtraTime),
			AwayExtraTime: nullInt32ToIntPtr(row.AwayExtraTime),
			HomePenalties: nullInt32ToIntPtr(row.HomePenalties),
			AwayPenalties: nullInt32ToIntPtr(row.AwayPenalties),
		},
		WinnerTeamID:  nullInt64ToPtr(row.WinnerTeamID),
		LastUpdatedAt: row.LastUpdatedAt.UTC(),
	}
}

func matchToRow(item match.Match) matchTableModel {
	return matchTableModel{
		ExternalID:    item.ExternalID,
		CompetitionID: item.CompetitionID,
		Matchday:      item.Matchday,
		Stage:         item.Stage,
		KickoffAt:     timePtrToNull(item.KickoffAt),
		Status:        string(item.Status),
		Finished:      match.IsFinished(item.Status),
		HomeTeamID:    item.HomeTeam.ID,
		HomeTeamName:  item.HomeTeam.Name,
		HomeTeamCrest: item.HomeTeam.Crest,
		AwayTeamID:    item.AwayTeam.ID,
		AwayTeamName:  item.AwayTeam.Name,
		AwayTeamCrest: item.AwayTeam.Crest,
		HomeScore:     intPtrToNull(item.HomeScore),
		AwayScore:     intPtrToNull(item.AwayScore),
		HomeScore90:   intPtrToNull(item.Extended.HomeScore90),
		AwayScore90:   intPtrToNull(item.Extended.AwayScore90),
		HomeExtraTime: intPtrToNull(item.Extended.HomeExtraTime),
		AwayExtraTime: intPtrToNull(item.Extended.AwayExtraTime),
		HomePenalties: intPtrToNull(item.Extended.HomePenalties),
		AwayPenalties: intPtrToNull(item.Extended.AwayPenalties),
		WinnerTeamID:  int64PtrToNull(item.WinnerTeamID),
		LastUpdatedAt: item.LastUpdatedAt.UTC(),
	}
}
