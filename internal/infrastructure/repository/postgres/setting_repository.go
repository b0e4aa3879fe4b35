package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/scoresync/internal/platform/querybuilder"
)

type settingTableModel struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

type SettingRepository struct {
	db *sqlx.DB
}

func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := qb.Select("*").From("settings").
		Where(qb.Eq("key", key)).
		Limit(1).
		ToSQL()
	if err != nil {
		return "", false, fmt.Errorf("build select setting query: %w", err)
	}

	var row settingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select setting key=%s: %w", key, err)
	}
	return row.Value, true, nil
}

func (r *SettingRepository) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	query, args, err := qb.Select("*").From("settings").
		Where(qb.In("key", stringsToAny(keys))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select settings query: %w", err)
	}

	var rows []settingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select settings: %w", err)
	}
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (r *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	model := settingTableModel{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	query, args, err := qb.InsertModel("settings", model, qb.OnConflictUpdate([]string{"key"}, "value", "updated_at"))
	if err != nil {
		return fmt.Errorf("build upsert setting query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert setting key=%s: %w", key, err)
	}
	return nil
}
