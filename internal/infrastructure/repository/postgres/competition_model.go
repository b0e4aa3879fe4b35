package postgres

import "database/sql"

type competitionTableModel struct {
	ID              int64         `db:"id"`
	Code            string        `db:"code"`
	Name            string        `db:"name"`
	Emblem          string        `db:"emblem"`
	AreaName        string        `db:"area_name"`
	Active          bool          `db:"active"`
	SeasonStart     sql.NullTime  `db:"season_start"`
	SeasonEnd       sql.NullTime  `db:"season_end"`
	CurrentMatchday sql.NullInt32 `db:"current_matchday"`
	TotalMatchdays  sql.NullInt32 `db:"total_matchdays"`
	LastUpdatedAt   sql.NullTime  `db:"last_updated_at"`
}
