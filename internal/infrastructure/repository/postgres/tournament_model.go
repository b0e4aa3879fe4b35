package postgres

import (
	"database/sql"
	"time"
)

type tournamentTableModel struct {
	ID                  string         `db:"id"`
	Name                string         `db:"name"`
	CompetitionID       sql.NullInt64  `db:"competition_id"`
	CustomCompetitionID sql.NullString `db:"custom_competition_id"`
	StartingMatchday    int            `db:"starting_matchday"`
	EndingMatchday      int            `db:"ending_matchday"`
	EndingDate          sql.NullTime   `db:"ending_date"`
	AllMatchdays        bool           `db:"all_matchdays"`
	Status              string         `db:"status"`
	UpdatedAt           time.Time      `db:"updated_at"`
}
