package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ExternalID    int64         `db:"external_id"`
	CompetitionID int64         `db:"competition_id"`
	Matchday      int           `db:"matchday"`
	Stage         string        `db:"stage"`
	KickoffAt     sql.NullTime  `db:"kickoff_at"`
	Status        string        `db:"status"`
	Finished      bool          `db:"finished"`
	HomeTeamID    int64         `db:"home_team_id"`
	HomeTeamName  string        `db:"home_team_name"`
	HomeTeamCrest string        `db:"home_team_crest"`
	AwayTeamID    int64         `db:"away_team_id"`
	AwayTeamName  string        `db:"away_team_name"`
	AwayTeamCrest string        `db:"away_team_crest"`
	HomeScore     sql.NullInt32 `db:"home_score"`
	AwayScore     sql.NullInt32 `db:"away_score"`
	HomeScore90   sql.NullInt32 `db:"home_score_90"`
	AwayScore90   sql.NullInt32 `db:"away_score_90"`
	HomeExtraTime sql.NullInt32 `db:"home_extra_time"`
	AwayExtraTime sql.NullInt32 `db:"away_extra_time"`
	HomePenalties sql.NullInt32 `db:"home_penalties"`
	AwayPenalties sql.NullInt32 `db:"away_penalties"`
	WinnerTeamID  sql.NullInt64 `db:"winner_team_id"`
	LastUpdatedAt time.Time     `db:"last_updated_at"`
}
