package apicall

import "time"

const (
	ProviderFootballData = "football-data"
	ProviderTheSportsDB  = "thesportsdb"
)

const (
	CallTypeCompetition  = "competition"
	CallTypeMatches      = "matches"
	CallTypeMatch        = "match"
	CallTypeAccount      = "account"
	CallTypeSeasonEvents = "season_events"
)

// Entry is one audited provider call. Entries are append-only.
type Entry struct {
	Provider      string
	CallType      string
	CompetitionID *int64
	Success       bool
	ResponseTime  time.Duration
	CreatedAt     time.Time
}

// Stat aggregates entries per provider and call type.
type Stat struct {
	Provider      string
	CallType      string
	Total         int
	Failed        int
	AvgResponseMs float64
}
