package usecase

import (
	"context"
	"time"
)

// PrimaryProvider is the scheduled source of competitions and matches.
type PrimaryProvider interface {
	FetchCompetition(ctx context.Context, competitionID int64) (ExternalCompetition, error)
	FetchCompetitionMatches(ctx context.Context, competitionID int64) ([]ExternalMatch, error)
	FetchMatch(ctx context.Context, matchID int64) (ExternalMatch, error)
	FetchAccountStatus(ctx context.Context) (ExternalAccountStatus, error)
}

// SecondaryProvider is consulted only to patch matches the primary left behind.
type SecondaryProvider interface {
	FetchSeasonEvents(ctx context.Context, leagueID int64, season string) ([]ExternalSeasonEvent, error)
}

type ExternalCompetition struct {
	ID              int64
	Code            string
	Name            string
	Emblem          string
	AreaName        string
	SeasonStart     *time.Time
	SeasonEnd       *time.Time
	CurrentMatchday *int
}

type ExternalTeam struct {
	ID    int64
	Name  string
	Crest string
}

type ExternalScorePair struct {
	Home *int
	Away *int
}

func (p ExternalScorePair) Known() bool {
	return p.Home != nil && p.Away != nil
}

type ExternalScore struct {
	Winner      string
	Duration    string
	FullTime    ExternalScorePair
	RegularTime ExternalScorePair
	ExtraTime   ExternalScorePair
	Penalties   ExternalScorePair
}

type ExternalMatch struct {
	ID            int64
	CompetitionID int64
	Matchday      *int
	Stage         string
	KickoffAt     *time.Time
	Status        string
	HomeTeam      ExternalTeam
	AwayTeam      ExternalTeam
	Score         ExternalScore
}

type ExternalAccountStatus struct {
	PlanName            string
	RequestsAvailable   *int
	RequestCounterReset *int
	CompetitionsAllowed []string
}

// ExternalSeasonEvent is a secondary provider event. Scores and round are strings there.
type ExternalSeasonEvent struct {
	ID        string
	HomeTeam  string
	AwayTeam  string
	HomeScore *string
	AwayScore *string
	Round     string
	Date      string
	Status    string
}
