package match

import (
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusTimed     Status = "TIMED"
	StatusInPlay    Status = "IN_PLAY"
	StatusPaused    Status = "PAUSED"
	StatusFinished  Status = "FINISHED"
	StatusPostponed Status = "POSTPONED"
	StatusSuspended Status = "SUSPENDED"
	StatusCancelled Status = "CANCELLED"
)

// Duration tags reported with a finished score.
const (
	DurationRegular         = "REGULAR"
	DurationExtraTime       = "EXTRA_TIME"
	DurationPenaltyShootout = "PENALTY_SHOOTOUT"
)

func NormalizeStatus(value string) Status {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))
	if status == "" {
		return StatusScheduled
	}
	return status
}

// IsPending reports statuses where the provider has not yet seen a kickoff.
func IsPending(status Status) bool {
	return status == StatusScheduled || status == StatusTimed
}

func IsLive(status Status) bool {
	return status == StatusInPlay || status == StatusPaused
}

func IsFinished(status Status) bool {
	return status == StatusFinished
}

type Team struct {
	ID    int64
	Name  string
	Crest string
}

// Match is an imported fixture keyed by the primary provider's match id.
type Match struct {
	ExternalID    int64
	CompetitionID int64
	Matchday      int
	Stage         string
	KickoffAt     *time.Time
	Status        Status
	Finished      bool
	HomeTeam      Team
	AwayTeam      Team
	HomeScore     *int
	AwayScore     *int
	Extended      ExtendedScore
	WinnerTeamID  *int64
	LastUpdatedAt time.Time
}

// ExtendedScore holds the breakdown kept for matches decided after regulation.
type ExtendedScore struct {
	HomeScore90   *int
	AwayScore90   *int
	HomeExtraTime *int
	AwayExtraTime *int
	HomePenalties *int
	AwayPenalties *int
}

// ScoreUpdate patches status and score of a stored match.
// Finished is derived from Status by the repository.
type ScoreUpdate struct {
	ExternalID   int64
	Status       Status
	HomeScore    *int
	AwayScore    *int
	WinnerTeamID *int64
	UpdatedAt    time.Time
}

// Range is a half-open kickoff interval [From, To).
type Range struct {
	From time.Time
	To   time.Time
}

type StaleQuery struct {
	KickoffAfter  time.Time
	KickoffBefore time.Time
	Statuses      []Status
	Limit         int
}
