package durationevent

import "time"

const EventTypeRecalculation = "recalculation"

// Event records one ending-date recalculation. Events are never updated.
type Event struct {
	ID                     int64
	TournamentID           string
	EventType              string
	PreviousEndingMatchday *int
	NewEndingMatchday      *int
	PreviousEndingDate     *time.Time
	NewEndingDate          *time.Time
	Reason                 string
	EstimationUsed         bool
	EstimationDetails      string
	CreatedAt              time.Time
}
