package matchwindow

import "time"

// Window brackets the kickoffs of one competition on one UTC date.
type Window struct {
	CompetitionID int64
	MatchDate     time.Time
	Start         time.Time
	End           time.Time
	MatchCount    int
}

// Contains reports whether t lies within [Start, End].
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
