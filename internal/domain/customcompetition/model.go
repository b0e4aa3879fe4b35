package customcompetition

import "time"

// Matchday is one user-defined round with the cached kickoffs of its matches.
// Kickoffs holds only known dates.
type Matchday struct {
	ID       string
	Number   int
	Kickoffs []time.Time
}

// Latest returns the latest known kickoff of the matchday.
func (m Matchday) Latest() (time.Time, bool) {
	var latest time.Time
	for _, k := range m.Kickoffs {
		if k.After(latest) {
			latest = k
		}
	}
	return latest, !latest.IsZero()
}
