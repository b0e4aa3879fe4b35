package competition

import "time"

// Competition is a primary provider competition with its current season.
type Competition struct {
	ID              int64
	Code            string
	Name            string
	Emblem          string
	AreaName        string
	Active          bool
	SeasonStart     *time.Time
	SeasonEnd       *time.Time
	CurrentMatchday *int
	TotalMatchdays  *int
	LastUpdatedAt   *time.Time
}

// SeasonEndedBy reports whether the season end date is on or before day.
// An unknown season end counts as ended.
func (c Competition) SeasonEndedBy(day time.Time) bool {
	if c.SeasonEnd == nil {
		return true
	}
	return !DateOnly(*c.SeasonEnd).After(DateOnly(day))
}

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
