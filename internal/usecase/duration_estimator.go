package usecase

import (
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/customcompetition"
	"github.com/riskibarqy/scoresync/internal/domain/match"
)

const (
	reasonEndingMatchdayNotFound = "ending matchday not found"
	reasonNoMatches              = "no matches"
	reasonNotEnoughData          = "not enough data"
)

var knockoutStages = map[string]struct{}{
	"LAST_32":        {},
	"ROUND_OF_16":    {},
	"QUARTER_FINALS": {},
	"SEMI_FINALS":    {},
	"FINAL":          {},
	"THIRD_PLACE":    {},
	"PLAYOFFS":       {},
}

// DurationEstimate is the computed ending date of a tournament.
// EndingDate is nil when there was not enough data to estimate.
type DurationEstimate struct {
	EndingDate        *time.Time `json:"ending_date"`
	EndingMatchday    int        `json:"ending_matchday"`
	EstimationUsed    bool       `json:"estimation_used"`
	EstimationDetails string     `json:"estimation_details,omitempty"`
}

func unknownEstimate(endingMatchday int, reason string) DurationEstimate {
	return DurationEstimate{EndingMatchday: endingMatchday, EstimationUsed: true, EstimationDetails: reason}
}

func exactEstimate(endingMatchday int, at time.Time) DurationEstimate {
	at = at.UTC()
	return DurationEstimate{EndingDate: &at, EndingMatchday: endingMatchday}
}

func isKnockoutCompetition(matches []match.Match) bool {
	for _, item := range matches {
		if _, ok := knockoutStages[item.Stage]; ok {
			return true
		}
	}
	return false
}

// EstimateCompetitionEnding computes the ending date from the matches of
// matchdays [startingMatchday, endingMatchday] of a standard competition.
func EstimateCompetitionEnding(matches []match.Match, endingMatchday int) DurationEstimate {
	if len(matches) == 0 {
		return unknownEstimate(endingMatchday, reasonNoMatches)
	}
	if isKnockoutCompetition(matches) {
		return estimateKnockoutEnding(matches, endingMatchday)
	}
	return estimateLeagueEnding(matches, endingMatchday)
}

func estimateLeagueEnding(matches []match.Match, endingMatchday int) DurationEstimate {
	latestByMatchday := make(map[int]time.Time)
	for _, item := range matches {
		if item.KickoffAt == nil {
			continue
		}
		if current, ok := latestByMatchday[item.Matchday]; !ok || item.KickoffAt.After(current) {
			latestByMatchday[item.Matchday] = *item.KickoffAt
		}
	}

	if latest, ok := latestByMatchday[endingMatchday]; ok {
		return exactEstimate(endingMatchday, latest)
	}

	matchdays := make([]int, 0, len(latestByMatchday))
	for day := range latestByMatchday {
		matchdays = append(matchdays, day)
	}
	sort.Ints(matchdays)

	points := make([]datedPoint, 0, len(matchdays))
	for _, day := range matchdays {
		points = append(points, datedPoint{number: day, first: latestByMatchday[day], last: latestByMatchday[day]})
	}
	return projectEnding(points, endingMatchday, "matchday")
}

func estimateKnockoutEnding(matches []match.Match, endingMatchday int) DurationEstimate {
	var (
		latest time.Time
		dated  int
		total  int
	)
	for _, item := range matches {
		if item.Matchday > endingMatchday {
			continue
		}
		total++
		if item.KickoffAt == nil {
			continue
		}
		dated++
		if item.KickoffAt.After(latest) {
			latest = *item.KickoffAt
		}
	}
	if total > 0 && dated == total {
		return exactEstimate(endingMatchday, latest)
	}

	type stageSpan struct {
		matchday    int
		first, last time.Time
		complete    bool
	}
	stages := make(map[string]*stageSpan)
	order := make([]string, 0)
	for _, item := range matches {
		if item.Stage == "" {
			continue
		}
		span, ok := stages[item.Stage]
		if !ok {
			span = &stageSpan{matchday: item.Matchday, complete: true}
			stages[item.Stage] = span
			order = append(order, item.Stage)
		}
		if item.KickoffAt == nil {
			span.complete = false
			continue
		}
		if span.first.IsZero() || item.KickoffAt.Before(span.first) {
			span.first = *item.KickoffAt
		}
		if item.KickoffAt.After(span.last) {
			span.last = *item.KickoffAt
		}
	}

	points := make([]datedPoint, 0, len(order))
	for _, stage := range order {
		span := stages[stage]
		if !span.complete || span.last.IsZero() {
			continue
		}
		points = append(points, datedPoint{number: span.matchday, first: span.first, last: span.last})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].number < points[j].number })
	return projectEnding(points, endingMatchday, "stage")
}

// EstimateCustomEnding computes the ending date of a custom competition from its
// matchdays up to and including endingMatchday.
func EstimateCustomEnding(matchdays []customcompetition.Matchday, endingMatchday int) DurationEstimate {
	var ending *customcompetition.Matchday
	for i := range matchdays {
		if matchdays[i].Number == endingMatchday {
			ending = &matchdays[i]
			break
		}
	}
	if ending == nil {
		return unknownEstimate(endingMatchday, reasonEndingMatchdayNotFound)
	}
	if latest, ok := ending.Latest(); ok {
		return exactEstimate(endingMatchday, latest)
	}

	sorted := append([]customcompetition.Matchday(nil), matchdays...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	points := make([]datedPoint, 0, len(sorted))
	for _, day := range sorted {
		if day.Number > endingMatchday {
			continue
		}
		latest, ok := day.Latest()
		if !ok {
			continue
		}
		points = append(points, datedPoint{number: day.Number, first: latest, last: latest})
	}
	return projectEnding(points, endingMatchday, "matchday")
}

// datedPoint is a matchday or stage with known kickoffs, ordered by number.
type datedPoint struct {
	number      int
	first, last time.Time
}

// projectEnding averages the gaps between consecutive points (next first minus
// previous last) and extends the last known date by that average per remaining matchday.
func projectEnding(points []datedPoint, endingMatchday int, unit string) DurationEstimate {
	if len(points) < 2 {
		return unknownEstimate(endingMatchday, reasonNotEnoughData)
	}

	var total time.Duration
	for i := 1; i < len(points); i++ {
		total += points[i].first.Sub(points[i-1].last)
	}
	intervals := len(points) - 1
	average := total / time.Duration(intervals)

	lastKnown := points[len(points)-1]
	remaining := endingMatchday - lastKnown.number
	estimated := lastKnown.last.Add(average * time.Duration(remaining)).UTC()

	details := fmt.Sprintf("estimated from %d %s intervals (average %.1f days)", intervals, unit, average.Hours()/24)

	return DurationEstimate{
		EndingDate:        &estimated,
		EndingMatchday:    endingMatchday,
		EstimationUsed:    true,
		EstimationDetails: details,
	}
}
