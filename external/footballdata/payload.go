package footballdata

import (
	"strings"
	"time"

	"github.com/riskibarqy/scoresync/internal/usecase"
)

type competitionPayload struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Emblem string `json:"emblem"`
	Area   struct {
		Name string `json:"name"`
	} `json:"area"`
	CurrentSeason *seasonPayload `json:"currentSeason"`
}

type seasonPayload struct {
	ID              int64  `json:"id"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	CurrentMatchday *int   `json:"currentMatchday"`
}

type matchesPayload struct {
	Matches []matchPayload `json:"matches"`
}

type matchPayload struct {
	ID          int64  `json:"id"`
	UTCDate     string `json:"utcDate"`
	Status      string `json:"status"`
	Matchday    *int   `json:"matchday"`
	Stage       string `json:"stage"`
	Competition struct {
		ID int64 `json:"id"`
	} `json:"competition"`
	HomeTeam teamPayload  `json:"homeTeam"`
	AwayTeam teamPayload  `json:"awayTeam"`
	Score    scorePayload `json:"score"`
}

type teamPayload struct {
	ID    *int64 `json:"id"`
	Name  string `json:"name"`
	Crest string `json:"crest"`
}

type scorePayload struct {
	Winner      string      `json:"winner"`
	Duration    string      `json:"duration"`
	FullTime    pairPayload `json:"fullTime"`
	RegularTime pairPayload `json:"regularTime"`
	ExtraTime   pairPayload `json:"extraTime"`
	Penalties   pairPayload `json:"penalties"`
}

type pairPayload struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type accountPayload struct {
	Plan         string `json:"plan"`
	Competitions []struct {
		Code string `json:"code"`
	} `json:"competitions"`
}

func (p competitionPayload) toExternal() usecase.ExternalCompetition {
	out := usecase.ExternalCompetition{
		ID:       p.ID,
		Code:     strings.TrimSpace(p.Code),
		Name:     strings.TrimSpace(p.Name),
		Emblem:   strings.TrimSpace(p.Emblem),
		AreaName: strings.TrimSpace(p.Area.Name),
	}
	if p.CurrentSeason != nil {
		out.SeasonStart = parseDate(p.CurrentSeason.StartDate)
		out.SeasonEnd = parseDate(p.CurrentSeason.EndDate)
		out.CurrentMatchday = p.CurrentSeason.CurrentMatchday
	}
	return out
}

func (p matchPayload) toExternal() usecase.ExternalMatch {
	return usecase.ExternalMatch{
		ID:            p.ID,
		CompetitionID: p.Competition.ID,
		Matchday:      p.Matchday,
		Stage:         strings.TrimSpace(p.Stage),
		KickoffAt:     parseDateTime(p.UTCDate),
		Status:        strings.TrimSpace(p.Status),
		HomeTeam:      p.HomeTeam.toExternal(),
		AwayTeam:      p.AwayTeam.toExternal(),
		Score: usecase.ExternalScore{
			Winner:      strings.TrimSpace(p.Score.Winner),
			Duration:    strings.TrimSpace(p.Score.Duration),
			FullTime:    p.Score.FullTime.toExternal(),
			RegularTime: p.Score.RegularTime.toExternal(),
			ExtraTime:   p.Score.ExtraTime.toExternal(),
			Penalties:   p.Score.Penalties.toExternal(),
		},
	}
}

// toExternal leaves the id at zero for placeholder teams of undrawn ties.
func (p teamPayload) toExternal() usecase.ExternalTeam {
	out := usecase.ExternalTeam{Name: strings.TrimSpace(p.Name), Crest: strings.TrimSpace(p.Crest)}
	if p.ID != nil {
		out.ID = *p.ID
	}
	return out
}

func (p pairPayload) toExternal() usecase.ExternalScorePair {
	return usecase.ExternalScorePair{Home: p.Home, Away: p.Away}
}

func parseDateTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	parsed = parsed.UTC()
	return &parsed
}

func parseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil
	}
	return &parsed
}
