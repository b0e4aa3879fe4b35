package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/match"
)

const (
	winnerHomeTeam = "HOME_TEAM"
	winnerAwayTeam = "AWAY_TEAM"

	regularSeasonStageKey = "REGULAR_SEASON"
	knockoutMatchdayKey   = "KO"
)

// mapExternalMatch builds the stored form of a fetched match, including the
// extended score breakdown once the match is finished.
func mapExternalMatch(ext ExternalMatch, competitionID int64, now time.Time) match.Match {
	status := match.NormalizeStatus(ext.Status)
	matchday := 1
	if ext.Matchday != nil {
		matchday = *ext.Matchday
	}

	item := match.Match{
		ExternalID:    ext.ID,
		CompetitionID: competitionID,
		Matchday:      matchday,
		Stage:         strings.TrimSpace(ext.Stage),
		KickoffAt:     ext.KickoffAt,
		Status:        status,
		Finished:      match.IsFinished(status),
		HomeTeam:      match.Team{ID: ext.HomeTeam.ID, Name: ext.HomeTeam.Name, Crest: ext.HomeTeam.Crest},
		AwayTeam:      match.Team{ID: ext.AwayTeam.ID, Name: ext.AwayTeam.Name, Crest: ext.AwayTeam.Crest},
		HomeScore:     ext.Score.FullTime.Home,
		AwayScore:     ext.Score.FullTime.Away,
		WinnerTeamID:  resolveWinnerTeamID(ext),
		LastUpdatedAt: now,
	}
	if item.Finished {
		item.Extended = extendedScore(ext.Score)
	}
	return item
}

func extendedScore(score ExternalScore) match.ExtendedScore {
	var out match.ExtendedScore
	duration := strings.ToUpper(strings.TrimSpace(score.Duration))
	if duration == "" || duration == match.DurationRegular {
		out.HomeScore90 = score.FullTime.Home
		out.AwayScore90 = score.FullTime.Away
		return out
	}

	ninety := score.FullTime
	if score.RegularTime.Known() {
		ninety = score.RegularTime
	}
	out.HomeScore90 = ninety.Home
	out.AwayScore90 = ninety.Away
	if score.ExtraTime.Known() {
		out.HomeExtraTime = score.ExtraTime.Home
		out.AwayExtraTime = score.ExtraTime.Away
	}
	if score.Penalties.Known() {
		out.HomePenalties = score.Penalties.Home
		out.AwayPenalties = score.Penalties.Away
	}
	return out
}

// liveScoreUpdate is the realtime patch: status, full-time score and winner only.
func liveScoreUpdate(ext ExternalMatch, now time.Time) match.ScoreUpdate {
	return match.ScoreUpdate{
		ExternalID:   ext.ID,
		Status:       match.NormalizeStatus(ext.Status),
		HomeScore:    ext.Score.FullTime.Home,
		AwayScore:    ext.Score.FullTime.Away,
		WinnerTeamID: resolveWinnerTeamID(ext),
		UpdatedAt:    now,
	}
}

func resolveWinnerTeamID(ext ExternalMatch) *int64 {
	switch strings.ToUpper(strings.TrimSpace(ext.Score.Winner)) {
	case winnerHomeTeam:
		if ext.HomeTeam.ID > 0 {
			id := ext.HomeTeam.ID
			return &id
		}
	case winnerAwayTeam:
		if ext.AwayTeam.ID > 0 {
			id := ext.AwayTeam.ID
			return &id
		}
	}
	return nil
}

// countMatchdays counts distinct (stage, matchday) pairs. League matches
// without a stage group under REGULAR_SEASON; single-leg ties without a
// matchday group under KO.
func countMatchdays(matches []ExternalMatch) int {
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		stage := strings.TrimSpace(m.Stage)
		if stage == "" {
			stage = regularSeasonStageKey
		}
		day := knockoutMatchdayKey
		if m.Matchday != nil {
			day = strconv.Itoa(*m.Matchday)
		}
		seen[stage+"|"+day] = struct{}{}
	}
	return len(seen)
}
