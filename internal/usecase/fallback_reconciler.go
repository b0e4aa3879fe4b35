package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/apicall"
	"github.com/riskibarqy/scoresync/internal/domain/competition"
	"github.com/riskibarqy/scoresync/internal/domain/match"
	"github.com/riskibarqy/scoresync/internal/domain/setting"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
	"github.com/riskibarqy/scoresync/internal/platform/pacing"
)

const secondaryFinishedStatus = "Match Finished"

// DefaultFallbackLeagueIDs maps primary competition ids to secondary league ids.
func DefaultFallbackLeagueIDs() map[int64]int64 {
	return map[int64]int64{
		2021: 4328, // Premier League
		2015: 4334, // Ligue 1
		2014: 4335, // La Liga
		2002: 4331, // Bundesliga
		2019: 4332, // Serie A
		2003: 4337, // Eredivisie
		2017: 4344, // Primeira Liga
		2016: 4329, // Championship
		2001: 4480, // Champions League
		2146: 4481, // Europa League
	}
}

type FallbackConfig struct {
	Cooldown       time.Duration
	StaleAfter     time.Duration
	Lookback       time.Duration
	CandidateLimit int
	MaxCalls       int
	// DailyCallLimit caps secondary provider calls per UTC day across runs.
	DailyCallLimit int
	CallDelay      time.Duration
	LeagueIDs      map[int64]int64
}

type FallbackResult struct {
	Patched              int      `json:"patched"`
	Checked              int      `json:"checked"`
	APICalls             int      `json:"api_calls"`
	Skipped              bool     `json:"skipped"`
	SkipReason           string   `json:"skip_reason,omitempty"`
	UnmappedCompetitions []int64  `json:"unmapped_competitions,omitempty"`
	Errors               []string `json:"errors,omitempty"`
}

// FallbackReconciler patches matches the primary provider left pending long
// after kickoff, using the secondary provider's season results.
type FallbackReconciler struct {
	secondary       SecondaryProvider
	matchRepo       match.Repository
	competitionRepo competition.Repository
	lastRuns        LastRunStore
	callLog         apicall.Repository
	audit           *APICallAuditor
	sleeper         pacing.Sleeper
	cfg             FallbackConfig
	logger          *logging.Logger
	now             func() time.Time
}

func NewFallbackReconciler(
	secondary SecondaryProvider,
	matchRepo match.Repository,
	competitionRepo competition.Repository,
	lastRuns LastRunStore,
	callLog apicall.Repository,
	audit *APICallAuditor,
	sleeper pacing.Sleeper,
	cfg FallbackConfig,
	logger *logging.Logger,
) *FallbackReconciler {
	if logger == nil {
		logger = logging.Default()
	}
	if sleeper == nil {
		sleeper = pacing.TimerSleeper{}
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 4 * time.Hour
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = defaultStaleThreshold
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = 14 * 24 * time.Hour
	}
	if cfg.CandidateLimit <= 0 {
		cfg.CandidateLimit = 200
	}
	if cfg.MaxCalls <= 0 {
		cfg.MaxCalls = 10
	}
	if cfg.DailyCallLimit <= 0 {
		cfg.DailyCallLimit = 80
	}
	if cfg.CallDelay <= 0 {
		cfg.CallDelay = 2500 * time.Millisecond
	}
	if len(cfg.LeagueIDs) == 0 {
		cfg.LeagueIDs = DefaultFallbackLeagueIDs()
	}

	return &FallbackReconciler{
		secondary:       secondary,
		matchRepo:       matchRepo,
		competitionRepo: competitionRepo,
		lastRuns:        lastRuns,
		callLog:         callLog,
		audit:           audit,
		sleeper:         sleeper,
		cfg:             cfg,
		logger:          logger.Named("fallback"),
		now:             time.Now,
	}
}

func (s *FallbackReconciler) Run(ctx context.Context) (FallbackResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FallbackReconciler.Run")
	defer span.End()

	if s.secondary == nil {
		return s.skip(ctx, "secondary provider not configured"), nil
	}

	now := s.now().UTC()
	lastRun, err := s.lastRuns.LastRun(ctx, setting.KeyFallbackLastRun)
	if err != nil {
		result := s.skip(ctx, "last run state unavailable")
		result.Errors = append(result.Errors, err.Error())
		return result, nil
	}
	if lastRun != nil {
		if elapsed := now.Sub(*lastRun); elapsed < s.cfg.Cooldown {
			reason := fmt.Sprintf("cooldown: last run %.1fh ago (min %s)", elapsed.Hours(), s.cfg.Cooldown)
			return s.skip(ctx, reason), nil
		}
	}

	usedToday, err := s.callsToday(ctx, now)
	if err != nil {
		result := s.skip(ctx, "daily quota state unavailable")
		result.Errors = append(result.Errors, err.Error())
		return result, nil
	}
	if usedToday >= s.cfg.DailyCallLimit {
		reason := fmt.Sprintf("quota: %d/%d secondary calls used today", usedToday, s.cfg.DailyCallLimit)
		return s.skip(ctx, reason), nil
	}
	budget := min(s.cfg.MaxCalls, s.cfg.DailyCallLimit-usedToday)

	result := FallbackResult{}
	defer s.markRun(ctx, now)

	candidates, err := s.matchRepo.ListStale(ctx, match.StaleQuery{
		KickoffAfter:  now.Add(-s.cfg.Lookback),
		KickoffBefore: now.Add(-s.cfg.StaleAfter),
		Statuses:      []match.Status{match.StatusTimed, match.StatusScheduled},
		Limit:         s.cfg.CandidateLimit,
	})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("list stale matches: %v", err))
		return result, nil
	}
	if len(candidates) == 0 {
		s.logger.InfoContext(ctx, "no stale matches")
		return result, nil
	}

	groups, order := groupByCompetition(candidates)
	competitions, err := s.competitionRepo.GetByIDs(ctx, order)
	if err != nil {
		s.logger.WarnContext(ctx, "load competitions for season lookup failed, estimating seasons", "error", err)
		competitions = map[int64]competition.Competition{}
	}

	events := make(map[string][]ExternalSeasonEvent)
	for _, competitionID := range order {
		leagueID, ok := s.cfg.LeagueIDs[competitionID]
		if !ok {
			result.UnmappedCompetitions = append(result.UnmappedCompetitions, competitionID)
			s.logger.InfoContext(ctx, "competition has no secondary league mapping", "competition_id", competitionID)
			continue
		}

		season := seasonString(competitions[competitionID].SeasonStart, now)
		cacheKey := strconv.FormatInt(leagueID, 10) + ":" + season
		finished, cached := events[cacheKey]
		if !cached {
			if result.APICalls >= budget {
				s.logger.InfoContext(ctx, "secondary call budget exhausted",
					"max_calls", s.cfg.MaxCalls,
					"used_today", usedToday+result.APICalls,
				)
				break
			}
			if result.APICalls > 0 {
				if err := s.sleeper.Sleep(ctx, s.cfg.CallDelay); err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("pacing interrupted: %v", err))
					break
				}
			}

			fetched, err := s.fetchSeason(ctx, competitionID, leagueID, season)
			result.APICalls++
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("competition %d: fetch season %s: %v", competitionID, season, err))
				continue
			}
			finished = finishedEvents(fetched)
			events[cacheKey] = finished
		}

		for _, candidate := range groups[competitionID] {
			result.Checked++
			patched, err := s.reconcile(ctx, candidate, finished, now)
			if err != nil {
				result.Errors = append(result.Errors, err.Error())
				continue
			}
			if patched {
				result.Patched++
			}
		}
	}

	s.logger.InfoContext(ctx, "fallback run finished",
		"patched", result.Patched,
		"checked", result.Checked,
		"api_calls", result.APICalls,
		"errors", len(result.Errors),
	)
	return result, nil
}

// callsToday counts audited secondary provider calls since the start of the UTC day.
func (s *FallbackReconciler) callsToday(ctx context.Context, now time.Time) (int, error) {
	if s.callLog == nil {
		return 0, nil
	}
	stats, err := s.callLog.StatsSince(ctx, competition.DateOnly(now))
	if err != nil {
		return 0, fmt.Errorf("count secondary calls today: %w", err)
	}
	total := 0
	for _, stat := range stats {
		if stat.Provider == apicall.ProviderTheSportsDB {
			total += stat.Total
		}
	}
	return total, nil
}

func (s *FallbackReconciler) fetchSeason(ctx context.Context, competitionID, leagueID int64, season string) ([]ExternalSeasonEvent, error) {
	startedAt := s.now()
	events, err := s.secondary.FetchSeasonEvents(ctx, leagueID, season)
	s.audit.Record(ctx, apicall.ProviderTheSportsDB, apicall.CallTypeSeasonEvents, &competitionID, s.now().Sub(startedAt), err)
	return events, err
}

func (s *FallbackReconciler) reconcile(ctx context.Context, candidate match.Match, finished []ExternalSeasonEvent, now time.Time) (bool, error) {
	event, swapped, ok := findSeasonEvent(candidate, finished)
	if !ok {
		s.logger.DebugContext(ctx, "no secondary event for match",
			"match_id", candidate.ExternalID,
			"matchday", candidate.Matchday,
			"home", candidate.HomeTeam.Name,
			"away", candidate.AwayTeam.Name,
		)
		return false, nil
	}

	home, errHome := strconv.Atoi(strings.TrimSpace(*event.HomeScore))
	away, errAway := strconv.Atoi(strings.TrimSpace(*event.AwayScore))
	if errHome != nil || errAway != nil {
		s.logger.InfoContext(ctx, "skip unparseable secondary score",
			"match_id", candidate.ExternalID,
			"event_id", event.ID,
			"home_score", *event.HomeScore,
			"away_score", *event.AwayScore,
		)
		return false, nil
	}
	if swapped {
		home, away = away, home
	}

	update := match.ScoreUpdate{
		ExternalID:   candidate.ExternalID,
		Status:       match.StatusFinished,
		HomeScore:    &home,
		AwayScore:    &away,
		WinnerTeamID: winnerFromScore(candidate, home, away),
		UpdatedAt:    now,
	}
	if err := s.matchRepo.ApplyScoreUpdate(ctx, update); err != nil {
		return false, fmt.Errorf("update %s vs %s: %w", candidate.HomeTeam.Name, candidate.AwayTeam.Name, err)
	}

	s.logger.InfoContext(ctx, "match patched from secondary provider",
		"match_id", candidate.ExternalID,
		"event_id", event.ID,
		"score", fmt.Sprintf("%d-%d", home, away),
		"swapped", swapped,
	)
	return true, nil
}

func (s *FallbackReconciler) skip(ctx context.Context, reason string) FallbackResult {
	s.logger.InfoContext(ctx, "fallback skipped", "reason", reason)
	return FallbackResult{Skipped: true, SkipReason: reason}
}

func (s *FallbackReconciler) markRun(ctx context.Context, at time.Time) {
	if err := s.lastRuns.MarkRun(ctx, setting.KeyFallbackLastRun, at); err != nil {
		s.logger.WarnContext(ctx, "update fallback last run failed", "error", err)
	}
}

// findSeasonEvent matches on round first, then team names in either orientation.
// swapped is true when the secondary provider lists the fixture the other way round.
func findSeasonEvent(candidate match.Match, events []ExternalSeasonEvent) (event ExternalSeasonEvent, swapped bool, ok bool) {
	round := strconv.Itoa(candidate.Matchday)
	var reversed *ExternalSeasonEvent
	for i := range events {
		ev := events[i]
		if strings.TrimSpace(ev.Round) != round {
			continue
		}
		if TeamNamesMatch(candidate.HomeTeam.Name, ev.HomeTeam) && TeamNamesMatch(candidate.AwayTeam.Name, ev.AwayTeam) {
			return ev, false, true
		}
		if reversed == nil && TeamNamesMatch(candidate.HomeTeam.Name, ev.AwayTeam) && TeamNamesMatch(candidate.AwayTeam.Name, ev.HomeTeam) {
			reversed = &events[i]
		}
	}
	if reversed != nil {
		return *reversed, true, true
	}
	return ExternalSeasonEvent{}, false, false
}

func finishedEvents(events []ExternalSeasonEvent) []ExternalSeasonEvent {
	out := make([]ExternalSeasonEvent, 0, len(events))
	for _, ev := range events {
		if strings.TrimSpace(ev.Status) != secondaryFinishedStatus {
			continue
		}
		if ev.HomeScore == nil || ev.AwayScore == nil {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// groupByCompetition keeps the first-seen order of competitions.
func groupByCompetition(matches []match.Match) (map[int64][]match.Match, []int64) {
	groups := make(map[int64][]match.Match)
	order := make([]int64, 0)
	for _, m := range matches {
		if _, ok := groups[m.CompetitionID]; !ok {
			order = append(order, m.CompetitionID)
		}
		groups[m.CompetitionID] = append(groups[m.CompetitionID], m)
	}
	return groups, order
}

// seasonString returns "YYYY-YYYY". Without a known season start, seasons
// are assumed to begin in August.
func seasonString(seasonStart *time.Time, now time.Time) string {
	year := now.Year()
	if seasonStart != nil {
		year = seasonStart.Year()
	} else if now.Month() < time.August {
		year--
	}
	return fmt.Sprintf("%d-%d", year, year+1)
}

func winnerFromScore(m match.Match, home, away int) *int64 {
	var id int64
	switch {
	case home > away:
		id = m.HomeTeam.ID
	case away > home:
		id = m.AwayTeam.ID
	}
	if id <= 0 {
		return nil
	}
	return &id
}
