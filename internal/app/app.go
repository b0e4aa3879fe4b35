package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/scoresync/external/footballdata"
	"github.com/riskibarqy/scoresync/external/thesportsdb"
	"github.com/riskibarqy/scoresync/internal/config"
	"github.com/riskibarqy/scoresync/internal/interfaces/httpapi"
	"github.com/riskibarqy/scoresync/internal/observability"
	"github.com/riskibarqy/scoresync/internal/platform/logging"
	"github.com/riskibarqy/scoresync/internal/platform/pacing"
	"github.com/riskibarqy/scoresync/internal/usecase"
)

// Container holds the services shared by the api and worker binaries.
type Container struct {
	Config   config.Config
	Logger   *logging.Logger
	Metrics  *observability.Metrics
	Jobs     *usecase.JobRunner
	Settings *usecase.SettingsService
	Runs     *usecase.SyncRunService
	Duration *usecase.DurationService
	Stats    *usecase.APIStatsService

	db *sqlx.DB
}

func Build(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		repos repositories
		db    *sqlx.DB
	)
	switch cfg.Storage {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		repos = newMemoryRepositories()
	default:
		opened, err := openDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		db = opened
		repos = newPostgresRepositories(db)
	}
	repos = repos.withCache(cfg)

	metrics := observability.NewMetrics()
	primary, secondary := newProviders(cfg, logger)

	sleeper := pacing.TimerSleeper{}
	audit := usecase.NewAPICallAuditor(repos.apiCalls, metrics, logger.Named("audit"))
	runs := usecase.NewSyncRunService(repos.syncRuns, metrics, logger.Named("runs"))
	settings := usecase.NewSettingsService(repos.settings, settingsDefaults(cfg.Schedule), logger.Named("settings"))

	leagueIDs := cfg.Sync.FallbackLeagueIDs
	if len(leagueIDs) == 0 {
		leagueIDs = usecase.DefaultFallbackLeagueIDs()
	}
	fallback := usecase.NewFallbackReconciler(
		secondary,
		repos.matches,
		repos.competitions,
		settings,
		repos.apiCalls,
		audit,
		sleeper,
		usecase.FallbackConfig{
			Cooldown:       cfg.Sync.FallbackCooldown,
			StaleAfter:     cfg.Sync.StaleThreshold,
			Lookback:       cfg.Sync.FallbackLookback,
			CandidateLimit: cfg.Sync.FallbackCandidateLimit,
			MaxCalls:       cfg.Sync.FallbackMaxCalls,
			DailyCallLimit: cfg.Sync.FallbackDailyCallLimit,
			CallDelay:      cfg.Sync.FallbackDelay,
			LeagueIDs:      leagueIDs,
		},
		logger.Named("fallback"),
	)
	completion := usecase.NewTournamentCompletionService(repos.tournaments, repos.competitions, logger.Named("completion"))
	primarySync := usecase.NewPrimarySyncService(
		primary,
		repos.competitions,
		repos.matches,
		completion,
		fallback,
		settings,
		audit,
		sleeper,
		usecase.PrimarySyncConfig{
			CompetitionDelay: cfg.Sync.CompetitionDelay,
			StaleThreshold:   cfg.Sync.StaleThreshold,
		},
		logger.Named("primary_sync"),
	)
	realtime := usecase.NewRealtimeSyncService(
		primary,
		repos.windows,
		repos.matches,
		settings,
		audit,
		sleeper,
		usecase.RealtimeSyncConfig{
			MarginBeforeKickoff: cfg.Sync.RealtimeMarginBefore,
			MarginAfterKickoff:  cfg.Sync.RealtimeMarginAfter,
			FreshnessWindow:     cfg.Sync.RealtimeFreshness,
			LiveDelay:           cfg.Sync.RealtimeLiveDelay,
			DefaultDelay:        cfg.Sync.RealtimeDefaultDelay,
		},
		logger.Named("realtime_sync"),
	)
	windows := usecase.NewMatchWindowService(repos.matches, repos.windows, settings, logger.Named("match_windows"))
	duration := usecase.NewDurationService(
		repos.tournaments,
		repos.matches,
		repos.customCompetitions,
		repos.durationEvents,
		runs,
		cfg.Sync.DurationWorkers,
		logger.Named("duration"),
	)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Metrics:  metrics,
		Jobs:     usecase.NewJobRunner(primarySync, realtime, fallback, windows, duration, runs, logger.Named("jobs")),
		Settings: settings,
		Runs:     runs,
		Duration: duration,
		Stats:    usecase.NewAPIStatsService(repos.apiCalls, primary, audit, logger.Named("api_stats")),
		db:       db,
	}, nil
}

// newProviders returns nil interfaces for providers without credentials so
// the jobs can report them as not configured.
func newProviders(cfg config.Config, logger *logging.Logger) (usecase.PrimaryProvider, usecase.SecondaryProvider) {
	var primary usecase.PrimaryProvider
	if cfg.FootballData.Token != "" {
		primary = footballdata.NewClient(footballdata.ClientConfig{
			BaseURL:        cfg.FootballData.BaseURL,
			Token:          cfg.FootballData.Token,
			Timeout:        cfg.FootballData.Timeout,
			CallsPerMinute: cfg.FootballData.CallsPerMinute,
			Logger:         logger.Named("footballdata"),
			CircuitBreaker: cfg.FootballData.Circuit,
		})
	} else {
		logger.Warn("football-data token missing, primary sync is not configured")
	}

	var secondary usecase.SecondaryProvider
	if cfg.TheSportsDB.APIKey != "" {
		secondary = thesportsdb.NewClient(thesportsdb.ClientConfig{
			BaseURL:        cfg.TheSportsDB.BaseURL,
			APIKey:         cfg.TheSportsDB.APIKey,
			Timeout:        cfg.TheSportsDB.Timeout,
			Logger:         logger.Named("thesportsdb"),
			CircuitBreaker: cfg.TheSportsDB.Circuit,
		})
	}
	return primary, secondary
}

func settingsDefaults(schedule config.ScheduleConfig) usecase.SyncSettings {
	return usecase.SyncSettings{
		DailySyncEnabled:   schedule.DailySyncEnabled,
		DailySyncHour:      schedule.DailySyncHour,
		RealtimeEnabled:    schedule.RealtimeEnabled,
		RealtimeInterval:   schedule.RealtimeInterval,
		WindowMarginBefore: schedule.WindowMarginBefore,
		WindowMarginAfter:  schedule.WindowMarginAfter,
	}
}

// NewHTTPServer builds the api server over the container.
func (c *Container) NewHTTPServer() (*http.Server, error) {
	if c.Config.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(c.Jobs, c.Duration, c.Stats, c.Settings, c.Runs, c.Logger.Named("http"))
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		ServiceName:      c.Config.ServiceName,
		InternalJobToken: c.Config.InternalJobToken,
		JobWriteTimeout:  c.Config.JobWriteTimeout,
		Metrics:          c.Metrics.Handler(),
	}, c.Logger.Named("http"))

	return &http.Server{
		Addr:         c.Config.HTTPAddr,
		Handler:      router,
		ReadTimeout:  c.Config.ReadTimeout,
		WriteTimeout: c.Config.WriteTimeout,
	}, nil
}

func (c *Container) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
