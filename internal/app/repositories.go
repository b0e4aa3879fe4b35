package app

import (
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/scoresync/internal/config"
	"github.com/riskibarqy/scoresync/internal/domain/apicall"
	"github.com/riskibarqy/scoresync/internal/domain/competition"
	"github.com/riskibarqy/scoresync/internal/domain/customcompetition"
	"github.com/riskibarqy/scoresync/internal/domain/durationevent"
	"github.com/riskibarqy/scoresync/internal/domain/match"
	"github.com/riskibarqy/scoresync/internal/domain/matchwindow"
	"github.com/riskibarqy/scoresync/internal/domain/setting"
	"github.com/riskibarqy/scoresync/internal/domain/syncrun"
	"github.com/riskibarqy/scoresync/internal/domain/tournament"
	cacherepo "github.com/riskibarqy/scoresync/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/scoresync/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/scoresync/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/scoresync/internal/platform/cache"
)

type repositories struct {
	competitions       competition.Repository
	matches            match.Repository
	windows            matchwindow.Repository
	tournaments        tournament.Repository
	customCompetitions customcompetition.Repository
	durationEvents     durationevent.Repository
	apiCalls           apicall.Repository
	settings           setting.Repository
	syncRuns           syncrun.Repository
}

func newMemoryRepositories() repositories {
	return repositories{
		competitions:       memory.NewCompetitionRepository(memory.SeedCompetitions()),
		matches:            memory.NewMatchRepository(nil),
		windows:            memory.NewMatchWindowRepository(),
		tournaments:        memory.NewTournamentRepository(nil),
		customCompetitions: memory.NewCustomCompetitionRepository(nil),
		durationEvents:     memory.NewDurationEventRepository(),
		apiCalls:           memory.NewAPICallRepository(),
		settings:           memory.NewSettingRepository(nil),
		syncRuns:           memory.NewSyncRunRepository(),
	}
}

func newPostgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		competitions:       postgres.NewCompetitionRepository(db),
		matches:            postgres.NewMatchRepository(db),
		windows:            postgres.NewMatchWindowRepository(db),
		tournaments:        postgres.NewTournamentRepository(db),
		customCompetitions: postgres.NewCustomCompetitionRepository(db),
		durationEvents:     postgres.NewDurationEventRepository(db),
		apiCalls:           postgres.NewAPICallRepository(db),
		settings:           postgres.NewSettingRepository(db),
		syncRuns:           postgres.NewSyncRunRepository(db),
	}
}

// withCache wraps the read-mostly competition catalog.
func (r repositories) withCache(cfg config.Config) repositories {
	if !cfg.CacheEnabled {
		return r
	}
	r.competitions = cacherepo.NewCompetitionRepository(r.competitions, basecache.NewStore[competition.Competition](cfg.CacheTTL))
	return r
}
