package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/finleysg/bhmc-admin-sub001/external/golfgenius"
	"github.com/finleysg/bhmc-admin-sub001/internal/config"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/event"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/player"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/registration"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/result"
	"github.com/finleysg/bhmc-admin-sub001/internal/domain/scorecard"
	repocache "github.com/finleysg/bhmc-admin-sub001/internal/infrastructure/repository/cache"
	"github.com/finleysg/bhmc-admin-sub001/internal/infrastructure/repository/memory"
	"github.com/finleysg/bhmc-admin-sub001/internal/infrastructure/repository/postgres"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/logging"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/progress"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/resilience"
	"github.com/finleysg/bhmc-admin-sub001/internal/usecase"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type repositories struct {
	events        event.Repository
	players       player.Repository
	registrations registration.Repository
	scorecards    scorecard.Repository
	results       result.Repository
}

// App holds the wired sync services for one process.
type App struct {
	Config config.Config
	Logger *logging.Logger

	EventSync     *usecase.EventSyncService
	RosterExport  *usecase.RosterExportService
	MemberSync    *usecase.MemberSyncService
	ScoresImport  *usecase.ScoresImportService
	ResultsImport *usecase.ResultsImportService

	exportTracker  *progress.Tracker[usecase.ExportResult]
	scoresTracker  *progress.Tracker[usecase.ImportResult]
	resultsTracker *progress.Tracker[usecase.ImportResult]
	db             *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{Config: cfg, Logger: logger}
	repos, err := a.openRepositories(ctx)
	if err != nil {
		return nil, err
	}

	client := golfgenius.NewClient(golfgenius.ClientConfig{
		BaseURL: cfg.GolfGeniusBaseURL,
		APIKey:  cfg.GolfGeniusAPIKey,
		Timeout: cfg.GolfGeniusTimeout,
		Retry: resilience.RetryPolicy{
			MaxRetries: cfg.GolfGeniusMaxRetries,
			BaseDelay:  cfg.GolfGeniusBaseDelay,
			MaxDelay:   cfg.GolfGeniusMaxDelay,
		},
		RequestsPerSecond: cfg.GolfGeniusRequestsPerSecond,
		Logger:            logger,
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          cfg.GolfGeniusCircuitEnabled,
			FailureThreshold: cfg.GolfGeniusCircuitFailures,
			OpenTimeout:      cfg.GolfGeniusCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GolfGeniusCircuitHalfOpenMax,
		},
	})

	trackerCfg := progress.Config{
		StreamTTL:  cfg.ProgressStreamTTL,
		ResultTTL:  cfg.ProgressResultTTL,
		CloseDelay: cfg.ProgressCloseDelay,
	}
	a.exportTracker = progress.NewTracker[usecase.ExportResult](trackerCfg, logger.Named("export_progress"))
	a.scoresTracker = progress.NewTracker[usecase.ImportResult](trackerCfg, logger.Named("scores_progress"))
	a.resultsTracker = progress.NewTracker[usecase.ImportResult](trackerCfg, logger.Named("results_progress"))

	resolver := usecase.NewEventResolver(client, usecase.EventResolverConfig{
		CategoryID:     cfg.GolfGeniusCategoryID,
		SeasonCacheTTL: cfg.SeasonCacheTTL,
	}, logger.Named("event_resolver"))

	a.EventSync = usecase.NewEventSyncService(client, resolver, repos.events, repos.results, logger.Named("event_sync"))
	a.RosterExport = usecase.NewRosterExportService(client, repos.events, repos.registrations, a.exportTracker,
		usecase.RosterExportConfig{Concurrency: cfg.RosterExportConcurrency}, logger.Named("roster_export"))
	a.MemberSync = usecase.NewMemberSyncService(client, repos.players, logger.Named("member_sync"))
	a.ScoresImport = usecase.NewScoresImportService(client, repos.events, repos.registrations, repos.players,
		repos.scorecards, a.scoresTracker, logger.Named("scores_import"))
	a.ResultsImport = usecase.NewResultsImportService(client, repos.events, repos.players, repos.results,
		a.resultsTracker, logger.Named("results_import"))

	return a, nil
}

func (a *App) openRepositories(ctx context.Context) (repositories, error) {
	if a.Config.StorageDriver == config.StorageDriverMemory {
		a.Logger.Warn("using in-memory storage", "reason", "STORAGE_DRIVER=memory")
		events := memory.NewEventRepository(memory.SeedEvents())
		players := memory.NewPlayerRepository(memory.SeedPlayers())
		return repositories{
			events:        events,
			players:       players,
			registrations: memory.NewRegistrationRepository(memory.SeedSlots(memory.SeedPlayers()), memory.SeedFees(), players),
			scorecards:    memory.NewScorecardRepository(memory.SeedCourses(), memory.SeedTees(), memory.SeedHoles()),
			results:       memory.NewResultRepository(events.EventOfTournament),
		}, nil
	}

	db, err := otelsqlx.Open("postgres", normalizeDBURL(a.Config.DBURL, a.Config.DBBinaryParameters),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(a.Config.DBURL)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return repositories{}, fmt.Errorf("ping database: %w", err)
	}
	a.db = db
	a.Logger.Info("database connected", "db_name", dbNameFromURL(a.Config.DBURL))

	return repositories{
		events:        postgres.NewEventRepository(db),
		players:       postgres.NewPlayerRepository(db),
		registrations: postgres.NewRegistrationRepository(db),
		scorecards:    repocache.NewScorecardRepository(postgres.NewScorecardRepository(db), a.Config.ReferenceCacheTTL),
		results:       postgres.NewResultRepository(db),
	}, nil
}

// Run sweeps expired progress streams until ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	go a.exportTracker.Run(ctx)
	go a.scoresTracker.Run(ctx)
	go a.resultsTracker.Run(ctx)
}

// ExportOutcome returns the stored outcome of the last roster export for an event.
func (a *App) ExportOutcome(eventID int64) (progress.Outcome[usecase.ExportResult], error) {
	return a.exportTracker.GetResult(eventID)
}

func (a *App) ScoresOutcome(eventID int64) (progress.Outcome[usecase.ImportResult], error) {
	return a.scoresTracker.GetResult(eventID)
}

func (a *App) ResultsOutcome(eventID int64) (progress.Outcome[usecase.ImportResult], error) {
	return a.resultsTracker.GetResult(eventID)
}

func (a *App) Close() error {
	var errs []error
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
