package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gridpick/fantasy-gp/internal/config"
	"github.com/gridpick/fantasy-gp/internal/domain/constructor"
	"github.com/gridpick/fantasy-gp/internal/domain/draft"
	"github.com/gridpick/fantasy-gp/internal/domain/driver"
	"github.com/gridpick/fantasy-gp/internal/domain/fantasyteam"
	"github.com/gridpick/fantasy-gp/internal/domain/league"
	"github.com/gridpick/fantasy-gp/internal/domain/race"
	"github.com/gridpick/fantasy-gp/internal/domain/scoring"
	"github.com/gridpick/fantasy-gp/internal/domain/teampick"
	"github.com/gridpick/fantasy-gp/internal/infrastructure/jobqueue"
	"github.com/gridpick/fantasy-gp/internal/infrastructure/repository/memory"
	"github.com/gridpick/fantasy-gp/internal/infrastructure/repository/postgres"
	"github.com/gridpick/fantasy-gp/internal/interfaces/httpapi"
	basecache "github.com/gridpick/fantasy-gp/internal/platform/cache"
	"github.com/gridpick/fantasy-gp/internal/platform/logging"
	"github.com/gridpick/fantasy-gp/internal/platform/resilience"
	"github.com/gridpick/fantasy-gp/internal/usecase"
	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

type repositories struct {
	leagues      league.Repository
	races        race.Repository
	teams        fantasyteam.Repository
	drivers      driver.Repository
	constructors constructor.Repository
	drafts       draft.Repository
	teamPicks    teampick.Repository
	scoring      scoring.Repository
	db           *sqlx.DB
}

// NewHTTPServer wires repositories, services, and the router into a ready
// http.Server. An empty DB_URL selects the seeded in-memory repositories.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var cache *basecache.Store
	if cfg.CacheEnabled {
		cache = basecache.NewStore(cfg.CacheTTL)
	}

	leaderboardSvc := usecase.NewLeaderboardService(
		repos.leagues,
		repos.teams,
		repos.teamPicks,
		cache,
		cfg.LeaderboardCacheTTL,
		logger,
	)

	scoringSvc := usecase.NewScoringService(
		repos.leagues,
		repos.races,
		repos.teams,
		repos.drivers,
		repos.constructors,
		repos.teamPicks,
		repos.scoring,
		leaderboardSvc,
		logger,
	)
	scoringSvc.SetRecomputeWorkers(cfg.RecomputeWorkers)

	draftSvc := usecase.NewDraftService(
		repos.leagues,
		repos.races,
		repos.teams,
		repos.drivers,
		repos.drafts,
		usecase.DefaultAutoPickStrategies(),
		logger,
	)

	queue := buildJobQueue(cfg, logger)
	jobSvc := usecase.NewJobService(
		repos.leagues,
		repos.races,
		repos.drafts,
		draftSvc,
		scoringSvc,
		queue,
		usecase.JobConfig{
			PickDeadline:  cfg.PickDeadline,
			SweepInterval: cfg.SweepInterval,
		},
		logger,
	)

	handler := httpapi.NewHandler(
		draftSvc,
		leaderboardSvc,
		jobSvc,
		repos.leagues,
		repos.races,
		repos.teams,
		repos.drivers,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func() error {
		if repos.db != nil {
			return repos.db.Close()
		}
		return nil
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")
		return repositories{
			leagues:      memory.NewLeagueRepository(memory.SeedLeagues()),
			races:        memory.NewRaceRepository(memory.SeedRaces()),
			teams:        memory.NewTeamRepository(memory.SeedTeams()),
			drivers:      memory.NewDriverRepository(memory.SeedDrivers()),
			constructors: memory.NewConstructorRepository(memory.SeedConstructors()),
			drafts:       memory.NewDraftRepository(),
			teamPicks:    memory.NewTeamPickRepository(nil),
			scoring:      memory.NewScoringRepository(),
		}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, err
	}
	logger.Info("connected to postgres", "db", dbNameFromURL(cfg.DBURL))

	return repositories{
		leagues:      postgres.NewLeagueRepository(db),
		races:        postgres.NewRaceRepository(db),
		teams:        postgres.NewFantasyTeamRepository(db),
		drivers:      postgres.NewDriverRepository(db),
		constructors: postgres.NewConstructorRepository(db),
		drafts:       postgres.NewDraftRepository(db),
		teamPicks:    postgres.NewTeamPickRepository(db),
		scoring:      postgres.NewScoringRepository(db),
		db:           db,
	}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.name", dbNameFromURL(cfg.DBURL)),
		),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

func buildJobQueue(cfg config.Config, logger *logging.Logger) usecase.JobQueue {
	if !cfg.QStashEnabled {
		logger.Info("job queue disabled", "reason", "QSTASH_ENABLED=false")
		return usecase.NewNoopJobQueue()
	}

	return jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
		BaseURL:          cfg.QStashBaseURL,
		Token:            cfg.QStashToken,
		TargetBaseURL:    cfg.QStashTargetBaseURL,
		Retries:          cfg.QStashRetries,
		InternalJobToken: cfg.InternalJobToken,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.QStashCircuitEnabled,
			FailureThreshold: cfg.QStashCircuitFailures,
			OpenTimeout:      cfg.QStashCircuitOpenWait,
			HalfOpenMaxReq:   cfg.QStashCircuitHalfOpen,
		},
	}, logger)
}
