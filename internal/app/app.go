package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/youth-league/internal/config"
	"github.com/riskibarqy/youth-league/internal/domain/division"
	"github.com/riskibarqy/youth-league/internal/domain/draft"
	"github.com/riskibarqy/youth-league/internal/domain/family"
	"github.com/riskibarqy/youth-league/internal/domain/player"
	"github.com/riskibarqy/youth-league/internal/domain/season"
	"github.com/riskibarqy/youth-league/internal/domain/team"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
	"github.com/riskibarqy/youth-league/internal/domain/workbond"
	"github.com/riskibarqy/youth-league/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/youth-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/youth-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/youth-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/youth-league/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/youth-league/internal/platform/cache"
	"github.com/riskibarqy/youth-league/internal/platform/logging"
	"github.com/riskibarqy/youth-league/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type repositories struct {
	seasons    season.Repository
	divisions  division.Repository
	teams      team.Repository
	players    player.Repository
	families   family.Repository
	volunteers volunteer.Repository
	drafts     draft.Repository
	workbond   workbond.Repository
}

// NewHTTPServer wires storage, services and routes. The returned cleanup
// closes the database pool when one was opened.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, cleanup, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.seasons = cache.NewSeasonRepository(repos.seasons, store)
		repos.divisions = cache.NewDivisionRepository(repos.divisions, store)
		repos.teams = cache.NewTeamRepository(repos.teams, store)
	}

	verifier, err := jwtauth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTIssuer, logger)
	if err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("build token verifier: %w", err)
	}

	services := newServices(cfg, repos, logger)
	handler := httpapi.NewHandler(services, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func newServices(cfg config.Config, repos repositories, logger *logging.Logger) httpapi.Services {
	ids := usecase.IDGenerators{}

	workbondSvc := usecase.NewWorkbondService(
		repos.seasons,
		repos.families,
		repos.players,
		repos.volunteers,
		repos.workbond,
		ids,
		usecase.WorkbondConfig{RequiredHours: cfg.WorkbondRequiredHours},
		nil,
		logger,
	)

	return httpapi.Services{
		Roster: usecase.NewRosterService(
			repos.seasons,
			repos.divisions,
			repos.teams,
			repos.players,
			repos.families,
			repos.volunteers,
			logger,
		),
		Volunteers: usecase.NewVolunteerService(repos.seasons, repos.teams, repos.volunteers, logger),
		Imports: usecase.NewImportService(
			repos.seasons,
			repos.divisions,
			repos.families,
			repos.players,
			repos.volunteers,
			repos.workbond,
			ids,
			usecase.ImportConfig{Workers: cfg.ImportWorkers, PreviewRowLimit: cfg.PreviewRowLimit},
			logger,
		),
		Exports: usecase.NewExportService(
			repos.seasons,
			repos.divisions,
			repos.teams,
			repos.players,
			repos.families,
			repos.volunteers,
			workbondSvc,
			nil,
			logger,
		),
		Draft: usecase.NewDraftService(
			repos.seasons,
			repos.divisions,
			repos.teams,
			repos.players,
			repos.volunteers,
			repos.drafts,
			ids,
			usecase.DraftConfig{FallbackEnabled: cfg.DraftFallbackEnabled},
			nil,
			logger,
		),
		Workbond: workbondSvc,
		Dashboard: usecase.NewDashboardService(
			repos.seasons,
			repos.divisions,
			repos.players,
			repos.families,
			repos.volunteers,
			repos.drafts,
			workbondSvc,
			logger,
		),
		Mailing: usecase.NewMailingService(repos.seasons, repos.players, repos.families, repos.volunteers, logger),
	}
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if cfg.StorageDriver != config.StoragePostgres {
		mem := memory.NewSeededRepositories()
		logger.Info("storage ready", "driver", config.StorageMemory)
		return repositories{
			seasons:    mem.Seasons,
			divisions:  mem.Divisions,
			teams:      mem.Teams,
			players:    mem.Players,
			families:   mem.Families,
			volunteers: mem.Volunteers,
			drafts:     mem.Drafts,
			workbond:   mem.Workbond,
		}, func() error { return nil }, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, nil, err
	}

	if cfg.DBSeedOnBoot {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, nil, fmt.Errorf("seed database: %w", err)
		}
		logger.Info("database seeded")
	}

	logger.Info("storage ready", "driver", config.StoragePostgres, "db_name", dbNameFromURL(cfg.DBURL))

	return repositories{
		seasons:    postgres.NewSeasonRepository(db),
		divisions:  postgres.NewDivisionRepository(db),
		teams:      postgres.NewTeamRepository(db),
		players:    postgres.NewPlayerRepository(db),
		families:   postgres.NewFamilyRepository(db),
		volunteers: postgres.NewVolunteerRepository(db),
		drafts:     postgres.NewDraftRepository(db),
		workbond:   postgres.NewWorkbondRepository(db),
	}, db.Close, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary), opts...)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
