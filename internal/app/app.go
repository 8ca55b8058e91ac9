package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/fpl-live-league/external/fpl"
	"github.com/riskibarqy/fpl-live-league/internal/config"
	"github.com/riskibarqy/fpl-live-league/internal/domain/points"
	"github.com/riskibarqy/fpl-live-league/internal/domain/snapshot"
	"github.com/riskibarqy/fpl-live-league/internal/infrastructure/livefeed"
	cacherepo "github.com/riskibarqy/fpl-live-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fpl-live-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fpl-live-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fpl-live-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/fpl-live-league/internal/platform/id"
	"github.com/riskibarqy/fpl-live-league/internal/platform/logging"
	"github.com/riskibarqy/fpl-live-league/internal/platform/resilience"
	"github.com/riskibarqy/fpl-live-league/internal/usecase"
)

// App is the assembled service. Close releases the database and Redis clients.
type App struct {
	Server    *http.Server
	Scheduler *usecase.RefreshScheduler
	closers   []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	clock := clockwork.NewRealClock()
	out := &App{}

	leagues, err := config.LoadLeagues(cfg.LeaguesFile)
	if err != nil {
		return nil, err
	}
	leagueRepo := memory.NewLeagueRepository(leagues)

	snapshots, err := out.snapshotRepository(ctx, cfg, clock, logger)
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	liveStore, err := out.liveStore(ctx, cfg, logger)
	if err != nil {
		_ = out.Close()
		return nil, err
	}

	fplClient := fpl.NewClient(fpl.ClientConfig{
		BaseURL:    cfg.FPLBaseURL,
		UserAgent:  cfg.FPLUserAgent,
		Timeout:    cfg.FPLTimeout,
		MaxRetries: cfg.FPLMaxRetries,
		Logger:     logger.Named("fpl"),
		Clock:      clock,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	})

	liveSvc := usecase.NewLiveLeagueService(
		leagueRepo,
		snapshots,
		fplClient,
		liveStore,
		id.NewUUIDGenerator(),
		clock,
		logger,
		usecase.LiveLeagueServiceConfig{
			Workers:      cfg.FPLMaxWorkers,
			StateTTL:     cfg.CacheTTL,
			BootstrapTTL: cfg.FPLBootstrapCacheTTL,
			Scoring:      points.DefaultRules(),
		},
	)
	snapshotSvc := usecase.NewSnapshotService(leagueRepo, snapshots, fplClient, liveSvc, clock, logger)
	differentialSvc := usecase.NewDifferentialService(liveSvc)
	statsSvc := usecase.NewStatsService(liveSvc)

	if cfg.RefreshEnabled {
		out.Scheduler = usecase.NewRefreshScheduler(leagueRepo, liveSvc, clock, logger.Named("scheduler"), cfg.RefreshInterval, 0)
	}

	handler := httpapi.NewHandler(liveSvc, differentialSvc, statsSvc, snapshotSvc, logger)
	router := httpapi.NewRouter(
		handler,
		logger,
		cfg.AppEnv != config.EnvProd,
		cfg.CORSAllowedOrigins,
		cfg.InternalJobToken,
	)

	if cfg.HTTPAddr == "" {
		_ = out.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	out.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("app assembled",
		"leagues", len(leagues),
		"storage", cfg.StorageDriver,
		"redis", cfg.RedisEnabled,
		"refresh", cfg.RefreshEnabled,
	)

	return out, nil
}

func (a *App) snapshotRepository(ctx context.Context, cfg config.Config, clock clockwork.Clock, logger *logging.Logger) (snapshot.Repository, error) {
	var repo snapshot.Repository
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		repo = postgres.NewSnapshotRepository(db)
		logger.Info("snapshot storage ready", "driver", cfg.StorageDriver, "db_name", databaseName(cfg.DBURL))
	default:
		repo = memory.NewSnapshotRepository()
	}

	if cfg.CacheEnabled {
		repo = cacherepo.NewSnapshotRepository(repo, cfg.CacheTTL, clock)
	}
	return repo, nil
}

func (a *App) liveStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (usecase.LiveStore, error) {
	if !cfg.RedisEnabled {
		return livefeed.NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
	}
	a.closers = append(a.closers, client.Close)
	logger.Info("live feed ready", "redis_addr", cfg.RedisAddr, "ttl", cfg.LiveTTL.String())

	return livefeed.NewRedisStore(client, cfg.LiveTTL, cfg.LiveStreamLen), nil
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
