package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Bennylang23/autobeluga/external/fbref"
	"github.com/Bennylang23/autobeluga/internal/config"
	"github.com/Bennylang23/autobeluga/internal/domain/matchreport"
	"github.com/Bennylang23/autobeluga/internal/domain/schedule"
	"github.com/Bennylang23/autobeluga/internal/infrastructure/documentcache"
	"github.com/Bennylang23/autobeluga/internal/infrastructure/repository/memory"
	"github.com/Bennylang23/autobeluga/internal/infrastructure/repository/postgres"
	"github.com/Bennylang23/autobeluga/internal/observability"
	"github.com/Bennylang23/autobeluga/internal/platform/logging"
	"github.com/Bennylang23/autobeluga/internal/platform/resilience"
	"github.com/Bennylang23/autobeluga/internal/usecase"
	"github.com/jmoiron/sqlx"
)

type Options struct {
	// InMemory swaps Postgres for the in-memory repositories, for dry runs.
	InMemory bool
}

// App holds the wired services of one process run.
type App struct {
	Config  config.Config
	Logger  *logging.Logger
	Metrics *observability.Metrics
	Fetcher usecase.DocumentFetcher
	Ingest  *usecase.MatchIngestService
	Scan    *usecase.ScheduleScanService

	closers []func(context.Context) error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{Config: cfg, Logger: logger}
	ok := false
	defer func() {
		if !ok {
			_ = a.Close(context.Background())
		}
	}()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	a.closers = append(a.closers, shutdownTracing)

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}
	a.closers = append(a.closers, func(context.Context) error { return stopProfiler() })

	a.Metrics = observability.NewMetrics(strings.ReplaceAll(cfg.ServiceName, "-", "_"))
	debugServer := observability.StartDebugServer(cfg, a.Metrics, logger)
	a.closers = append(a.closers, func(context.Context) error {
		return observability.StopDebugServer(debugServer, logger, 5*time.Second)
	})

	fetcher, err := a.newFetcher(ctx)
	if err != nil {
		return nil, err
	}
	a.Fetcher = fetcher

	reports, fixtures, err := a.newRepositories(opts)
	if err != nil {
		return nil, err
	}

	a.Ingest = usecase.NewMatchIngestService(
		fetcher,
		fbref.NewExtractor(cfg.TeamCodeOverrides),
		reports,
		a.Metrics,
		logger.Named("ingest"),
	)
	a.Scan = usecase.NewScheduleScanService(
		fixtures,
		reports,
		a.Ingest,
		usecase.NewPacer(cfg.MatchInterval, cfg.MatchJitter),
		logger.Named("scan"),
	)

	ok = true
	return a, nil
}

func (a *App) newFetcher(ctx context.Context) (usecase.DocumentFetcher, error) {
	cfg := a.Config
	client := fbref.NewClient(fbref.ClientConfig{
		BaseURL:      cfg.FBrefBaseURL,
		UserAgent:    cfg.FetchUserAgent,
		Timeout:      cfg.FetchTimeout,
		MaxRetries:   cfg.FetchMaxRetries,
		MaxBodyBytes: cfg.FetchMaxBodyBytes,
		Logger:       a.Logger.Named("fbref"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Name:             "fbref",
			Enabled:          cfg.FetchCircuitEnabled,
			FailureThreshold: cfg.FetchCircuitFailures,
			OpenTimeout:      cfg.FetchCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FetchCircuitHalfOpenMax,
			OnStateChange: func(name string, from, to resilience.CircuitState) {
				a.Logger.Warn("circuit breaker state changed", "name", name, "from", string(from), "to", string(to))
				a.Metrics.CircuitStateChanged(name, from, to)
			},
		},
	})

	if cfg.DocumentCacheTTL <= 0 {
		return client, nil
	}

	var backend documentcache.Backend
	if strings.TrimSpace(cfg.RedisURL) != "" {
		redisBackend, err := documentcache.OpenRedisBackend(ctx, cfg.RedisURL, cfg.DocumentCacheTTL)
		if err != nil {
			return nil, fmt.Errorf("open document cache: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return redisBackend.Close() })
		backend = redisBackend
		a.Logger.Info("document cache enabled", "backend", "redis", "ttl", cfg.DocumentCacheTTL.String())
	} else {
		backend = documentcache.NewMemoryBackend(cfg.DocumentCacheTTL)
		a.Logger.Info("document cache enabled", "backend", "memory", "ttl", cfg.DocumentCacheTTL.String())
	}
	return documentcache.NewFetcher(client, backend, a.Logger.Named("documentcache")), nil
}

func (a *App) newRepositories(opts Options) (matchreport.Repository, schedule.Repository, error) {
	if opts.InMemory {
		a.Logger.Info("using in-memory repositories")
		return memory.NewMatchReportRepository(), memory.NewScheduleRepository(nil), nil
	}

	db, err := openDB(a.Config)
	if err != nil {
		return nil, nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return db.Close() })
	a.Logger.Info("database opened", "url", redactDBURL(a.Config.DBURL))
	return postgres.NewMatchReportRepository(db), postgres.NewScheduleRepository(db), nil
}

// Close releases everything New acquired, in reverse order.
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

// DatabaseURL is the connection string every Postgres client of this process should use.
func DatabaseURL(cfg config.Config) (string, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		return "", fmt.Errorf("DB_URL is required")
	}
	return normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary), nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn, err := DatabaseURL(cfg)
	if err != nil {
		return nil, err
	}
	return openTracedDB(dsn)
}
