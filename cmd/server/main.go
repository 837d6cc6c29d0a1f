// Package main is the entry point of the Academic Hub API server.
//
// The server keeps the academic registry (students, professors, courses,
// classrooms, enrollments and grades) in PostgreSQL when DATABASE_URL is set
// and in memory otherwise, caches reports in Redis and serves the REST API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alem-hub/academic-hub/config"
	"github.com/alem-hub/academic-hub/internal/application/command"
	"github.com/alem-hub/academic-hub/internal/application/eventhandler"
	"github.com/alem-hub/academic-hub/internal/application/query"
	"github.com/alem-hub/academic-hub/internal/application/workspace"
	"github.com/alem-hub/academic-hub/internal/domain/academic"
	"github.com/alem-hub/academic-hub/internal/infrastructure/csvio"
	"github.com/alem-hub/academic-hub/internal/infrastructure/messaging"
	"github.com/alem-hub/academic-hub/internal/infrastructure/persistence/memory"
	"github.com/alem-hub/academic-hub/internal/infrastructure/persistence/postgres"
	"github.com/alem-hub/academic-hub/internal/infrastructure/persistence/redis"
	httpserver "github.com/alem-hub/academic-hub/internal/interface/http"
	"github.com/alem-hub/academic-hub/internal/interface/http/handlers"
	"github.com/alem-hub/academic-hub/pkg/logger"
	"github.com/alem-hub/academic-hub/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting Academic Hub",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. REGISTRY STORAGE (PostgreSQL or memory)
	// ─────────────────────────────────────────────────────────────────────────
	var (
		repo    academic.Repository
		checker = handlers.NewCompositeHealthChecker(cfg.App.Version)
	)

	if cfg.Database.URL != "" {
		conn, err := connectDatabase(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			log.Info("closing database connection")
			conn.Close()
		}()
		checker.AddCheck("database", handlers.NewPingCheck(conn))
		repo = postgres.NewRegistryRepository(conn)
	} else {
		log.Warn("DATABASE_URL not set, registry is kept in memory")
		repo = memory.NewRegistryRepository()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 4. REPORT CACHE (Redis or memory)
	// ─────────────────────────────────────────────────────────────────────────
	var reportCache query.ReportCache = memory.NewReportCache()

	if !cfg.Redis.Disabled {
		cache, err := connectRedis(ctx, cfg)
		if err != nil {
			log.Warn("failed to connect to Redis, using in-process cache", logger.Err(err))
		} else {
			defer func() { _ = cache.Close() }()
			checker.AddCheck("cache", handlers.NewPingCheck(cache))
			reportCache = redis.NewReportCache(cache, cfg.Redis.ReportTTL)
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. EVENT BUS
	// ─────────────────────────────────────────────────────────────────────────
	busConfig := messaging.DefaultInMemoryEventBusConfig()
	busConfig.Logger = log
	bus := messaging.NewInMemoryEventBus(busConfig)
	defer func() {
		log.Info("closing event bus")
		_ = bus.Close()
	}()

	if err := eventhandler.NewCacheInvalidator(reportCache, 0, log).Register(bus); err != nil {
		return fmt.Errorf("failed to register cache invalidator: %w", err)
	}
	if err := eventhandler.NewAuditLogger(log).Register(bus); err != nil {
		return fmt.Errorf("failed to register audit logger: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. WORKSPACE
	// ─────────────────────────────────────────────────────────────────────────
	seed, err := loadSeed(cfg)
	if err != nil {
		return err
	}
	ws, err := workspace.Open(ctx, repo, seed, log)
	if err != nil {
		return fmt.Errorf("failed to open registry: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 7. HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout
	httpConfig.MaxBodyBytes = cfg.HTTP.MaxBodyBytes
	httpConfig.EnableCORS = cfg.HTTP.EnableCORS
	httpConfig.AllowedOrigins = cfg.HTTP.AllowedOrigins
	httpConfig.RateLimitPerMinute = cfg.HTTP.RateLimitPerMinute
	httpConfig.APIKeyHeader = cfg.HTTP.APIKeyHeader
	httpConfig.APIKeyHashes = cfg.HTTP.APIKeyHashes

	if len(httpConfig.APIKeyHashes) == 0 {
		log.Warn("no API keys configured, write endpoints are open")
	}

	server, err := httpserver.NewServer(httpConfig, httpserver.Dependencies{
		Commands: httpserver.Commands{
			CreateRecord:    command.NewCreateRecordHandler(ws, bus, log),
			DeleteRecord:    command.NewDeleteRecordHandler(ws, bus, log),
			SetTimeSlot:     command.NewSetTimeSlotHandler(ws, bus, log),
			AssignClassroom: command.NewAssignClassroomHandler(ws, bus, log),
			AssignProfessor: command.NewAssignProfessorHandler(ws, bus, log),
			Enroll:          command.NewEnrollHandler(ws, bus, log),
			Withdraw:        command.NewWithdrawHandler(ws, bus, log),
			RecordGrade:     command.NewRecordGradeHandler(ws, bus, log),
		},
		Queries: httpserver.Queries{
			Records:      query.NewRecordsHandler(ws),
			GlobalReport: query.NewGetGlobalReportHandler(ws, reportCache, log),
			Schedule:     query.NewGetScheduleHandler(ws, reportCache, log),
			Timetable:    query.NewGetTimetableHandler(ws),
		},
		Logger:        log,
		HealthChecker: checker,
		Version:       cfg.App.Version,
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	errCh := server.StartAsync()

	// ─────────────────────────────────────────────────────────────────────────
	// 8. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("HTTP server shutdown failed", logger.Err(err))
	}

	log.Info("shutdown completed")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// setupLogger builds the process logger. Debug mode lowers the level.
func setupLogger(cfg *config.Config) *logger.Logger {
	opts := logger.DefaultOptions()
	opts.Level = logger.ParseLevel(cfg.Observability.LogLevel)
	opts.Format = logger.Format(cfg.Observability.LogFormat)
	if cfg.App.Debug {
		opts.Level = logger.LevelDebug
		opts.AddCaller = true
	}
	return logger.New(opts).With(logger.String("service", cfg.App.Name))
}

// connectDatabase opens the pool with retries and applies migrations.
func connectDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) (*postgres.Connection, error) {
	dbConfig := postgres.DefaultConfig(cfg.Database.URL)
	dbConfig.MaxConns = int32(cfg.Database.MaxConns)
	dbConfig.MinConns = int32(cfg.Database.MinConns)
	dbConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	dbConfig.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime
	dbConfig.ConnectTimeout = cfg.Database.ConnectTimeout

	log.Info("connecting to database")
	opts := append(retry.ConnectOptions(), retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		log.Warn("database not reachable, retrying",
			logger.Int("attempt", attempt),
			logger.Duration("delay", delay),
			logger.Err(err),
		)
	}))
	conn, err := retry.DoWithData(ctx, func(ctx context.Context) (*postgres.Connection, error) {
		return postgres.NewConnection(ctx, dbConfig)
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.Migrate {
		applied, err := postgres.NewMigrator(conn).Migrate(ctx)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("database schema is up to date", logger.Int("applied", applied))
	}
	return conn, nil
}

func connectRedis(ctx context.Context, cfg *config.Config) (*redis.Cache, error) {
	redisConfig := redis.DefaultConfig()
	redisConfig.Host = cfg.Redis.Host
	redisConfig.Port = cfg.Redis.Port
	redisConfig.Password = cfg.Redis.Password
	redisConfig.DB = cfg.Redis.DB
	redisConfig.PoolSize = cfg.Redis.PoolSize
	redisConfig.MinIdleConns = cfg.Redis.MinIdleConns
	redisConfig.DialTimeout = cfg.Redis.DialTimeout
	redisConfig.ReadTimeout = cfg.Redis.ReadTimeout
	redisConfig.WriteTimeout = cfg.Redis.WriteTimeout
	redisConfig.KeyPrefix = cfg.Redis.KeyPrefix

	return redis.NewCache(ctx, redisConfig)
}

// loadSeed picks the data written to an empty store: CSV files when a seed
// directory is configured, else the built-in records, else nothing.
func loadSeed(cfg *config.Config) (academic.Snapshot, error) {
	switch {
	case cfg.Seed.Dir != "":
		seed, err := csvio.LoadSeed(cfg.Seed.Dir)
		if err != nil {
			return academic.Snapshot{}, fmt.Errorf("failed to load seed: %w", err)
		}
		return seed, nil
	case cfg.Seed.Defaults:
		return academic.DefaultSeed(), nil
	default:
		return academic.Snapshot{}, nil
	}
}
