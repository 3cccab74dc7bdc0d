package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/presenters"
	"learnhub/backend/routes"
	"learnhub/backend/store"
	"learnhub/backend/utils"

	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	s, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	checkData(ctx, s, logger)

	limiter, closeRedis := newRateLimiter(ctx, cfg, logger)
	defer closeRedis()

	p := presenters.New(s, logger,
		presenters.Options{
			CatalogPageSize: cfg.CatalogPageSize,
			ListPageSize:    cfg.ListPageSize,
			MaxPageSize:     cfg.MaxPageSize,
		},
		presenters.AuthOptions{JWTSecret: cfg.JWTSecret, TokenTTL: cfg.JWTTTL},
	)
	app := routes.NewApp(routes.Deps{Presenters: p, Logger: logger, Cfg: cfg, Limiter: limiter})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "port", cfg.ServerPort, "store", cfg.StoreDriver)
		errCh <- app.Listen(":" + cfg.ServerPort)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	case err := <-errCh:
		return err
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *utils.Logger) (store.Store, error) {
	if cfg.StoreDriver != config.StorePostgres {
		data, err := store.LoadFixtures()
		if err != nil {
			return nil, fmt.Errorf("load fixtures: %w", err)
		}
		return store.NewMemory(data), nil
	}

	db, err := store.OpenPostgres(cfg.DSN(), logger)
	if err != nil {
		return nil, err
	}
	s := store.NewGormStore(db)
	if err := s.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if cfg.DBSeed {
		data, err := store.LoadFixtures()
		if err != nil {
			return nil, fmt.Errorf("load fixtures: %w", err)
		}
		if err := s.Seed(ctx, data); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		logger.Info("database seeded from fixtures")
	}
	return s, nil
}

// checkData logs enrollments whose status and progress disagree. Serving
// continues either way.
func checkData(ctx context.Context, s store.Store, logger *utils.Logger) {
	enrollments, err := s.Enrollments(ctx)
	if err != nil {
		logger.Warn("enrollment check skipped", "error", err)
		return
	}
	for _, v := range store.CheckEnrollments(enrollments) {
		logger.Warn("inconsistent enrollment", "enrollment_id", v.EnrollmentID, "reason", v.Reason)
	}
}

// newRateLimiter returns nil when rate limiting is off or Redis is
// unreachable at startup.
func newRateLimiter(ctx context.Context, cfg *config.Config, logger *utils.Logger) (*middleware.RateLimiter, func()) {
	if !cfg.RateLimitEnabled() {
		return nil, func() {}
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", "addr", cfg.RedisAddr, "error", err)
		_ = rdb.Close()
		return nil, func() {}
	}
	return middleware.NewRateLimiter(rdb, logger), func() { _ = rdb.Close() }
}
