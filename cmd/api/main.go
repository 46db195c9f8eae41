package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/monostack/internal/api"
	"github.com/hszk-dev/monostack/internal/config"
	"github.com/hszk-dev/monostack/internal/infrastructure/cache"
	"github.com/hszk-dev/monostack/internal/infrastructure/postgres"
	"github.com/hszk-dev/monostack/internal/server"
	"github.com/hszk-dev/monostack/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	started := time.Now()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.LoadAPI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgClient, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to create PostgreSQL client: %w", err)
	}
	defer pgClient.Close()

	// The API serves /health without a database; /users reports 503 until it is up.
	if err := pgClient.Ping(ctx); err != nil {
		logger.Warn("PostgreSQL is not reachable", slog.String("error", err.Error()))
	} else {
		logger.Info("connected to PostgreSQL")
	}

	users := usecase.NewUserService(postgres.NewUserRepository(pgClient.Pool()))

	if cfg.Cache.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		logger.Info("connected to Redis", slog.Duration("users_cache_ttl", cfg.Cache.UsersTTL))

		users = usecase.NewCachedUserService(
			users,
			cache.NewRedisUserListCache(redisClient),
			usecase.CachedUserServiceConfig{CacheTTL: cfg.Cache.UsersTTL},
		)
	}

	h, err := api.NewRouter(api.Dependencies{
		Users:          users,
		Logger:         logger,
		Started:        started,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})
	if err != nil {
		return err
	}

	return server.Start(ctx, server.Config{
		Addr:            fmt.Sprintf(":%d", cfg.Server.Port),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		OnListen: func(addr net.Addr) {
			logger.Info(fmt.Sprintf("Server running on http://localhost:%d", addr.(*net.TCPAddr).Port))
		},
	}, h, logger)
}
