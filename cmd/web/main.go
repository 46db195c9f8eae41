package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hszk-dev/monostack/internal/config"
	"github.com/hszk-dev/monostack/internal/server"
	"github.com/hszk-dev/monostack/internal/web"
	"github.com/hszk-dev/monostack/pkg/client"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.LoadWeb()
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

	apiClient, err := client.New(cfg.APIURL, client.WithHTTPClient(&http.Client{
		Timeout: cfg.Server.APITimeout,
	}))
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}
	logger.Info("using API", slog.String("base_url", apiClient.BaseURL()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := web.NewRouter(web.NewHandler(apiClient.Health, logger), logger)

	return server.Start(ctx, server.Config{
		Addr:            fmt.Sprintf(":%d", cfg.Server.Port),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		OnListen: func(addr net.Addr) {
			logger.Info("web server listening", slog.String("addr", addr.String()))
		},
	}, h, logger)
}
