package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/app"
	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/config"
	"github.com/fulfillmenttools/commercetools-sunrise-data/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local runs; env vars always win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runID := uuid.New().String()
	log := logger.New("inventory-seeder", runID, cfg.LogLevel)
	log.Info("starting inventory seeding run",
		slog.String("environment", cfg.Environment),
		slog.String("platform", cfg.PlatformBaseURL),
		slog.Any("channel_keys", cfg.ChannelKeys),
	)

	application := app.NewApp(cfg, log)

	// Cancel on SIGINT/SIGTERM so a half-finished run stops between writes.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := application.Run(ctx); err != nil {
		return fmt.Errorf("run seeder: %w", err)
	}

	log.Info("inventory seeding run finished")
	return nil
}
