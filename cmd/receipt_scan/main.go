// Command receipt_scan runs one missing-receipt scan against the database and exits.
// It is meant to be scheduled daily (cron, Kubernetes CronJob).
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/freelancer_books/internal/core/services"
	"github.com/SscSPs/freelancer_books/internal/middleware"
	"github.com/SscSPs/freelancer_books/internal/platform/config"
	"github.com/SscSPs/freelancer_books/internal/repositories/database/pgsql"
	"github.com/SscSPs/freelancer_books/pkg/database"
)

const scanTimeout = 10 * time.Minute

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("job", "receipt_scan"))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Receipt scan failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.StoreBackend != config.StoreBackendPostgres {
		logger.Warn("Receipt scan only runs against postgres; nothing to do", slog.String("backend", cfg.StoreBackend))
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()
	ctx = middleware.WithLogger(ctx, logger)

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return err
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)

	container := services.NewServiceContainer(pgsql.NewRepositoryProvider(dbPool), services.ContainerOptions{})
	summary, err := container.ReceiptAlerts.DailyScan(ctx)
	if err != nil {
		return err
	}

	logger.Info("Receipt scan finished",
		slog.Int("evaluated", summary.Evaluated),
		slog.Int("created", summary.Created),
		slog.Int("updated", summary.Updated),
		slog.Int("purged", summary.Purged),
		slog.Int("active_low", summary.BySeverity.Low),
		slog.Int("active_medium", summary.BySeverity.Medium),
		slog.Int("active_high", summary.BySeverity.High),
		slog.Duration("took", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	return nil
}
