// Package main is the entry point for the Finance Dashboard API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/finance-tracker/dashboard/config"
	"github.com/finance-tracker/dashboard/internal/infra/cache"
	"github.com/finance-tracker/dashboard/internal/infra/db"
	"github.com/finance-tracker/dashboard/internal/infra/dependency"
	"github.com/finance-tracker/dashboard/internal/infra/scheduler"
	analyticscache "github.com/finance-tracker/dashboard/internal/integration/cache"
	"github.com/finance-tracker/dashboard/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("Starting Finance Dashboard API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(model.All()...); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	infra := dependency.Infrastructure{
		DB:       database.DB(),
		DBHealth: database.HealthCheck,
	}

	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, analytics will not be cached", "error", err)
		} else {
			defer client.Close()
			infra.Cache = analyticscache.NewRedisAnalyticsCache(client, cfg.Redis.AnalyticsTTL)
			infra.CacheHealth = cache.HealthCheck(client)
		}
	}

	injector, err := dependency.NewInjector(cfg, infra)
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	jobs := scheduler.New(5 * time.Minute)
	if cfg.Jobs.BillReminderEnabled {
		err := jobs.Register("bill-reminders", cfg.Jobs.BillReminderSchedule, func(ctx context.Context) error {
			output, err := injector.BillReminders.Execute(ctx)
			if err != nil {
				return err
			}
			slog.Info("Bill reminders processed", "due", output.Due, "sent", output.Sent, "failed", output.Failed)
			return nil
		})
		if err != nil {
			slog.Error("Failed to schedule bill reminders", "error", err)
			os.Exit(1)
		}
	}
	jobs.Start()

	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				injector.AuthRateLimiter.Cleanup()
			case <-cleanupCtx.Done():
				return
			}
		}
	}()

	engine := injector.Router.Setup(injector.RouterOptions())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jobs.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
