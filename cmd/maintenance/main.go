// Package main is the entrypoint for the Store Warden maintenance runner.
//
// Usage: maintenance <workflow>
// Workflows: validate, cleanup, stats, prune
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/storewarden/storewarden/internal/batch"
	"github.com/storewarden/storewarden/internal/cache"
	"github.com/storewarden/storewarden/internal/config"
	"github.com/storewarden/storewarden/internal/integrity"
	"github.com/storewarden/storewarden/internal/metrics"
	"github.com/storewarden/storewarden/internal/repository"
	"github.com/storewarden/storewarden/internal/service"
	"github.com/storewarden/storewarden/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		slog.Error("usage: maintenance <validate|cleanup|stats|prune>")
		os.Exit(2)
	}
	workflow := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.WorkflowTimeout)
	defer cancel()

	// Initialize database
	pool, err := store.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	userStore := store.NewPostgresUserStore(pool)
	orderStore := store.NewPostgresOrderStore(pool)

	// Initialize cache when configured
	var userCache service.UserCache
	if cfg.CacheEnabled() {
		cacheClient, err := cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		defer cacheClient.Close()
		logger.Info("connected to Redis")
		userCache = cacheClient
	}

	// Wire the tiers
	recorder := metrics.NewNoop()
	userRepo := repository.NewUserRepository(userStore)
	orderRepo := repository.NewOrderRepository(orderStore)
	userSvc := service.NewUserService(userRepo, userCache, recorder)
	orderSvc := service.NewOrderService(orderRepo, userRepo, recorder)
	engine := integrity.NewEngine(userStore, orderStore, logger, recorder)
	coordinator := batch.NewCoordinator(userStore, orderStore, userSvc, orderSvc, engine, logger, recorder)

	if err := run(ctx, coordinator, workflow, cfg); err != nil {
		logger.Error("workflow failed", slog.String("workflow", workflow), "error", err)
		os.Exit(1)
	}
}

// run dispatches a single maintenance workflow.
func run(ctx context.Context, coordinator *batch.Coordinator, workflow string, cfg *config.Config) error {
	switch workflow {
	case "validate":
		_, err := coordinator.ValidateDataIntegrity(ctx)
		return err
	case "cleanup":
		cutoff := time.Now().UTC().Add(-cfg.CleanupOrderMaxAge)
		// Inactivity is a policy decision; the scheduled run keeps
		// order-less users unless an operator opts into pruning.
		_, err := coordinator.CleanupOldData(ctx, integrity.StaleBefore(cutoff), integrity.NeverInactive)
		return err
	case "prune":
		cutoff := time.Now().UTC().Add(-cfg.CleanupOrderMaxAge)
		_, err := coordinator.CleanupOldData(ctx, integrity.StaleBefore(cutoff), integrity.AlwaysInactive)
		return err
	case "stats":
		_, err := coordinator.UpdateStatistics(ctx)
		return err
	default:
		slog.Error("unknown workflow", slog.String("workflow", workflow))
		os.Exit(2)
		return nil
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
