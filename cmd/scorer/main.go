package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feederwatch/fw-pipeline/internal/adapter"
	"github.com/feederwatch/fw-pipeline/internal/config"
	"github.com/feederwatch/fw-pipeline/internal/logger"
	"github.com/feederwatch/fw-pipeline/internal/scoring"
	"github.com/feederwatch/fw-pipeline/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadScorerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "scorer",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting scoring engine")

	// Connect to database
	db, err := store.Open(ctx, cfg.Database.DSN(), 30*time.Second)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize the scoring job
	clock := adapter.NewClock()
	job := scoring.New(&scoring.Config{
		Interval:          cfg.Scorer.Interval,
		SnapshotInterval:  cfg.Scorer.SnapshotInterval,
		UptimeWindow:      cfg.Scorer.UptimeWindow,
		ExpectedSnapshots: cfg.Scorer.ExpectedSnapshots,
		Retention:         cfg.Scorer.Retention,
		Weights: scoring.Weights{
			Uptime:       cfg.Scorer.UptimeWeight,
			MessageRate:  cfg.Scorer.MessageRateWeight,
			PositionRate: cfg.Scorer.PositionRateWeight,
			Aircraft:     cfg.Scorer.AircraftWeight,
		},
		Targets: scoring.Targets{
			MessageRate:  cfg.Scorer.MessageRateTarget,
			PositionRate: cfg.Scorer.PositionRateTarget,
			Aircraft:     cfg.Scorer.AircraftTarget,
		},
	}, dataStore, clock)

	logger.InfoCtx(ctx, "Initialized scoring engine",
		zap.Duration("interval", cfg.Scorer.Interval),
		zap.Duration("uptime_window", cfg.Scorer.UptimeWindow),
		zap.Duration("retention", cfg.Scorer.Retention),
	)

	// Start the job in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := job.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the job
	cancel()

	// Give the job time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := job.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Scoring engine stopped")
}
