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
	"github.com/feederwatch/fw-pipeline/internal/recorder"
	"github.com/feederwatch/fw-pipeline/internal/store"
	"github.com/feederwatch/fw-pipeline/internal/telemetry"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadRecorderConfig(*configFile, *envPath)
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
			"service": "recorder",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting position recorder")

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

	// Initialize adapters and telemetry client
	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.Telemetry.HTTPTimeout)
	feed := telemetry.NewHTTPClient(httpClient, cfg.Telemetry.AircraftURL, cfg.Telemetry.StatsURL)

	// Initialize the recorder job
	job := recorder.New(&recorder.Config{
		PollInterval: cfg.Recorder.PollInterval,
	}, dataStore, feed, clock)

	logger.InfoCtx(ctx, "Initialized position recorder",
		zap.Duration("poll_interval", cfg.Recorder.PollInterval),
		zap.String("aircraft_url", cfg.Telemetry.AircraftURL),
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

	logger.InfoCtx(shutdownCtx, "Position recorder stopped")
}
