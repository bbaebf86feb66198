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
	"github.com/feederwatch/fw-pipeline/internal/flights"
	"github.com/feederwatch/fw-pipeline/internal/logger"
	"github.com/feederwatch/fw-pipeline/internal/messaging"
	"github.com/feederwatch/fw-pipeline/internal/providers/jetstream"
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
	cfg, err := config.LoadFlightBuilderConfig(*configFile, *envPath)
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
			"service": "flight-builder",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting flight builder")

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

	// Initialize event publisher; fall back to no-op when NATS is not
	// configured
	publisher := messaging.NewNoopPublisher()
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), adapter.NewJSON())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()

	// Initialize the flight builder job
	clock := adapter.NewClock()
	job := flights.New(&flights.Config{
		Interval:           cfg.FlightBuilder.Interval,
		Lookback:           cfg.FlightBuilder.Lookback,
		GapThreshold:       cfg.FlightBuilder.GapThreshold,
		DedupTolerance:     cfg.FlightBuilder.DedupTolerance,
		DownsampleInterval: cfg.FlightBuilder.DownsampleInterval,
		AltitudeThreshold:  cfg.FlightBuilder.AltitudeThreshold,
		WorkerPoolSize:     cfg.FlightBuilder.WorkerPoolSize,
	}, dataStore, publisher, clock)

	logger.InfoCtx(ctx, "Initialized flight builder",
		zap.Duration("interval", cfg.FlightBuilder.Interval),
		zap.Duration("lookback", cfg.FlightBuilder.Lookback),
		zap.Duration("gap_threshold", cfg.FlightBuilder.GapThreshold),
		zap.Int("worker_pool_size", cfg.FlightBuilder.WorkerPoolSize),
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

	logger.InfoCtx(shutdownCtx, "Flight builder stopped")
}
