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
	"github.com/feederwatch/fw-pipeline/internal/liveness"
	"github.com/feederwatch/fw-pipeline/internal/logger"
	"github.com/feederwatch/fw-pipeline/internal/messaging"
	"github.com/feederwatch/fw-pipeline/internal/providers/jetstream"
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
	cfg, err := config.LoadAggregatorConfig(*configFile, *envPath)
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
			"service": "aggregator",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting liveness aggregator")

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

	// Initialize the aggregator job
	job := liveness.New(&liveness.Config{
		Interval:         cfg.Aggregator.Interval,
		OfflineThreshold: cfg.Aggregator.OfflineThreshold,
	}, dataStore, feed, publisher, clock)

	logger.InfoCtx(ctx, "Initialized liveness aggregator",
		zap.Duration("interval", cfg.Aggregator.Interval),
		zap.Duration("offline_threshold", cfg.Aggregator.OfflineThreshold),
		zap.String("stats_url", cfg.Telemetry.StatsURL),
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

	logger.InfoCtx(shutdownCtx, "Liveness aggregator stopped")
}
