package flights

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feederwatch/fw-pipeline/internal/adapter"
	"github.com/feederwatch/fw-pipeline/internal/domain"
	"github.com/feederwatch/fw-pipeline/internal/logger"
	"github.com/feederwatch/fw-pipeline/internal/messaging"
	"github.com/feederwatch/fw-pipeline/internal/pipeline"
	"github.com/feederwatch/fw-pipeline/internal/store"
)

// Config holds configuration for the flight segmentation engine
type Config struct {
	// Interval is the cadence between segmentation runs
	Interval time.Duration
	// Lookback bounds how far back positions are considered; consecutive runs
	// are expected to overlap the previous run's tail
	Lookback time.Duration
	// GapThreshold is the maximum time delta between consecutive positions
	// within one flight
	GapThreshold time.Duration
	// DedupTolerance is the window around a candidate start time within which
	// an existing flight suppresses a duplicate
	DedupTolerance time.Duration
	// DownsampleInterval is the minimum time between kept track points
	DownsampleInterval time.Duration
	// AltitudeThreshold is the altitude change in feet that forces a track
	// point to be kept
	AltitudeThreshold int
	// WorkerPoolSize bounds per-hex fan-out; hexes are independent so
	// parallel processing is safe
	WorkerPoolSize int
}

// Builder is the flight segmentation engine job
type Builder struct {
	*pipeline.Runner

	config    *Config
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
}

// New creates a new flight segmentation engine job
func New(cfg *Config, st store.Store, publisher messaging.Publisher, clock adapter.Clock) *Builder {
	b := &Builder{
		config:    cfg,
		store:     st,
		publisher: publisher,
		clock:     clock,
	}
	b.Runner = pipeline.NewRunner("flight-builder", cfg.Interval, clock, b.runCycle)

	return b
}

// runCycle segments every aircraft active inside the lookback window. A
// failure on one hex skips that hex only; other hexes continue.
func (b *Builder) runCycle(ctx context.Context) error {
	start := b.clock.Now()
	cutoff := start.Add(-b.config.Lookback)

	hexes, err := b.store.GetActiveHexesSince(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list active hexes: %w", err)
	}

	if len(hexes) == 0 {
		return nil
	}

	var created, skipped atomic.Int32

	pool := pond.NewPool(b.config.WorkerPoolSize, pond.WithContext(ctx))
	for _, hex := range hexes {
		pool.Submit(func() {
			c, s, err := b.processHex(ctx, hex, cutoff)
			if err != nil {
				logger.ErrorCtx(ctx, err, zap.String("hex", string(hex)))
				return
			}
			created.Add(int32(c))
			skipped.Add(int32(s))
		})
	}
	pool.StopAndWait()

	logger.InfoCtx(ctx, "Segmentation cycle completed",
		zap.Duration("duration", b.clock.Since(start)),
		zap.Int("hexes", len(hexes)),
		zap.Int32("flights_created", created.Load()),
		zap.Int32("duplicates_skipped", skipped.Load()),
	)

	return nil
}

// processHex segments one aircraft's position history and persists any new
// flights. A store write failure aborts this hex's remaining segments.
func (b *Builder) processHex(ctx context.Context, hex domain.Hex, cutoff time.Time) (created, skipped int, err error) {
	positions, err := b.store.GetPositionsSince(ctx, hex, cutoff)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch positions: %w", err)
	}

	for _, segment := range SplitSegments(positions, b.config.GapThreshold) {
		// A single position cannot yield a duration or distance
		if len(segment) < 2 {
			continue
		}

		exists, err := b.store.FlightExistsNear(ctx, hex, segment[0].CapturedAt, b.config.DedupTolerance)
		if err != nil {
			return created, skipped, fmt.Errorf("failed to check for existing flight: %w", err)
		}
		if exists {
			skipped++
			continue
		}

		flight, err := BuildFlight(segment, b.config.DownsampleInterval, b.config.AltitudeThreshold)
		if err != nil {
			return created, skipped, fmt.Errorf("failed to build flight: %w", err)
		}

		if err := b.store.CreateFlight(ctx, flight); err != nil {
			return created, skipped, fmt.Errorf("failed to persist flight: %w", err)
		}
		created++

		// Best-effort notification; a publish failure never fails the batch
		event := &messaging.FlightCreatedEvent{
			FlightID:   flight.ID,
			Hex:        flight.Hex,
			Callsign:   flight.Callsign,
			StartedAt:  flight.StartedAt,
			EndedAt:    flight.EndedAt,
			DistanceNM: flight.DistanceNM,
		}
		if err := b.publisher.PublishFlightCreated(ctx, event); err != nil {
			logger.WarnCtx(ctx, "Failed to publish flight-created event",
				zap.Error(err),
				zap.String("flight_id", flight.ID),
			)
		}
	}

	return created, skipped, nil
}
