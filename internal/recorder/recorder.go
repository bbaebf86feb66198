// Package recorder implements the position recorder job: it samples the live
// telemetry feed on a fixed cadence and appends position rows. Deliberately
// the thinnest job in the pipeline.
package recorder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feederwatch/fw-pipeline/internal/adapter"
	"github.com/feederwatch/fw-pipeline/internal/domain"
	"github.com/feederwatch/fw-pipeline/internal/logger"
	"github.com/feederwatch/fw-pipeline/internal/pipeline"
	"github.com/feederwatch/fw-pipeline/internal/store"
	"github.com/feederwatch/fw-pipeline/internal/store/schema"
	"github.com/feederwatch/fw-pipeline/internal/telemetry"
)

// Config holds configuration for the position recorder
type Config struct {
	// PollInterval is the sampling cadence
	PollInterval time.Duration
}

// Recorder samples the telemetry feed and appends positions
type Recorder struct {
	*pipeline.Runner

	store store.Store
	feed  telemetry.Client
	clock adapter.Clock
}

// New creates a new position recorder job
func New(cfg *Config, st store.Store, feed telemetry.Client, clock adapter.Clock) *Recorder {
	r := &Recorder{
		store: st,
		feed:  feed,
		clock: clock,
	}
	r.Runner = pipeline.NewRunner("position-recorder", cfg.PollInterval, clock, r.runCycle)

	return r
}

// runCycle samples the feed once and appends one position per aircraft with
// usable coordinates. An unreachable feed skips the cycle; the next tick is
// the retry.
func (r *Recorder) runCycle(ctx context.Context) error {
	report, err := r.feed.FetchAircraft(ctx)
	if err != nil {
		return fmt.Errorf("failed to sample telemetry feed: %w", err)
	}

	now := r.clock.Now()
	positions := Sample(report, now)
	if len(positions) == 0 {
		return nil
	}

	if err := r.store.CreatePositions(ctx, positions); err != nil {
		return fmt.Errorf("failed to append positions: %w", err)
	}

	logger.DebugCtx(ctx, "Recorded positions",
		zap.Int("count", len(positions)),
		zap.Int("aircraft_in_report", len(report.Aircraft)),
	)

	return nil
}

// Sample converts an aircraft report into position rows, dropping entries
// without coordinates or with malformed hexes.
func Sample(report *telemetry.AircraftReport, capturedAt time.Time) []schema.Position {
	positions := make([]schema.Position, 0, len(report.Aircraft))
	for i := range report.Aircraft {
		a := &report.Aircraft[i]
		if !a.HasPosition() {
			continue
		}

		positions = append(positions, schema.Position{
			Hex:         domain.NormalizeHex(a.Hex),
			Lat:         *a.Lat,
			Lon:         *a.Lon,
			Altitude:    a.Altitude(),
			Heading:     a.Track,
			GroundSpeed: a.GroundSpeed,
			Squawk:      a.Squawk,
			Callsign:    a.Callsign,
			CapturedAt:  capturedAt,
		})
	}

	return positions
}
