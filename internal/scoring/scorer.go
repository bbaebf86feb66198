package scoring

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/feederwatch/fw-pipeline/internal/adapter"
	"github.com/feederwatch/fw-pipeline/internal/logger"
	"github.com/feederwatch/fw-pipeline/internal/pipeline"
	"github.com/feederwatch/fw-pipeline/internal/store"
	"github.com/feederwatch/fw-pipeline/internal/store/schema"
)

// Config holds configuration for the scoring and ranking engine
type Config struct {
	// Interval is the scoring cadence
	Interval time.Duration
	// SnapshotInterval is the assumed time between snapshots when deriving
	// per-minute rates
	SnapshotInterval time.Duration
	// UptimeWindow is the trailing window over which uptime is measured
	UptimeWindow time.Duration
	// ExpectedSnapshots is the snapshot count representing 100% uptime over
	// the uptime window
	ExpectedSnapshots int
	// Retention bounds snapshot history; older rows are deleted each run
	Retention time.Duration

	Weights Weights
	Targets Targets
}

// Scorer is the scoring and ranking engine job
type Scorer struct {
	*pipeline.Runner

	config *Config
	store  store.Store
	clock  adapter.Clock
}

// New creates a new scoring and ranking engine job
func New(cfg *Config, st store.Store, clock adapter.Clock) *Scorer {
	s := &Scorer{
		config: cfg,
		store:  st,
		clock:  clock,
	}
	s.Runner = pipeline.NewRunner("scorer", cfg.Interval, clock, s.runCycle)

	return s
}

// runCycle scores every online feeder, re-ranks the whole network and prunes
// stale snapshot history. A failure on one feeder skips that feeder only.
func (s *Scorer) runCycle(ctx context.Context) error {
	start := s.clock.Now()

	online, err := s.store.GetOnlineFeeders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list online feeders: %w", err)
	}

	scored := 0
	for i := range online {
		feeder := &online[i]
		if err := s.scoreFeeder(ctx, feeder, start); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("feeder_id", feeder.ID.String()))
			continue
		}
		scored++
	}

	if err := s.rankAll(ctx); err != nil {
		return err
	}

	pruned, err := s.store.DeleteSnapshotsBefore(ctx, start.Add(-s.config.Retention))
	if err != nil {
		return fmt.Errorf("failed to prune snapshot history: %w", err)
	}

	logger.InfoCtx(ctx, "Scoring cycle completed",
		zap.Duration("duration", s.clock.Since(start)),
		zap.Int("feeders_scored", scored),
		zap.Int64("snapshots_pruned", pruned),
	)

	return nil
}

// scoreFeeder computes one feeder's snapshot and composite score
func (s *Scorer) scoreFeeder(ctx context.Context, feeder *schema.Feeder, now time.Time) error {
	latest, err := s.store.GetLatestSnapshot(ctx, feeder.ID)
	if err != nil {
		return fmt.Errorf("failed to get latest snapshot: %w", err)
	}

	// First-snapshot bootstrap: with no prior snapshot the delta is the
	// full running total
	var prevMessages, prevPositions int64
	if latest != nil {
		prevMessages = latest.MessagesTotal
		prevPositions = latest.PositionsTotal
	}

	messagesDelta := ClampDelta(feeder.MessagesTotal, prevMessages)
	positionsDelta := ClampDelta(feeder.PositionsTotal, prevPositions)

	intervalMinutes := s.config.SnapshotInterval.Minutes()
	messageRate := float64(messagesDelta) / intervalMinutes
	positionRate := float64(positionsDelta) / intervalMinutes

	observed, err := s.store.CountSnapshotsSince(ctx, feeder.ID, now.Add(-s.config.UptimeWindow))
	if err != nil {
		return fmt.Errorf("failed to count snapshots: %w", err)
	}
	uptime := UptimePercent(observed, s.config.ExpectedSnapshots)

	score := CompositeScore(uptime, messageRate, positionRate, feeder.AircraftSeen, s.config.Weights, s.config.Targets)

	snapshot := &schema.FeederStats{
		FeederID:       feeder.ID,
		MessagesTotal:  feeder.MessagesTotal,
		PositionsTotal: feeder.PositionsTotal,
		MessagesDelta:  messagesDelta,
		PositionsDelta: positionsDelta,
		AircraftCount:  feeder.AircraftSeen,
		MessageRate:    messageRate,
		PositionRate:   positionRate,
		UptimePercent:  uptime,
		Score:          score,
		CreatedAt:      now,
	}
	if err := s.store.CreateSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}

	if err := s.store.UpdateFeederScore(ctx, feeder.ID, score); err != nil {
		return fmt.Errorf("failed to write feeder score: %w", err)
	}

	return nil
}

// rankAll orders all feeders by current score descending and assigns
// 1-indexed ranks, shifting each feeder's current rank into its previous
// rank. Ordering ties break on feeder ID so re-running the pass with
// unchanged scores reproduces the same ranks.
func (s *Scorer) rankAll(ctx context.Context) error {
	feeders, err := s.store.GetFeeders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list feeders for ranking: %w", err)
	}

	sort.Slice(feeders, func(i, j int) bool {
		if feeders[i].CurrentScore != feeders[j].CurrentScore {
			return feeders[i].CurrentScore > feeders[j].CurrentScore
		}
		return feeders[i].ID.String() < feeders[j].ID.String()
	})

	for i := range feeders {
		feeder := &feeders[i]
		rank := i + 1
		if err := s.store.UpdateFeederRank(ctx, feeder.ID, feeder.CurrentRank, rank); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("feeder_id", feeder.ID.String()))
		}
	}

	return nil
}
