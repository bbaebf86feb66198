// Package liveness implements the feeder liveness and stats aggregator: it
// ingests heartbeat-derived counters, updates feeder running totals, flips
// online/offline status based on recency and recomputes per-user tier
// eligibility every cycle.
package liveness

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feederwatch/fw-pipeline/internal/adapter"
	"github.com/feederwatch/fw-pipeline/internal/domain"
	"github.com/feederwatch/fw-pipeline/internal/logger"
	"github.com/feederwatch/fw-pipeline/internal/messaging"
	"github.com/feederwatch/fw-pipeline/internal/pipeline"
	"github.com/feederwatch/fw-pipeline/internal/store"
	"github.com/feederwatch/fw-pipeline/internal/store/schema"
	"github.com/feederwatch/fw-pipeline/internal/telemetry"
)

// Config holds configuration for the liveness aggregator
type Config struct {
	// Interval is the aggregation cadence
	Interval time.Duration
	// OfflineThreshold is how stale a feeder's last heartbeat may be before
	// it is marked offline
	OfflineThreshold time.Duration
}

// Aggregator is the feeder liveness and stats aggregation job
type Aggregator struct {
	*pipeline.Runner

	config    *Config
	store     store.Store
	feed      telemetry.Client
	publisher messaging.Publisher
	clock     adapter.Clock
}

// New creates a new liveness aggregator job
func New(cfg *Config, st store.Store, feed telemetry.Client, publisher messaging.Publisher, clock adapter.Clock) *Aggregator {
	a := &Aggregator{
		config:    cfg,
		store:     st,
		feed:      feed,
		publisher: publisher,
		clock:     clock,
	}
	a.Runner = pipeline.NewRunner("liveness-aggregator", cfg.Interval, clock, a.runCycle)

	return a
}

// runCycle runs one aggregation pass. An unreachable feed is treated as
// "nothing is live", not "unknown": every online feeder is marked offline
// and the cycle ends.
func (a *Aggregator) runCycle(ctx context.Context) error {
	stats, err := a.feed.FetchStats(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "Telemetry feed unreachable, marking all online feeders offline", zap.Error(err))
		return a.markAllOffline(ctx)
	}

	feeders, err := a.store.GetFeeders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list feeders: %w", err)
	}

	now := a.clock.Now()
	refreshed := make(map[uuid.UUID]bool, len(feeders))

	// A quiet feed is not necessarily a dead one, but with no fresh messages
	// there is nothing new to attribute.
	if stats.MessagesLastMinute > 0 {
		for i := range feeders {
			feeder := &feeders[i]
			if err := a.updateTotals(ctx, feeder, stats, now); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("feeder_id", feeder.ID.String()))
				continue
			}
			refreshed[feeder.ID] = true
		}
	}

	if err := a.sweepOffline(ctx, feeders, refreshed, now); err != nil {
		return err
	}

	return a.recomputeTiers(ctx)
}

// updateTotals sets a feeder's running totals from the feed's cumulative
// counters. Totals are set, not incremented, so an upstream counter reset
// does not corrupt history; the heartbeat ingestion boundary is responsible
// for delta reconciliation before counters reach this job.
//
// The feed carries no per-feeder tagging, so counters are attributed to every
// registered feeder. Correct only for single-feeder deployments; a
// multi-feeder deployment needs per-feeder-tagged telemetry.
func (a *Aggregator) updateTotals(ctx context.Context, feeder *schema.Feeder, stats *telemetry.Stats, now time.Time) error {
	aircraftSeen := feeder.AircraftSeen
	if stats.AircraftTracked > aircraftSeen {
		aircraftSeen = stats.AircraftTracked
	}

	input := store.UpdateFeederTotalsInput{
		MessagesTotal:  stats.Messages,
		PositionsTotal: stats.Positions,
		AircraftSeen:   aircraftSeen,
		LastSeen:       now,
		IsOnline:       true,
	}
	if err := a.store.UpdateFeederTotals(ctx, feeder.ID, input); err != nil {
		return fmt.Errorf("failed to update feeder totals: %w", err)
	}

	if !feeder.IsOnline {
		a.publishStatus(ctx, feeder.ID, true, now)
	}

	return nil
}

// sweepOffline marks any feeder whose last heartbeat is older than the
// offline threshold, or missing entirely, as offline. Applies regardless of
// feed reachability.
func (a *Aggregator) sweepOffline(ctx context.Context, feeders []schema.Feeder, refreshed map[uuid.UUID]bool, now time.Time) error {
	var stale []uuid.UUID
	for i := range feeders {
		feeder := &feeders[i]
		if refreshed[feeder.ID] {
			continue
		}
		if feeder.LastSeen == nil || now.Sub(*feeder.LastSeen) >= a.config.OfflineThreshold {
			stale = append(stale, feeder.ID)
			if feeder.IsOnline {
				a.publishStatus(ctx, feeder.ID, false, now)
			}
		}
	}

	if len(stale) == 0 {
		return nil
	}

	// Re-asserting offline on an already-offline feeder is a tolerated no-op
	if err := a.store.SetFeedersOnline(ctx, stale, false); err != nil {
		return fmt.Errorf("failed to mark stale feeders offline: %w", err)
	}

	logger.InfoCtx(ctx, "Marked stale feeders offline", zap.Int("count", len(stale)))
	return nil
}

// markAllOffline is the fail-safe path for an unreachable telemetry feed
func (a *Aggregator) markAllOffline(ctx context.Context) error {
	online, err := a.store.GetOnlineFeeders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list online feeders: %w", err)
	}

	if len(online) == 0 {
		return nil
	}

	now := a.clock.Now()
	ids := make([]uuid.UUID, len(online))
	for i := range online {
		ids[i] = online[i].ID
	}

	if err := a.store.SetFeedersOnline(ctx, ids, false); err != nil {
		return fmt.Errorf("failed to mark feeders offline: %w", err)
	}

	for _, id := range ids {
		a.publishStatus(ctx, id, false, now)
	}

	logger.InfoCtx(ctx, "Marked all online feeders offline", zap.Int("count", len(ids)))
	return nil
}

// recomputeTiers derives each user's tier from their online feeder count:
// at least one online feeder grants the feeder tier, none demotes to free.
func (a *Aggregator) recomputeTiers(ctx context.Context) error {
	withOnline, err := a.store.GetUserIDsWithOnlineFeeders(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users with online feeders: %w", err)
	}

	feederTier, err := a.store.GetUserIDsByTier(ctx, domain.UserTierFeeder)
	if err != nil {
		return fmt.Errorf("failed to list feeder-tier users: %w", err)
	}

	online := make(map[uuid.UUID]bool, len(withOnline))
	for _, id := range withOnline {
		online[id] = true
	}
	inFeederTier := make(map[uuid.UUID]bool, len(feederTier))
	for _, id := range feederTier {
		inFeederTier[id] = true
	}

	for _, id := range withOnline {
		if inFeederTier[id] {
			continue
		}
		if err := a.store.UpdateUserTier(ctx, id, domain.UserTierFeeder); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("user_id", id.String()))
		}
	}

	for _, id := range feederTier {
		if online[id] {
			continue
		}
		if err := a.store.UpdateUserTier(ctx, id, domain.UserTierFree); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("user_id", id.String()))
		}
	}

	return nil
}

func (a *Aggregator) publishStatus(ctx context.Context, id uuid.UUID, isOnline bool, at time.Time) {
	event := &messaging.FeederStatusEvent{
		FeederID: id,
		Online:   isOnline,
		At:       at,
	}
	if err := a.publisher.PublishFeederStatus(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish feeder status event",
			zap.Error(err),
			zap.String("feeder_id", id.String()),
			zap.Bool("online", isOnline),
		)
	}
}
