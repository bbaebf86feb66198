package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feederwatch/fw-pipeline/internal/domain"
	"github.com/feederwatch/fw-pipeline/internal/store/schema"
)

// UpdateFeederTotalsInput carries the monotonic counter set for a feeder.
// Totals are set from the feed's cumulative counters, never incremented, so
// a counter reset upstream does not corrupt history.
type UpdateFeederTotalsInput struct {
	MessagesTotal  int64
	PositionsTotal int64
	AircraftSeen   int64
	LastSeen       time.Time
	IsOnline       bool
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreatePositions appends a batch of position samples
	CreatePositions(ctx context.Context, positions []schema.Position) error
	// GetPositionsSince retrieves all positions for a hex captured at or after
	// since, ordered ascending by capture time. Ascending order is a
	// correctness precondition for gap detection.
	GetPositionsSince(ctx context.Context, hex domain.Hex, since time.Time) ([]schema.Position, error)
	// GetActiveHexesSince retrieves the distinct hexes with at least one
	// position captured at or after since
	GetActiveHexesSince(ctx context.Context, since time.Time) ([]domain.Hex, error)

	// FlightExistsNear checks whether a flight for the hex exists with a start
	// time within the tolerance of start
	FlightExistsNear(ctx context.Context, hex domain.Hex, start time.Time, tolerance time.Duration) (bool, error)
	// CreateFlight persists a new flight record
	CreateFlight(ctx context.Context, flight *schema.Flight) error

	// GetFeeders retrieves all registered feeders
	GetFeeders(ctx context.Context) ([]schema.Feeder, error)
	// GetOnlineFeeders retrieves all feeders currently marked online
	GetOnlineFeeders(ctx context.Context) ([]schema.Feeder, error)
	// UpdateFeederTotals sets a feeder's running totals, last-seen time and
	// online flag
	UpdateFeederTotals(ctx context.Context, id uuid.UUID, input UpdateFeederTotalsInput) error
	// UpdateFeederScore writes a feeder's current composite score
	UpdateFeederScore(ctx context.Context, id uuid.UUID, score int) error
	// UpdateFeederRank writes a feeder's rank pair
	UpdateFeederRank(ctx context.Context, id uuid.UUID, previousRank, currentRank int) error
	// SetFeedersOnline bulk-updates the online flag for the given feeders
	SetFeedersOnline(ctx context.Context, ids []uuid.UUID, online bool) error

	// GetLatestSnapshot retrieves a feeder's most recent stats snapshot,
	// or nil when none exists
	GetLatestSnapshot(ctx context.Context, feederID uuid.UUID) (*schema.FeederStats, error)
	// CreateSnapshot appends a stats snapshot
	CreateSnapshot(ctx context.Context, snapshot *schema.FeederStats) error
	// CountSnapshotsSince counts a feeder's snapshots created at or after since
	CountSnapshotsSince(ctx context.Context, feederID uuid.UUID, since time.Time) (int64, error)
	// DeleteSnapshotsBefore deletes snapshots older than cutoff and returns
	// the number of rows removed
	DeleteSnapshotsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// GetUserIDsWithOnlineFeeders retrieves the IDs of users owning at least
	// one online feeder
	GetUserIDsWithOnlineFeeders(ctx context.Context) ([]uuid.UUID, error)
	// GetUserIDsByTier retrieves the IDs of users in the given tier
	GetUserIDsByTier(ctx context.Context, tier domain.UserTier) ([]uuid.UUID, error)
	// UpdateUserTier sets a user's tier
	UpdateUserTier(ctx context.Context, id uuid.UUID, tier domain.UserTier) error
}
