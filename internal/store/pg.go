package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feederwatch/fw-pipeline/internal/domain"
	"github.com/feederwatch/fw-pipeline/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// Open connects to PostgreSQL, retrying with exponential backoff while the
// database comes up. Retry applies to startup only; per-query failures are
// surfaced straight to callers.
func Open(ctx context.Context, dsn string, maxElapsed time.Duration) (*gorm.DB, error) {
	var db *gorm.DB

	operation := func() error {
		var err error
		db, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{})
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxElapsed

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings
// into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// database/sql treats MaxIdleConns above MaxOpenConns as MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// CreatePositions appends a batch of position samples
func (s *pgStore) CreatePositions(ctx context.Context, positions []schema.Position) error {
	if len(positions) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).Create(&positions).Error; err != nil {
		return fmt.Errorf("failed to create positions: %w", err)
	}

	return nil
}

// GetPositionsSince retrieves all positions for a hex captured at or after
// since, ordered ascending by capture time
func (s *pgStore) GetPositionsSince(ctx context.Context, hex domain.Hex, since time.Time) ([]schema.Position, error) {
	var positions []schema.Position
	err := s.db.WithContext(ctx).
		Where("hex = ? AND captured_at >= ?", hex, since).
		Order("captured_at ASC").
		Find(&positions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}

	return positions, nil
}

// GetActiveHexesSince retrieves the distinct hexes with at least one position
// captured at or after since
func (s *pgStore) GetActiveHexesSince(ctx context.Context, since time.Time) ([]domain.Hex, error) {
	var hexes []domain.Hex
	err := s.db.WithContext(ctx).
		Model(&schema.Position{}).
		Where("captured_at >= ?", since).
		Distinct("hex").
		Pluck("hex", &hexes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active hexes: %w", err)
	}

	return hexes, nil
}

// FlightExistsNear checks whether a flight for the hex exists with a start
// time within the tolerance of start
func (s *pgStore) FlightExistsNear(ctx context.Context, hex domain.Hex, start time.Time, tolerance time.Duration) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.Flight{}).
		Where("hex = ? AND started_at BETWEEN ? AND ?", hex, start.Add(-tolerance), start.Add(tolerance)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check flight existence: %w", err)
	}

	return count > 0, nil
}

// CreateFlight persists a new flight record
func (s *pgStore) CreateFlight(ctx context.Context, flight *schema.Flight) error {
	if err := s.db.WithContext(ctx).Create(flight).Error; err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}

	return nil
}

// GetFeeders retrieves all registered feeders
func (s *pgStore) GetFeeders(ctx context.Context) ([]schema.Feeder, error) {
	var feeders []schema.Feeder
	if err := s.db.WithContext(ctx).Find(&feeders).Error; err != nil {
		return nil, fmt.Errorf("failed to get feeders: %w", err)
	}

	return feeders, nil
}

// GetOnlineFeeders retrieves all feeders currently marked online
func (s *pgStore) GetOnlineFeeders(ctx context.Context) ([]schema.Feeder, error) {
	var feeders []schema.Feeder
	err := s.db.WithContext(ctx).
		Where("is_online = ?", true).
		Find(&feeders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get online feeders: %w", err)
	}

	return feeders, nil
}

// UpdateFeederTotals sets a feeder's running totals, last-seen time and
// online flag
func (s *pgStore) UpdateFeederTotals(ctx context.Context, id uuid.UUID, input UpdateFeederTotalsInput) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Feeder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"messages_total":  input.MessagesTotal,
			"positions_total": input.PositionsTotal,
			"aircraft_seen":   input.AircraftSeen,
			"last_seen":       input.LastSeen,
			"is_online":       input.IsOnline,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update feeder totals: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrFeederNotFound
	}

	return nil
}

// UpdateFeederScore writes a feeder's current composite score
func (s *pgStore) UpdateFeederScore(ctx context.Context, id uuid.UUID, score int) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Feeder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_score": score,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update feeder score: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrFeederNotFound
	}

	return nil
}

// UpdateFeederRank writes a feeder's rank pair
func (s *pgStore) UpdateFeederRank(ctx context.Context, id uuid.UUID, previousRank, currentRank int) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Feeder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"previous_rank": previousRank,
			"current_rank":  currentRank,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update feeder rank: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrFeederNotFound
	}

	return nil
}

// SetFeedersOnline bulk-updates the online flag for the given feeders
func (s *pgStore) SetFeedersOnline(ctx context.Context, ids []uuid.UUID, online bool) error {
	if len(ids) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Model(&schema.Feeder{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"is_online":  online,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to set feeders online state: %w", err)
	}

	return nil
}

// GetLatestSnapshot retrieves a feeder's most recent stats snapshot, or nil
// when none exists
func (s *pgStore) GetLatestSnapshot(ctx context.Context, feederID uuid.UUID) (*schema.FeederStats, error) {
	var snapshot schema.FeederStats
	err := s.db.WithContext(ctx).
		Where("feeder_id = ?", feederID).
		Order("created_at DESC").
		First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}

	return &snapshot, nil
}

// CreateSnapshot appends a stats snapshot
func (s *pgStore) CreateSnapshot(ctx context.Context, snapshot *schema.FeederStats) error {
	if err := s.db.WithContext(ctx).Create(snapshot).Error; err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}

	return nil
}

// CountSnapshotsSince counts a feeder's snapshots created at or after since
func (s *pgStore) CountSnapshotsSince(ctx context.Context, feederID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.FeederStats{}).
		Where("feeder_id = ? AND created_at >= ?", feederID, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}

	return count, nil
}

// DeleteSnapshotsBefore deletes snapshots older than cutoff and returns the
// number of rows removed
func (s *pgStore) DeleteSnapshotsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&schema.FeederStats{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old snapshots: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// GetUserIDsWithOnlineFeeders retrieves the IDs of users owning at least one
// online feeder
func (s *pgStore) GetUserIDsWithOnlineFeeders(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&schema.Feeder{}).
		Where("is_online = ?", true).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get users with online feeders: %w", err)
	}

	return ids, nil
}

// GetUserIDsByTier retrieves the IDs of users in the given tier
func (s *pgStore) GetUserIDsByTier(ctx context.Context, tier domain.UserTier) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&schema.User{}).
		Where("tier = ?", tier).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get users by tier: %w", err)
	}

	return ids, nil
}

// UpdateUserTier sets a user's tier
func (s *pgStore) UpdateUserTier(ctx context.Context, id uuid.UUID, tier domain.UserTier) error {
	err := s.db.WithContext(ctx).
		Model(&schema.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"tier":       tier,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update user tier: %w", err)
	}

	return nil
}
