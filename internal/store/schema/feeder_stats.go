package schema

import (
	"time"

	"github.com/google/uuid"
)

// FeederStats represents the feeder_stats table - one periodic measurement of
// a feeder's activity. Rows are append-only; they serve both as an audit
// trail and as the uptime-denominator source for scoring. Rows older than the
// retention window are deleted by the scoring engine on each run.
type FeederStats struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// FeederID references the measured feeder
	FeederID uuid.UUID `gorm:"column:feeder_id;not null;type:uuid;index:idx_feeder_stats_feeder_created_at,priority:1"`
	// MessagesTotal is the feeder's cumulative message count at measurement
	// time; the next snapshot's delta is computed against it
	MessagesTotal int64 `gorm:"column:messages_total;not null"`
	// PositionsTotal is the feeder's cumulative position count at measurement
	// time
	PositionsTotal int64 `gorm:"column:positions_total;not null"`
	// MessagesDelta is the message count since the previous snapshot,
	// clamped to be non-negative
	MessagesDelta int64 `gorm:"column:messages_delta;not null"`
	// PositionsDelta is the position count since the previous snapshot,
	// clamped to be non-negative
	PositionsDelta int64 `gorm:"column:positions_delta;not null"`
	// AircraftCount is the distinct-aircraft count at measurement time
	AircraftCount int64 `gorm:"column:aircraft_count;not null"`
	// MessageRate is messages per minute over the snapshot interval
	MessageRate float64 `gorm:"column:message_rate;not null"`
	// PositionRate is positions per minute over the snapshot interval
	PositionRate float64 `gorm:"column:position_rate;not null"`
	// UptimePercent is the trailing-24h uptime percentage (0-100)
	UptimePercent float64 `gorm:"column:uptime_percent;not null"`
	// Score is the composite score computed for this interval
	Score int `gorm:"column:score;not null"`
	// CreatedAt is the measurement timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz;index:idx_feeder_stats_feeder_created_at,priority:2"`
}

// TableName specifies the table name for the FeederStats model
func (FeederStats) TableName() string {
	return "feeder_stats"
}
