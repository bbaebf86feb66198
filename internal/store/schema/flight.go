package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feederwatch/fw-pipeline/internal/domain"
)

// Flight represents the flights table - one continuous observation of a
// single aircraft, derived from its position history. Created exactly once
// per physical flight and never updated afterwards.
//
// Invariant: for any hex, no two rows may have start times within 60 seconds
// of each other. The segmentation engine upholds this across repeated runs
// over overlapping lookback windows.
type Flight struct {
	// ID is a ULID minted from the flight start timestamp (time-sortable)
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Hex is the 6-hex-digit ICAO aircraft identifier
	Hex domain.Hex `gorm:"column:hex;not null;type:text;index:idx_flights_hex_started_at,priority:1"`
	// Callsign is the last non-null callsign observed in the segment
	Callsign *string `gorm:"column:callsign;type:text"`
	// StartedAt is the timestamp of the first position in the segment
	StartedAt time.Time `gorm:"column:started_at;not null;type:timestamptz;index:idx_flights_hex_started_at,priority:2"`
	// EndedAt is the timestamp of the last position in the segment
	EndedAt time.Time `gorm:"column:ended_at;not null;type:timestamptz"`
	// DurationSeconds is EndedAt minus StartedAt in seconds
	DurationSeconds int64 `gorm:"column:duration_seconds;not null"`
	// MaxAltitude is the highest altitude seen, ignoring null samples
	MaxAltitude *int `gorm:"column:max_altitude"`
	// DistanceNM is the cumulative great-circle distance flown in nautical
	// miles, rounded to 1 decimal place
	DistanceNM float64 `gorm:"column:distance_nm;not null"`
	// PositionCount is the number of original (pre-downsample) positions
	PositionCount int `gorm:"column:position_count;not null"`
	// StartLat is the latitude of the first position
	StartLat float64 `gorm:"column:start_lat;not null"`
	// StartLon is the longitude of the first position
	StartLon float64 `gorm:"column:start_lon;not null"`
	// EndLat is the latitude of the last position
	EndLat float64 `gorm:"column:end_lat;not null"`
	// EndLon is the longitude of the last position
	EndLon float64 `gorm:"column:end_lon;not null"`
	// Track is the ordered downsampled point sequence ([]domain.TrackPoint)
	Track datatypes.JSON `gorm:"column:track;type:jsonb"`
	// CreatedAt is the timestamp when this record was derived
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Flight model
func (Flight) TableName() string {
	return "flights"
}
