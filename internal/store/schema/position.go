package schema

import (
	"time"

	"github.com/feederwatch/fw-pipeline/internal/domain"
)

// Position represents the positions table - one observed telemetry sample.
// Rows are append-only and immutable once written; the table holds only a
// bounded recent window (older rows are pruned externally).
type Position struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Hex is the 6-hex-digit ICAO aircraft identifier
	Hex domain.Hex `gorm:"column:hex;not null;type:text;index:idx_positions_hex_captured_at,priority:1"`
	// Lat is the observed latitude in decimal degrees
	Lat float64 `gorm:"column:lat;not null"`
	// Lon is the observed longitude in decimal degrees
	Lon float64 `gorm:"column:lon;not null"`
	// Altitude is the barometric altitude in feet (nil when the sample had none,
	// including aircraft reporting "ground")
	Altitude *int `gorm:"column:altitude"`
	// Heading is the true track in degrees
	Heading *float64 `gorm:"column:heading"`
	// GroundSpeed is the ground speed in knots
	GroundSpeed *float64 `gorm:"column:ground_speed"`
	// Squawk is the transponder code
	Squawk *string `gorm:"column:squawk;type:text"`
	// Callsign is the flight identifier broadcast by the aircraft
	Callsign *string `gorm:"column:callsign;type:text"`
	// CapturedAt is the timestamp the sample was taken
	CapturedAt time.Time `gorm:"column:captured_at;not null;type:timestamptz;index:idx_positions_hex_captured_at,priority:2"`
}

// TableName specifies the table name for the Position model
func (Position) TableName() string {
	return "positions"
}
