package schema

import (
	"time"

	"github.com/google/uuid"
)

// Feeder represents the feeders table - a registered physical receiver.
//
// Field ownership is split between two jobs: the liveness aggregator mutates
// totals, LastSeen and IsOnline; the scoring engine mutates CurrentScore and
// the rank fields. No other component writes here.
type Feeder struct {
	// ID is the feeder identity
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// UserID references the owning user
	UserID uuid.UUID `gorm:"column:user_id;not null;type:uuid;index"`
	// Name is the user-chosen display name
	Name string `gorm:"column:name;not null;type:text"`
	// MessagesTotal is the lifetime valid message count, set from the feed's
	// cumulative counters
	MessagesTotal int64 `gorm:"column:messages_total;not null;default:0"`
	// PositionsTotal is the lifetime position count
	PositionsTotal int64 `gorm:"column:positions_total;not null;default:0"`
	// AircraftSeen is the distinct-aircraft-seen high-water mark
	AircraftSeen int64 `gorm:"column:aircraft_seen;not null;default:0"`
	// LastSeen is the time of the last fresh heartbeat (nil before first one)
	LastSeen *time.Time `gorm:"column:last_seen;type:timestamptz"`
	// IsOnline is derived state recomputed every aggregator cycle from
	// now - LastSeen, not authoritative
	IsOnline bool `gorm:"column:is_online;not null;default:false"`
	// CurrentScore is the latest composite score (0-100)
	CurrentScore int `gorm:"column:current_score;not null;default:0"`
	// CurrentRank is the 1-indexed network-wide rank (0 = never ranked)
	CurrentRank int `gorm:"column:current_rank;not null;default:0"`
	// PreviousRank is the rank from the prior ranking pass, kept for
	// rank-delta display
	PreviousRank int `gorm:"column:previous_rank;not null;default:0"`
	// CreatedAt is the registration timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last mutation
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Feeder model
func (Feeder) TableName() string {
	return "feeders"
}

// RankDelta returns the rank change since the previous ranking pass
// (positive = improved).
func (f *Feeder) RankDelta() int {
	if f.PreviousRank == 0 || f.CurrentRank == 0 {
		return 0
	}
	return f.PreviousRank - f.CurrentRank
}
