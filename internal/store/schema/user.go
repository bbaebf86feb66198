package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/feederwatch/fw-pipeline/internal/domain"
)

// User represents the users table. Only the tier field matters to the
// pipeline: the liveness aggregator promotes users with an online feeder to
// the feeder tier and demotes them when none remain online.
type User struct {
	// ID is the user identity
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// Email is the account email
	Email string `gorm:"column:email;not null;type:text;uniqueIndex"`
	// Tier is the subscription tier, recomputed every aggregator cycle
	Tier domain.UserTier `gorm:"column:tier;not null;type:text;default:'free'"`
	// CreatedAt is the registration timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last mutation
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
