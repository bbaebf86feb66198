package domain

import (
	"regexp"
	"strings"
	"time"
)

// Hex represents a 6-hex-digit ICAO aircraft identifier (e.g., "7c6b2d")
type Hex string

var hexPattern = regexp.MustCompile(`^[0-9a-f]{6}$`)

// NormalizeHex lowercases and trims an ICAO identifier
func NormalizeHex(s string) Hex {
	return Hex(strings.ToLower(strings.TrimSpace(s)))
}

// IsValidHex checks if a hex is a well-formed 6-hex-digit ICAO identifier
func IsValidHex(h Hex) bool {
	return hexPattern.MatchString(string(h))
}

// TrackPoint is one downsampled position in a flight's persisted track.
// The sequence is stored ordered by timestamp ascending inside the flight row.
type TrackPoint struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Altitude  *int      `json:"altitude,omitempty"` // feet, nil when the sample had no altitude
	Timestamp time.Time `json:"timestamp"`
}

// UserTier represents a user's subscription tier.
// Tier is derived state: it is recomputed every aggregator cycle from the
// user's online feeder count, not driven by events.
type UserTier string

const (
	// UserTierFree is the default tier for users without a live feeder
	UserTierFree UserTier = "free"
	// UserTierFeeder is granted while a user has at least one online feeder
	UserTierFeeder UserTier = "feeder"
)
