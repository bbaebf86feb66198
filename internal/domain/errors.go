package domain

import "errors"

var (
	// ErrFeedUnavailable is returned when the telemetry feed cannot be reached.
	// This is a normal, expected condition handled by the fail-safe offline
	// transition, not a fatal error.
	ErrFeedUnavailable = errors.New("telemetry feed unavailable")

	// ErrFeederNotFound is returned when a feeder is not found
	ErrFeederNotFound = errors.New("feeder not found")
)
