// Package messaging defines the pipeline's outbound event surface. Events
// are best-effort notifications for the dashboard side of the platform;
// publish failures are logged by callers and never fail a batch.
package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feederwatch/fw-pipeline/internal/domain"
)

// EventType identifies a pipeline event
type EventType string

const (
	// EventTypeFlightCreated is emitted when the segmentation engine persists
	// a new flight
	EventTypeFlightCreated EventType = "flight_created"
	// EventTypeFeederOnline is emitted when a feeder transitions to online
	EventTypeFeederOnline EventType = "feeder_online"
	// EventTypeFeederOffline is emitted when a feeder transitions to offline
	EventTypeFeederOffline EventType = "feeder_offline"
)

// FlightCreatedEvent describes a newly derived flight
type FlightCreatedEvent struct {
	FlightID   string     `json:"flight_id"`
	Hex        domain.Hex `json:"hex"`
	Callsign   *string    `json:"callsign,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    time.Time  `json:"ended_at"`
	DistanceNM float64    `json:"distance_nm"`
}

// FeederStatusEvent describes a feeder online/offline transition
type FeederStatusEvent struct {
	FeederID uuid.UUID `json:"feeder_id"`
	Online   bool      `json:"online"`
	At       time.Time `json:"at"`
}

// Publisher publishes pipeline events
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishFlightCreated publishes a flight-created event
	PublishFlightCreated(ctx context.Context, event *FlightCreatedEvent) error
	// PublishFeederStatus publishes a feeder online/offline transition
	PublishFeederStatus(ctx context.Context, event *FeederStatusEvent) error
	// Close releases the underlying connection
	Close()
}

// noopPublisher discards all events; used when no broker is configured
type noopPublisher struct{}

// NewNoopPublisher creates a publisher that discards all events
func NewNoopPublisher() Publisher {
	return &noopPublisher{}
}

func (noopPublisher) PublishFlightCreated(ctx context.Context, event *FlightCreatedEvent) error {
	return nil
}

func (noopPublisher) PublishFeederStatus(ctx context.Context, event *FeederStatusEvent) error {
	return nil
}

func (noopPublisher) Close() {}
