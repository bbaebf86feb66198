// Package telemetry models the external receiver process that exposes
// point-in-time JSON documents: an aircraft snapshot used by the position
// recorder and a counters document used as the liveness heartbeat signal.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/feederwatch/fw-pipeline/internal/adapter"
	"github.com/feederwatch/fw-pipeline/internal/domain"
)

// Aircraft is one aircraft entry in the receiver's aircraft document.
// Optional fields are pointers; absent fields stay nil.
type Aircraft struct {
	Hex         string   `json:"hex"`
	Squawk      *string  `json:"squawk,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
	Callsign    *string  `json:"flight,omitempty"`
	GroundSpeed *float64 `json:"gs,omitempty"`
	Track       *float64 `json:"track,omitempty"`

	// AltBaro may be a number or the string "ground"
	AltBaro json.RawMessage `json:"alt_baro,omitempty"`
}

// Altitude returns the barometric altitude in feet, or nil when the sample
// had none or the aircraft reported "ground".
func (a *Aircraft) Altitude() *int {
	raw := bytes.TrimSpace(a.AltBaro)
	if len(raw) == 0 || raw[0] == '"' {
		return nil
	}

	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return nil
	}

	alt := int(f)
	return &alt
}

// HasPosition reports whether the entry carries usable coordinates and a
// well-formed hex
func (a *Aircraft) HasPosition() bool {
	return a.Lat != nil && a.Lon != nil && domain.IsValidHex(domain.NormalizeHex(a.Hex))
}

// AircraftReport is the receiver's point-in-time aircraft document
type AircraftReport struct {
	// Now is the document timestamp as a Unix epoch with fractional seconds
	Now      float64    `json:"now"`
	Messages int64      `json:"messages"`
	Aircraft []Aircraft `json:"aircraft"`
}

// Stats is the receiver's cumulative counters document. Missing numeric
// fields default to zero; unknown fields are ignored.
type Stats struct {
	// Messages is the total valid message count since receiver start
	Messages int64 `json:"messages"`
	// Positions is the total position count since receiver start
	Positions int64 `json:"positions"`
	// AircraftTracked is the distinct-aircraft-tracked count
	AircraftTracked int64 `json:"aircraft_with_pos"`
	// MessagesLastMinute is the message count in the last sampling minute,
	// used as the liveness heartbeat signal
	MessagesLastMinute int64 `json:"messages_last_minute"`
}

// Client fetches telemetry documents from the receiver process.
// Unreachability is reported immediately and never retried within a cycle;
// the caller treats it as "no live data".
//
//go:generate mockgen -source=client.go -destination=../mocks/telemetry.go -package=mocks -mock_names=Client=MockTelemetryClient
type Client interface {
	FetchAircraft(ctx context.Context) (*AircraftReport, error)
	FetchStats(ctx context.Context) (*Stats, error)
}

type httpClient struct {
	http        adapter.HTTPClient
	aircraftURL string
	statsURL    string
}

// NewHTTPClient creates a telemetry client reading the receiver's aircraft
// and stats documents over HTTP
func NewHTTPClient(http adapter.HTTPClient, aircraftURL, statsURL string) Client {
	return &httpClient{
		http:        http,
		aircraftURL: aircraftURL,
		statsURL:    statsURL,
	}
}

// FetchAircraft retrieves the point-in-time aircraft document
func (c *httpClient) FetchAircraft(ctx context.Context) (*AircraftReport, error) {
	var report AircraftReport
	if err := c.http.GetJSON(ctx, c.aircraftURL, &report); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}

	return &report, nil
}

// FetchStats retrieves the cumulative counters document
func (c *httpClient) FetchStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.http.GetJSON(ctx, c.statsURL, &stats); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}

	return &stats, nil
}
