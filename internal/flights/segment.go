// Package flights implements the flight segmentation engine: it partitions
// each aircraft's recent position history into discrete flight segments,
// computes per-flight statistics, downsamples the track and persists new
// flight records while skipping ones already recorded.
package flights

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/datatypes"

	"github.com/feederwatch/fw-pipeline/internal/domain"
	"github.com/feederwatch/fw-pipeline/internal/geo"
	"github.com/feederwatch/fw-pipeline/internal/store/schema"
)

// SplitSegments walks positions ordered ascending by capture time and starts
// a new segment whenever the time delta to the previous position exceeds
// gapThreshold. Input order is a correctness precondition; unordered input
// silently corrupts gap detection.
func SplitSegments(positions []schema.Position, gapThreshold time.Duration) [][]schema.Position {
	if len(positions) == 0 {
		return nil
	}

	var segments [][]schema.Position
	current := []schema.Position{positions[0]}

	for i := 1; i < len(positions); i++ {
		if positions[i].CapturedAt.Sub(positions[i-1].CapturedAt) > gapThreshold {
			segments = append(segments, current)
			current = nil
		}
		current = append(current, positions[i])
	}

	return append(segments, current)
}

// Downsample reduces a segment's points while preserving trajectory shape.
// The first and last points are always kept; an interior point is kept when
// at least minInterval has elapsed since the last kept point, or its altitude
// differs from the last kept altitude by more than altThreshold feet. The
// altitude criterion preserves steep climbs and descents; the interval bound
// caps storage for level cruise.
func Downsample(segment []schema.Position, minInterval time.Duration, altThreshold int) []domain.TrackPoint {
	if len(segment) == 0 {
		return nil
	}

	points := make([]domain.TrackPoint, 0, len(segment))
	points = append(points, toTrackPoint(&segment[0]))
	lastKept := &segment[0]

	for i := 1; i < len(segment)-1; i++ {
		p := &segment[i]
		if p.CapturedAt.Sub(lastKept.CapturedAt) >= minInterval || altitudeChanged(lastKept.Altitude, p.Altitude, altThreshold) {
			points = append(points, toTrackPoint(p))
			lastKept = p
		}
	}

	if len(segment) > 1 {
		points = append(points, toTrackPoint(&segment[len(segment)-1]))
	}

	return points
}

// altitudeChanged reports whether two altitude samples differ by more than
// threshold feet. Nil samples never trigger the altitude criterion.
func altitudeChanged(a, b *int, threshold int) bool {
	if a == nil || b == nil {
		return false
	}

	delta := *a - *b
	if delta < 0 {
		delta = -delta
	}

	return delta > threshold
}

func toTrackPoint(p *schema.Position) domain.TrackPoint {
	return domain.TrackPoint{
		Lat:       p.Lat,
		Lon:       p.Lon,
		Altitude:  p.Altitude,
		Timestamp: p.CapturedAt,
	}
}

// BuildFlight derives a flight record from a segment of at least two
// positions ordered ascending by capture time.
func BuildFlight(segment []schema.Position, minInterval time.Duration, altThreshold int) (*schema.Flight, error) {
	if len(segment) < 2 {
		return nil, fmt.Errorf("segment requires at least 2 positions, got %d", len(segment))
	}

	first := &segment[0]
	last := &segment[len(segment)-1]

	var maxAltitude *int
	var callsign *string
	var distance float64

	for i := range segment {
		p := &segment[i]
		if p.Altitude != nil && (maxAltitude == nil || *p.Altitude > *maxAltitude) {
			maxAltitude = p.Altitude
		}
		// Most recent non-null callsign wins, not most frequent
		if p.Callsign != nil {
			callsign = p.Callsign
		}
		if i > 0 {
			prev := &segment[i-1]
			distance += geo.HaversineNM(prev.Lat, prev.Lon, p.Lat, p.Lon)
		}
	}

	track, err := json.Marshal(Downsample(segment, minInterval, altThreshold))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal track: %w", err)
	}

	return &schema.Flight{
		ID:              ulid.MustNewDefault(first.CapturedAt).String(),
		Hex:             first.Hex,
		Callsign:        callsign,
		StartedAt:       first.CapturedAt,
		EndedAt:         last.CapturedAt,
		DurationSeconds: int64(last.CapturedAt.Sub(first.CapturedAt).Seconds()),
		MaxAltitude:     maxAltitude,
		DistanceNM:      math.Round(distance*10) / 10,
		PositionCount:   len(segment),
		StartLat:        first.Lat,
		StartLon:        first.Lon,
		EndLat:          last.Lat,
		EndLon:          last.Lon,
		Track:           datatypes.JSON(track),
	}, nil
}
