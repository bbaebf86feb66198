package flights

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feederwatch/fw-pipeline/internal/domain"
	"github.com/feederwatch/fw-pipeline/internal/store/schema"
)

var testBase = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func makePosition(hex string, offset time.Duration, lat, lon float64, alt *int) schema.Position {
	return schema.Position{
		Hex:        domain.Hex(hex),
		Lat:        lat,
		Lon:        lon,
		Altitude:   alt,
		CapturedAt: testBase.Add(offset),
	}
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func TestSplitSegments(t *testing.T) {
	gap := 15 * time.Minute

	t.Run("empty input yields no segments", func(t *testing.T) {
		assert.Nil(t, SplitSegments(nil, gap))
	})

	t.Run("single position yields one segment", func(t *testing.T) {
		positions := []schema.Position{makePosition("abc123", 0, 10, 20, nil)}
		segments := SplitSegments(positions, gap)
		require.Len(t, segments, 1)
		assert.Len(t, segments[0], 1)
	})

	t.Run("gap over threshold starts a new segment", func(t *testing.T) {
		positions := []schema.Position{
			makePosition("abc123", 0, 10, 20, nil),
			makePosition("abc123", 10*time.Minute, 10.5, 20.5, nil),
			makePosition("abc123", 20*time.Minute, 11, 21, nil),
			// 20 minute silence, over the 15 minute threshold
			makePosition("abc123", 40*time.Minute, 30, 40, nil),
		}

		segments := SplitSegments(positions, gap)
		require.Len(t, segments, 2)
		assert.Len(t, segments[0], 3)
		assert.Len(t, segments[1], 1)
		assert.Equal(t, testBase, segments[0][0].CapturedAt)
		assert.Equal(t, testBase.Add(20*time.Minute), segments[0][2].CapturedAt)
	})

	t.Run("delta exactly at threshold stays in the same segment", func(t *testing.T) {
		positions := []schema.Position{
			makePosition("abc123", 0, 10, 20, nil),
			makePosition("abc123", gap, 10.5, 20.5, nil),
		}

		segments := SplitSegments(positions, gap)
		require.Len(t, segments, 1)
		assert.Len(t, segments[0], 2)
	})
}

func TestDownsample(t *testing.T) {
	minInterval := 30 * time.Second
	altThreshold := 500

	t.Run("first and last always kept", func(t *testing.T) {
		segment := []schema.Position{
			makePosition("abc123", 0, 10, 20, intPtr(30000)),
			makePosition("abc123", 5*time.Second, 10.1, 20.1, intPtr(30000)),
			makePosition("abc123", 10*time.Second, 10.2, 20.2, intPtr(30000)),
		}

		points := Downsample(segment, minInterval, altThreshold)
		require.Len(t, points, 2)
		assert.Equal(t, segment[0].CapturedAt, points[0].Timestamp)
		assert.Equal(t, segment[2].CapturedAt, points[1].Timestamp)
	})

	t.Run("interior kept on interval", func(t *testing.T) {
		segment := []schema.Position{
			makePosition("abc123", 0, 10, 20, intPtr(30000)),
			makePosition("abc123", 10*time.Second, 10.1, 20.1, intPtr(30000)),
			makePosition("abc123", 35*time.Second, 10.2, 20.2, intPtr(30000)),
			makePosition("abc123", 50*time.Second, 10.3, 20.3, intPtr(30000)),
		}

		points := Downsample(segment, minInterval, altThreshold)
		require.Len(t, points, 3)
		assert.Equal(t, segment[2].CapturedAt, points[1].Timestamp)
	})

	t.Run("interior kept on altitude change despite short interval", func(t *testing.T) {
		segment := []schema.Position{
			makePosition("abc123", 0, 10, 20, intPtr(30000)),
			makePosition("abc123", 5*time.Second, 10.1, 20.1, intPtr(30600)),
			makePosition("abc123", 10*time.Second, 10.2, 20.2, intPtr(30700)),
		}

		points := Downsample(segment, minInterval, altThreshold)
		require.Len(t, points, 3)
		assert.Equal(t, intPtr(30600), points[1].Altitude)
	})

	t.Run("nil altitudes never trigger the altitude criterion", func(t *testing.T) {
		segment := []schema.Position{
			makePosition("abc123", 0, 10, 20, nil),
			makePosition("abc123", 5*time.Second, 10.1, 20.1, intPtr(30600)),
			makePosition("abc123", 10*time.Second, 10.2, 20.2, nil),
		}

		points := Downsample(segment, minInterval, altThreshold)
		assert.Len(t, points, 2)
	})

	t.Run("single position segment keeps one point", func(t *testing.T) {
		segment := []schema.Position{makePosition("abc123", 0, 10, 20, nil)}
		assert.Len(t, Downsample(segment, minInterval, altThreshold), 1)
	})
}

func TestBuildFlight(t *testing.T) {
	minInterval := 30 * time.Second
	altThreshold := 500

	t.Run("rejects segments under two positions", func(t *testing.T) {
		_, err := BuildFlight([]schema.Position{makePosition("abc123", 0, 10, 20, nil)}, minInterval, altThreshold)
		assert.Error(t, err)
	})

	t.Run("derives stats from the segment", func(t *testing.T) {
		p1 := makePosition("abc123", 0, 0, 0, intPtr(10000))
		p1.Callsign = strPtr("QFA1")
		p2 := makePosition("abc123", 10*time.Minute, 0, 1, intPtr(35000))
		p3 := makePosition("abc123", 20*time.Minute, 0, 2, intPtr(20000))
		p3.Callsign = strPtr("QFA2")

		flight, err := BuildFlight([]schema.Position{p1, p2, p3}, minInterval, altThreshold)
		require.NoError(t, err)

		assert.Equal(t, domain.Hex("abc123"), flight.Hex)
		assert.Equal(t, testBase, flight.StartedAt)
		assert.Equal(t, testBase.Add(20*time.Minute), flight.EndedAt)
		assert.Equal(t, int64(1200), flight.DurationSeconds)
		assert.Equal(t, intPtr(35000), flight.MaxAltitude)
		// Most recent non-null callsign wins
		assert.Equal(t, strPtr("QFA2"), flight.Callsign)
		assert.Equal(t, 3, flight.PositionCount)
		// Two one-degree hops along the equator, rounded to one decimal
		assert.InDelta(t, 120.1, flight.DistanceNM, 0.2)
		assert.Equal(t, 0.0, flight.StartLat)
		assert.Equal(t, 2.0, flight.EndLon)
		assert.NotEmpty(t, flight.ID)
	})

	t.Run("distance rounds to one decimal", func(t *testing.T) {
		p1 := makePosition("abc123", 0, 0, 0, nil)
		p2 := makePosition("abc123", time.Minute, 0, 1, nil)

		flight, err := BuildFlight([]schema.Position{p1, p2}, minInterval, altThreshold)
		require.NoError(t, err)
		assert.Equal(t, flight.DistanceNM, float64(int(flight.DistanceNM*10))/10)
	})

	t.Run("max altitude ignores nil samples", func(t *testing.T) {
		p1 := makePosition("abc123", 0, 0, 0, nil)
		p2 := makePosition("abc123", time.Minute, 0, 0.1, intPtr(12000))
		p3 := makePosition("abc123", 2*time.Minute, 0, 0.2, nil)

		flight, err := BuildFlight([]schema.Position{p1, p2, p3}, minInterval, altThreshold)
		require.NoError(t, err)
		assert.Equal(t, intPtr(12000), flight.MaxAltitude)
	})

	t.Run("all nil altitudes leave max altitude nil", func(t *testing.T) {
		p1 := makePosition("abc123", 0, 0, 0, nil)
		p2 := makePosition("abc123", time.Minute, 0, 0.1, nil)

		flight, err := BuildFlight([]schema.Position{p1, p2}, minInterval, altThreshold)
		require.NoError(t, err)
		assert.Nil(t, flight.MaxAltitude)
		assert.Nil(t, flight.Callsign)
	})

	t.Run("track embeds downsampled points", func(t *testing.T) {
		p1 := makePosition("abc123", 0, 0, 0, intPtr(10000))
		p2 := makePosition("abc123", 5*time.Second, 0, 0.1, intPtr(10000))
		p3 := makePosition("abc123", time.Minute, 0, 0.2, intPtr(10000))

		flight, err := BuildFlight([]schema.Position{p1, p2, p3}, minInterval, altThreshold)
		require.NoError(t, err)

		var track []domain.TrackPoint
		require.NoError(t, json.Unmarshal(flight.Track, &track))
		require.Len(t, track, 2)
		assert.Equal(t, p1.CapturedAt, track[0].Timestamp)
		assert.Equal(t, p3.CapturedAt, track[1].Timestamp)
	})
}
