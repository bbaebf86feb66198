package recorder

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feederwatch/fw-pipeline/internal/domain"
	"github.com/feederwatch/fw-pipeline/internal/mocks"
	"github.com/feederwatch/fw-pipeline/internal/store/schema"
	"github.com/feederwatch/fw-pipeline/internal/telemetry"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func floatPtr(v float64) *float64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func TestSample(t *testing.T) {
	t.Run("keeps entries with coordinates and valid hex", func(t *testing.T) {
		report := &telemetry.AircraftReport{
			Aircraft: []telemetry.Aircraft{
				{
					Hex:      "7C6B2D",
					Lat:      floatPtr(-31.95),
					Lon:      floatPtr(115.86),
					Callsign: strPtr("QFA794"),
					AltBaro:  []byte("36000"),
				},
			},
		}

		positions := Sample(report, testNow)
		require.Len(t, positions, 1)
		assert.Equal(t, domain.Hex("7c6b2d"), positions[0].Hex)
		assert.Equal(t, -31.95, positions[0].Lat)
		assert.Equal(t, 115.86, positions[0].Lon)
		require.NotNil(t, positions[0].Altitude)
		assert.Equal(t, 36000, *positions[0].Altitude)
		assert.Equal(t, strPtr("QFA794"), positions[0].Callsign)
		assert.Equal(t, testNow, positions[0].CapturedAt)
	})

	t.Run("drops entries without coordinates", func(t *testing.T) {
		report := &telemetry.AircraftReport{
			Aircraft: []telemetry.Aircraft{
				{Hex: "7c6b2d"},
				{Hex: "7c6b2e", Lat: floatPtr(10)},
				{Hex: "7c6b2f", Lon: floatPtr(20)},
			},
		}

		assert.Empty(t, Sample(report, testNow))
	})

	t.Run("drops entries with malformed hexes", func(t *testing.T) {
		report := &telemetry.AircraftReport{
			Aircraft: []telemetry.Aircraft{
				{Hex: "~7c6b2", Lat: floatPtr(10), Lon: floatPtr(20)},
				{Hex: "", Lat: floatPtr(10), Lon: floatPtr(20)},
				{Hex: "7c6b2d99", Lat: floatPtr(10), Lon: floatPtr(20)},
			},
		}

		assert.Empty(t, Sample(report, testNow))
	})

	t.Run("aircraft on ground keeps position with nil altitude", func(t *testing.T) {
		report := &telemetry.AircraftReport{
			Aircraft: []telemetry.Aircraft{
				{Hex: "7c6b2d", Lat: floatPtr(10), Lon: floatPtr(20), AltBaro: []byte(`"ground"`)},
			},
		}

		positions := Sample(report, testNow)
		require.Len(t, positions, 1)
		assert.Nil(t, positions[0].Altitude)
	})
}

func TestRunCycle(t *testing.T) {
	ctx := context.Background()

	t.Run("appends sampled positions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		st := mocks.NewMockStore(ctrl)
		feed := mocks.NewMockTelemetryClient(ctrl)
		clock := mocks.NewMockClock(ctrl)

		report := &telemetry.AircraftReport{
			Aircraft: []telemetry.Aircraft{
				{Hex: "7c6b2d", Lat: floatPtr(10), Lon: floatPtr(20)},
			},
		}

		feed.EXPECT().FetchAircraft(ctx).Return(report, nil)
		clock.EXPECT().Now().Return(testNow)
		st.EXPECT().CreatePositions(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, positions []schema.Position) error {
			require.Len(t, positions, 1)
			assert.Equal(t, domain.Hex("7c6b2d"), positions[0].Hex)
			return nil
		})

		r := New(&Config{PollInterval: 30 * time.Second}, st, feed, clock)
		require.NoError(t, r.runCycle(ctx))
	})

	t.Run("unreachable feed fails the cycle without writing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		st := mocks.NewMockStore(ctrl)
		feed := mocks.NewMockTelemetryClient(ctrl)
		clock := mocks.NewMockClock(ctrl)

		feed.EXPECT().FetchAircraft(ctx).Return(nil, domain.ErrFeedUnavailable)

		r := New(&Config{PollInterval: 30 * time.Second}, st, feed, clock)
		assert.Error(t, r.runCycle(ctx))
	})

	t.Run("empty report skips the write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		st := mocks.NewMockStore(ctrl)
		feed := mocks.NewMockTelemetryClient(ctrl)
		clock := mocks.NewMockClock(ctrl)

		feed.EXPECT().FetchAircraft(ctx).Return(&telemetry.AircraftReport{}, nil)
		clock.EXPECT().Now().Return(testNow)

		r := New(&Config{PollInterval: 30 * time.Second}, st, feed, clock)
		require.NoError(t, r.runCycle(ctx))
	})
}
