package telemetry_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feederwatch/fw-pipeline/internal/domain"
	"github.com/feederwatch/fw-pipeline/internal/mocks"
	"github.com/feederwatch/fw-pipeline/internal/telemetry"
)

func TestAircraftAltitude(t *testing.T) {
	t.Run("numeric altitude", func(t *testing.T) {
		a := telemetry.Aircraft{AltBaro: []byte("36000")}
		require.NotNil(t, a.Altitude())
		assert.Equal(t, 36000, *a.Altitude())
	})

	t.Run("fractional altitude truncates", func(t *testing.T) {
		a := telemetry.Aircraft{AltBaro: []byte("36000.75")}
		require.NotNil(t, a.Altitude())
		assert.Equal(t, 36000, *a.Altitude())
	})

	t.Run("on-ground sentinel is nil", func(t *testing.T) {
		a := telemetry.Aircraft{AltBaro: []byte(`"ground"`)}
		assert.Nil(t, a.Altitude())
	})

	t.Run("absent field is nil", func(t *testing.T) {
		a := telemetry.Aircraft{}
		assert.Nil(t, a.Altitude())
	})
}

func TestAircraftDocumentDecoding(t *testing.T) {
	payload := `{
		"now": 1757800000.5,
		"messages": 123456,
		"aircraft": [
			{"hex": "7c6b2d", "flight": "QFA794", "lat": -31.95, "lon": 115.86, "alt_baro": 36000, "gs": 450.2, "track": 270.1, "squawk": "3664"},
			{"hex": "7c6b2e", "alt_baro": "ground"},
			{"hex": "7c6b2f"}
		]
	}`

	var report telemetry.AircraftReport
	require.NoError(t, json.Unmarshal([]byte(payload), &report))

	assert.Equal(t, 1757800000.5, report.Now)
	assert.Equal(t, int64(123456), report.Messages)
	require.Len(t, report.Aircraft, 3)

	airborne := report.Aircraft[0]
	assert.True(t, airborne.HasPosition())
	require.NotNil(t, airborne.Altitude())
	assert.Equal(t, 36000, *airborne.Altitude())
	assert.Equal(t, "QFA794", *airborne.Callsign)
	assert.Equal(t, "3664", *airborne.Squawk)

	grounded := report.Aircraft[1]
	assert.False(t, grounded.HasPosition())
	assert.Nil(t, grounded.Altitude())

	bare := report.Aircraft[2]
	assert.False(t, bare.HasPosition())
}

func TestStatsDecoding(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		payload := `{"messages": 1000, "positions": 400, "aircraft_with_pos": 42, "messages_last_minute": 900, "unknown_field": true}`

		var stats telemetry.Stats
		require.NoError(t, json.Unmarshal([]byte(payload), &stats))
		assert.Equal(t, int64(1000), stats.Messages)
		assert.Equal(t, int64(400), stats.Positions)
		assert.Equal(t, int64(42), stats.AircraftTracked)
		assert.Equal(t, int64(900), stats.MessagesLastMinute)
	})

	t.Run("missing fields default to zero", func(t *testing.T) {
		var stats telemetry.Stats
		require.NoError(t, json.Unmarshal([]byte(`{}`), &stats))
		assert.Equal(t, int64(0), stats.Messages)
		assert.Equal(t, int64(0), stats.MessagesLastMinute)
	})
}

func TestClientWrapsUnreachableFeed(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	http := mocks.NewMockHTTPClient(ctrl)
	client := telemetry.NewHTTPClient(http, "http://receiver/aircraft.json", "http://receiver/stats.json")

	http.EXPECT().GetJSON(ctx, "http://receiver/aircraft.json", gomock.Any()).Return(errors.New("connection refused"))
	_, err := client.FetchAircraft(ctx)
	assert.ErrorIs(t, err, domain.ErrFeedUnavailable)

	http.EXPECT().GetJSON(ctx, "http://receiver/stats.json", gomock.Any()).Return(errors.New("connection refused"))
	_, err = client.FetchStats(ctx)
	assert.ErrorIs(t, err, domain.ErrFeedUnavailable)
}

func TestClientDecodesThroughTransport(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	http := mocks.NewMockHTTPClient(ctrl)
	client := telemetry.NewHTTPClient(http, "http://receiver/aircraft.json", "http://receiver/stats.json")

	http.EXPECT().GetJSON(ctx, "http://receiver/stats.json", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, result interface{}) error {
			return json.Unmarshal([]byte(`{"messages": 7, "messages_last_minute": 3}`), result)
		})

	stats, err := client.FetchStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.Messages)
	assert.Equal(t, int64(3), stats.MessagesLastMinute)
}
