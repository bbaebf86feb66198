package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feederwatch/fw-pipeline/internal/logger"
	"github.com/feederwatch/fw-pipeline/internal/messaging"
	"github.com/feederwatch/fw-pipeline/internal/mocks"
	"github.com/feederwatch/fw-pipeline/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func newTestPublisher(t *testing.T) (messaging.Publisher, *mocks.MockNatsConn, *mocks.MockJetStream) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	natsJS := mocks.NewMockNatsJetStream(ctrl)
	jsonAdapter := mocks.NewMockJSON(ctrl)
	jsonAdapter.EXPECT().Marshal(gomock.Any()).DoAndReturn(json.Marshal).AnyTimes()

	natsJS.EXPECT().Connect("nats://localhost:4222", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nc, js, nil)

	pub, err := jetstream.NewPublisher(jetstream.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "FEEDER_EVENTS",
		MaxReconnects:  3,
		ReconnectWait:  time.Second,
		ConnectionName: "test",
	}, natsJS, jsonAdapter)
	require.NoError(t, err)

	return pub, nc, js
}

func TestPublishFlightCreated(t *testing.T) {
	ctx := context.Background()
	pub, _, js := newTestPublisher(t)

	callsign := "QFA794"
	event := &messaging.FlightCreatedEvent{
		FlightID:   "01JF00000000000000000000",
		Hex:        "7c6b2d",
		Callsign:   &callsign,
		StartedAt:  time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		EndedAt:    time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC),
		DistanceNM: 150.5,
	}

	js.EXPECT().Publish(ctx, "flights.created", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, data []byte, _ ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			var decoded messaging.FlightCreatedEvent
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, event.FlightID, decoded.FlightID)
			assert.Equal(t, event.Hex, decoded.Hex)
			return &natsjs.PubAck{}, nil
		})

	require.NoError(t, pub.PublishFlightCreated(ctx, event))
}

func TestPublishFeederStatusSubjects(t *testing.T) {
	ctx := context.Background()
	pub, _, js := newTestPublisher(t)

	feederID := uuid.New()
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	js.EXPECT().Publish(ctx, "feeders.online", gomock.Any()).Return(&natsjs.PubAck{}, nil)
	require.NoError(t, pub.PublishFeederStatus(ctx, &messaging.FeederStatusEvent{
		FeederID: feederID,
		Online:   true,
		At:       at,
	}))

	js.EXPECT().Publish(ctx, "feeders.offline", gomock.Any()).Return(&natsjs.PubAck{}, nil)
	require.NoError(t, pub.PublishFeederStatus(ctx, &messaging.FeederStatusEvent{
		FeederID: feederID,
		Online:   false,
		At:       at,
	}))
}

func TestPublishErrorSurfaces(t *testing.T) {
	ctx := context.Background()
	pub, _, js := newTestPublisher(t)

	js.EXPECT().Publish(ctx, "flights.created", gomock.Any()).Return(nil, errors.New("stream unavailable"))

	err := pub.PublishFlightCreated(ctx, &messaging.FlightCreatedEvent{FlightID: "01JF"})
	assert.Error(t, err)
}

func TestCloseClosesConnection(t *testing.T) {
	pub, nc, _ := newTestPublisher(t)

	nc.EXPECT().Close()
	pub.Close()
}
