package liveness

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feederwatch/fw-pipeline/internal/domain"
	"github.com/feederwatch/fw-pipeline/internal/mocks"
	"github.com/feederwatch/fw-pipeline/internal/store"
	"github.com/feederwatch/fw-pipeline/internal/store/schema"
	"github.com/feederwatch/fw-pipeline/internal/telemetry"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type fixture struct {
	ctrl  *gomock.Controller
	store *mocks.MockStore
	feed  *mocks.MockTelemetryClient
	pub   *mocks.MockPublisher
	clock *mocks.MockClock
	agg   *Aggregator
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		ctrl:  ctrl,
		store: mocks.NewMockStore(ctrl),
		feed:  mocks.NewMockTelemetryClient(ctrl),
		pub:   mocks.NewMockPublisher(ctrl),
		clock: mocks.NewMockClock(ctrl),
	}
	f.agg = New(&Config{
		Interval:         time.Minute,
		OfflineThreshold: 5 * time.Minute,
	}, f.store, f.feed, f.pub, f.clock)

	return f
}

func onlineFeeder(lastSeen time.Time) schema.Feeder {
	seen := lastSeen
	return schema.Feeder{
		ID:       uuid.New(),
		IsOnline: true,
		LastSeen: &seen,
	}
}

func TestUnreachableFeedMarksAllOffline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f1 := onlineFeeder(testNow.Add(-time.Minute))
	f2 := onlineFeeder(testNow.Add(-2 * time.Minute))

	f.feed.EXPECT().FetchStats(ctx).Return(nil, domain.ErrFeedUnavailable)
	f.store.EXPECT().GetOnlineFeeders(ctx).Return([]schema.Feeder{f1, f2}, nil)
	f.clock.EXPECT().Now().Return(testNow)
	f.store.EXPECT().SetFeedersOnline(ctx, []uuid.UUID{f1.ID, f2.ID}, false).Return(nil)
	f.pub.EXPECT().PublishFeederStatus(ctx, gomock.Any()).Return(nil).Times(2)

	require.NoError(t, f.agg.runCycle(ctx))
}

func TestUnreachableFeedWithNoOnlineFeedersIsNoOp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.feed.EXPECT().FetchStats(ctx).Return(nil, errors.New("connection refused"))
	f.store.EXPECT().GetOnlineFeeders(ctx).Return(nil, nil)

	require.NoError(t, f.agg.runCycle(ctx))
}

func TestActiveFeedUpdatesTotals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	feeder := schema.Feeder{
		ID:           uuid.New(),
		IsOnline:     false,
		AircraftSeen: 80,
	}
	stats := &telemetry.Stats{
		Messages:           120000,
		Positions:          45000,
		AircraftTracked:    42,
		MessagesLastMinute: 900,
	}

	f.feed.EXPECT().FetchStats(ctx).Return(stats, nil)
	f.store.EXPECT().GetFeeders(ctx).Return([]schema.Feeder{feeder}, nil)
	f.clock.EXPECT().Now().Return(testNow)
	f.store.EXPECT().UpdateFeederTotals(ctx, feeder.ID, store.UpdateFeederTotalsInput{
		MessagesTotal:  120000,
		PositionsTotal: 45000,
		AircraftSeen:   80, // high-water mark, not the lower live count
		LastSeen:       testNow,
		IsOnline:       true,
	}).Return(nil)
	// Feeder was offline, so the transition publishes
	f.pub.EXPECT().PublishFeederStatus(ctx, gomock.Any()).Return(nil)
	expectTierRecompute(ctx, f, nil, nil)

	require.NoError(t, f.agg.runCycle(ctx))
}

func TestAircraftSeenAdvancesWithLiveCount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	feeder := schema.Feeder{
		ID:           uuid.New(),
		IsOnline:     true,
		AircraftSeen: 30,
	}
	stats := &telemetry.Stats{
		Messages:           1000,
		Positions:          400,
		AircraftTracked:    55,
		MessagesLastMinute: 10,
	}

	f.feed.EXPECT().FetchStats(ctx).Return(stats, nil)
	f.store.EXPECT().GetFeeders(ctx).Return([]schema.Feeder{feeder}, nil)
	f.clock.EXPECT().Now().Return(testNow)
	f.store.EXPECT().UpdateFeederTotals(ctx, feeder.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uuid.UUID, input store.UpdateFeederTotalsInput) error {
			assert.Equal(t, int64(55), input.AircraftSeen)
			return nil
		})
	expectTierRecompute(ctx, f, nil, nil)

	require.NoError(t, f.agg.runCycle(ctx))
}

func TestQuietFeedSkipsTotalsAndSweepsStale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	fresh := onlineFeeder(testNow.Add(-time.Minute))
	stale := onlineFeeder(testNow.Add(-6 * time.Minute))
	stats := &telemetry.Stats{MessagesLastMinute: 0}

	f.feed.EXPECT().FetchStats(ctx).Return(stats, nil)
	f.store.EXPECT().GetFeeders(ctx).Return([]schema.Feeder{fresh, stale}, nil)
	f.clock.EXPECT().Now().Return(testNow)
	// No UpdateFeederTotals call: a quiet feed contributes nothing
	f.store.EXPECT().SetFeedersOnline(ctx, []uuid.UUID{stale.ID}, false).Return(nil)
	f.pub.EXPECT().PublishFeederStatus(ctx, gomock.Any()).Return(nil)
	expectTierRecompute(ctx, f, nil, nil)

	require.NoError(t, f.agg.runCycle(ctx))
}

func TestFeederStaysOnlineThroughShortQuietSpell(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Four minutes of quiet cycles, still under the five minute threshold
	feeder := onlineFeeder(testNow.Add(-4 * time.Minute))
	stats := &telemetry.Stats{MessagesLastMinute: 0}

	f.feed.EXPECT().FetchStats(ctx).Return(stats, nil)
	f.store.EXPECT().GetFeeders(ctx).Return([]schema.Feeder{feeder}, nil)
	f.clock.EXPECT().Now().Return(testNow)
	expectTierRecompute(ctx, f, nil, nil)

	require.NoError(t, f.agg.runCycle(ctx))
}

func TestNeverSeenFeederIsSweptOffline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	feeder := schema.Feeder{ID: uuid.New(), IsOnline: false, LastSeen: nil}
	stats := &telemetry.Stats{MessagesLastMinute: 0}

	f.feed.EXPECT().FetchStats(ctx).Return(stats, nil)
	f.store.EXPECT().GetFeeders(ctx).Return([]schema.Feeder{feeder}, nil)
	f.clock.EXPECT().Now().Return(testNow)
	// Already offline so no transition event, but the flag is re-asserted
	f.store.EXPECT().SetFeedersOnline(ctx, []uuid.UUID{feeder.ID}, false).Return(nil)
	expectTierRecompute(ctx, f, nil, nil)

	require.NoError(t, f.agg.runCycle(ctx))
}

func TestTierPromotionAndDemotion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	promoted := uuid.New()
	demoted := uuid.New()
	steady := uuid.New()

	f.feed.EXPECT().FetchStats(ctx).Return(&telemetry.Stats{MessagesLastMinute: 0}, nil)
	f.store.EXPECT().GetFeeders(ctx).Return(nil, nil)
	f.clock.EXPECT().Now().Return(testNow)
	f.store.EXPECT().GetUserIDsWithOnlineFeeders(ctx).Return([]uuid.UUID{promoted, steady}, nil)
	f.store.EXPECT().GetUserIDsByTier(ctx, domain.UserTierFeeder).Return([]uuid.UUID{demoted, steady}, nil)
	f.store.EXPECT().UpdateUserTier(ctx, promoted, domain.UserTierFeeder).Return(nil)
	f.store.EXPECT().UpdateUserTier(ctx, demoted, domain.UserTierFree).Return(nil)

	require.NoError(t, f.agg.runCycle(ctx))
}

func TestTierUpdateFailureDoesNotAbortCycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u1 := uuid.New()
	u2 := uuid.New()

	f.feed.EXPECT().FetchStats(ctx).Return(&telemetry.Stats{MessagesLastMinute: 0}, nil)
	f.store.EXPECT().GetFeeders(ctx).Return(nil, nil)
	f.clock.EXPECT().Now().Return(testNow)
	f.store.EXPECT().GetUserIDsWithOnlineFeeders(ctx).Return([]uuid.UUID{u1, u2}, nil)
	f.store.EXPECT().GetUserIDsByTier(ctx, domain.UserTierFeeder).Return(nil, nil)
	f.store.EXPECT().UpdateUserTier(ctx, u1, domain.UserTierFeeder).Return(errors.New("update failed"))
	f.store.EXPECT().UpdateUserTier(ctx, u2, domain.UserTierFeeder).Return(nil)

	require.NoError(t, f.agg.runCycle(ctx))
}

func TestTotalsFailureForOneFeederDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	broken := onlineFeeder(testNow.Add(-time.Minute))
	healthy := onlineFeeder(testNow.Add(-time.Minute))
	stats := &telemetry.Stats{Messages: 10, MessagesLastMinute: 5}

	f.feed.EXPECT().FetchStats(ctx).Return(stats, nil)
	f.store.EXPECT().GetFeeders(ctx).Return([]schema.Feeder{broken, healthy}, nil)
	f.clock.EXPECT().Now().Return(testNow)
	f.store.EXPECT().UpdateFeederTotals(ctx, broken.ID, gomock.Any()).Return(errors.New("write failed"))
	f.store.EXPECT().UpdateFeederTotals(ctx, healthy.ID, gomock.Any()).Return(nil)
	// The broken feeder was not refreshed but its heartbeat is still fresh,
	// so the sweep leaves it alone
	expectTierRecompute(ctx, f, nil, nil)

	require.NoError(t, f.agg.runCycle(ctx))
}

func expectTierRecompute(ctx context.Context, f *fixture, withOnline, feederTier []uuid.UUID) {
	f.store.EXPECT().GetUserIDsWithOnlineFeeders(ctx).Return(withOnline, nil)
	f.store.EXPECT().GetUserIDsByTier(ctx, domain.UserTierFeeder).Return(feederTier, nil)
}
