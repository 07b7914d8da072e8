package rollup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gridpulse/gridpulse/pkg/logger"
	"github.com/gridpulse/gridpulse/pkg/models"
)

type fakeClock struct {
	now time.Time
}

func (f fakeClock) Now() time.Time { return f.now }

func newTestEngine(t *testing.T, store Store, now time.Time) *Engine {
	t.Helper()

	engine, err := NewEngine(store, fakeClock{now: now}, "2015-01-01", logger.NewTestLogger())
	require.NoError(t, err)

	return engine
}

func TestNewEngineRejectsBadFloorDate(t *testing.T) {
	_, err := NewEngine(nil, fakeClock{}, "01/01/2015", logger.NewTestLogger())
	assert.ErrorIs(t, err, ErrFloorDateInvalid)
}

func TestAggregateDayWritesComputedRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockStore(ctrl)
	now := time.Date(2025, time.June, 2, 0, 10, 0, 0, time.UTC)
	engine := newTestEngine(t, store, now)

	system := &models.System{ID: 3, OffsetMinutes: 600}
	day := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	dayStart := system.DayStart(day)

	buckets := []*models.FiveMinuteAggregate{
		{SystemID: 3, PointID: 1, IntervalEnd: dayStart + bucketSeconds, Avg: fptr(100), SampleCount: 5},
		{SystemID: 3, PointID: 1, IntervalEnd: dayStart + daySeconds, Avg: fptr(100), Last: fptr(101), SampleCount: 5},
	}

	store.EXPECT().
		FiveMinuteRange(gomock.Any(), 3, dayStart+bucketSeconds, dayStart+daySeconds).
		Return(buckets, nil)
	store.EXPECT().
		ListActivePoints(gomock.Any(), 3).
		Return([]*models.Point{{ID: 1, SystemID: 3, MetricType: "power", Active: true}}, nil)
	store.EXPECT().
		UpsertDaily(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rows []*models.DailyAggregate) error {
			require.Len(t, rows, 1)
			assert.Equal(t, day, rows[0].Day)
			assert.Equal(t, now, rows[0].UpdatedAt)
			return nil
		})

	rows, err := engine.AggregateDay(context.Background(), system, day)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestAggregateDayNoDataIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockStore(ctrl)
	engine := newTestEngine(t, store, time.Now())

	system := &models.System{ID: 3}
	day := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	store.EXPECT().
		FiveMinuteRange(gomock.Any(), 3, gomock.Any(), gomock.Any()).
		Return(nil, nil)

	rows, err := engine.AggregateDay(context.Background(), system, day)
	require.NoError(t, err)
	assert.Nil(t, rows, "empty day must not write zeroed rows")
}

func TestAggregateYesterdayAllUsesSystemOffset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockStore(ctrl)

	// 15:00 UTC on June 1: a +600 system is already in its June 2 local day,
	// so its yesterday is June 1.
	now := time.Date(2025, time.June, 1, 15, 0, 0, 0, time.UTC)
	engine := newTestEngine(t, store, now)

	east := &models.System{ID: 1, OffsetMinutes: 600}
	composite := &models.System{ID: 2, VendorType: models.VendorTypeComposite}

	store.EXPECT().ListSystems(gomock.Any()).Return([]*models.System{east, composite}, nil)

	expectedDay := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	dayStart := east.DayStart(expectedDay)

	store.EXPECT().
		FiveMinuteRange(gomock.Any(), 1, dayStart+bucketSeconds, dayStart+daySeconds).
		Return(nil, nil)

	require.NoError(t, engine.AggregateYesterdayAll(context.Background()))
}

func TestAggregateRangeValidation(t *testing.T) {
	engine := newTestEngine(t, nil, time.Now())

	june1 := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	june5 := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)
	ancient := time.Date(2012, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.ErrorIs(t, engine.ValidateRange(time.Time{}, june5), ErrRangeIncomplete)
	assert.ErrorIs(t, engine.ValidateRange(june1, time.Time{}), ErrRangeIncomplete)
	assert.ErrorIs(t, engine.ValidateRange(june5, june1), ErrRangeOrder)
	assert.ErrorIs(t, engine.ValidateRange(ancient, june5), ErrDateBeforeFloor)
	assert.NoError(t, engine.ValidateRange(june1, june5))
	assert.NoError(t, engine.ValidateRange(june1, june1))
}

func TestDeleteRangeFloorGuard(t *testing.T) {
	engine := newTestEngine(t, nil, time.Now())

	ancient := time.Date(2012, time.January, 1, 0, 0, 0, 0, time.UTC)
	june1 := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	_, err := engine.DeleteRange(context.Background(), ancient, june1)
	assert.ErrorIs(t, err, ErrDateBeforeFloor, "delete must fail fast, not clamp")
}

func TestDeleteRangeDeletesBothResolutions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockStore(ctrl)
	engine := newTestEngine(t, store, time.Now())

	system := &models.System{ID: 3, OffsetMinutes: 600}
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	store.EXPECT().ListSystems(gomock.Any()).Return([]*models.System{system}, nil)
	store.EXPECT().DeleteDailyRange(gomock.Any(), 3, start, end).Return(int64(4), nil)
	store.EXPECT().
		DeleteFiveMinuteRange(gomock.Any(), 3, system.DayStart(start)+bucketSeconds, system.DayStart(end)+daySeconds).
		Return(int64(576), nil)

	deleted, err := engine.DeleteRange(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(580), deleted)
}

func TestAggregateAllMissingSkipsExistingDays(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockStore(ctrl)
	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)
	engine := newTestEngine(t, store, now)

	system := &models.System{ID: 3}

	store.EXPECT().ListSystems(gomock.Any()).Return([]*models.System{system}, nil)

	june1 := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	june2 := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	june3 := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)

	// Earliest bucket lands on June 1; daily rows already exist for June 1
	// and June 3, leaving June 2 to rebuild.
	store.EXPECT().
		EarliestFiveMinuteEnd(gomock.Any(), 3).
		Return(system.DayStart(june1)+bucketSeconds, true, nil)
	store.EXPECT().
		DailyDays(gomock.Any(), 3, june1, june3).
		Return([]time.Time{june1, june3}, nil)
	store.EXPECT().
		FiveMinuteRange(gomock.Any(), 3, system.DayStart(june2)+bucketSeconds, system.DayStart(june2)+daySeconds).
		Return(nil, nil)

	require.NoError(t, engine.AggregateAllMissing(context.Background()))
}

func TestAggregateAllMissingNoData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockStore(ctrl)
	engine := newTestEngine(t, store, time.Now())

	store.EXPECT().ListSystems(gomock.Any()).Return([]*models.System{{ID: 3}}, nil)
	store.EXPECT().EarliestFiveMinuteEnd(gomock.Any(), 3).Return(int64(0), false, nil)

	require.NoError(t, engine.AggregateAllMissing(context.Background()))
}

func TestAggregateDayStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockStore(ctrl)
	engine := newTestEngine(t, store, time.Now())

	boom := errors.New("connection refused")
	store.EXPECT().
		FiveMinuteRange(gomock.Any(), 3, gomock.Any(), gomock.Any()).
		Return(nil, boom)

	_, err := engine.AggregateDay(context.Background(), &models.System{ID: 3}, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, boom)
}
