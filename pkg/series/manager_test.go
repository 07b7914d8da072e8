package series

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridpulse/gridpulse/pkg/logger"
	"github.com/gridpulse/gridpulse/pkg/models"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

// fakeSource is an in-memory PointSource that counts lookups.
type fakeSource struct {
	points map[int][]*models.Point
	calls  int
}

func (f *fakeSource) ListActivePoints(_ context.Context, systemID int) ([]*models.Point, error) {
	f.calls++
	return f.points[systemID], nil
}

func (f *fakeSource) GetPointsByIDs(_ context.Context, systemID int, pointIDs []int) ([]*models.Point, error) {
	f.calls++

	want := make(map[int]struct{}, len(pointIDs))
	for _, id := range pointIDs {
		want[id] = struct{}{}
	}

	var result []*models.Point

	for _, point := range f.points[systemID] {
		if _, ok := want[point.ID]; ok {
			result = append(result, point)
		}
	}

	return result, nil
}

func solarSystemFixture() (*fakeSource, *models.System) {
	system := &models.System{ID: 12, Name: "Home", VendorType: "select"}

	source := &fakeSource{points: map[int][]*models.Point{
		12: {
			{ID: 3, SystemID: 12, Index: 1, MetricType: "power", MetricUnit: "W",
				DefaultName: "pv_w", DisplayName: "Solar Power", Type: "source", Subtype: "solar", Active: true},
			{ID: 4, SystemID: 12, Index: 2, MetricType: "energy", MetricUnit: "Wh",
				DefaultName: "pv_wh", Type: "source", Subtype: "solar", Active: true},
			{ID: 5, SystemID: 12, Index: 3, MetricType: "soc", MetricUnit: "%",
				DefaultName: "batt_soc", Type: "battery", Active: true},
			{ID: 6, SystemID: 12, Index: 4, MetricType: "power", MetricUnit: "W",
				DefaultName: "aux_w", Active: true}, // no type hierarchy
		},
	}}

	return source, system
}

func newTestManager(source PointSource, clock Clock) *Manager {
	return NewManager(source, clock, time.Minute, logger.NewTestLogger())
}

func TestGetSeriesExpandsFieldsPerKind(t *testing.T) {
	source, system := solarSystemFixture()
	manager := newTestManager(source, &fakeClock{now: time.Now()})

	series, err := manager.GetSeriesForSystem(context.Background(), system, Query{})
	require.NoError(t, err)

	paths := make(map[string]SeriesInfo, len(series))
	for _, info := range series {
		paths[info.Path] = info
	}

	// Power point: avg, min, max, last. Energy point: delta only. Soc: four.
	// Untyped power point: four. 4 + 1 + 4 + 4 = 13.
	assert.Len(t, series, 13)

	power, ok := paths["source.solar/power.avg"]
	require.True(t, ok)
	assert.True(t, power.Preferred)
	assert.Equal(t, "Solar Power", power.Label)
	assert.Equal(t, "W", power.MetricUnit)
	assert.Equal(t, 12, power.SystemID)
	assert.Equal(t, 1, power.PointIndex)
	assert.Equal(t, models.AggAvg, power.Field)

	energy, ok := paths["source.solar/energy.delta"]
	require.True(t, ok)
	assert.Equal(t, []models.Interval{models.IntervalFiveMinute, models.IntervalDaily}, energy.Intervals)

	_, hasEnergyAvg := paths["source.solar/energy.avg"]
	assert.False(t, hasEnergyAvg, "energy exposes delta only")

	untyped, ok := paths["4/power.avg"]
	require.True(t, ok)
	assert.False(t, untyped.Typed)
}

func TestGetSeriesIntervalFilter(t *testing.T) {
	source, system := solarSystemFixture()
	manager := newTestManager(source, &fakeClock{now: time.Now()})

	series, err := manager.GetSeriesForSystem(context.Background(), system, Query{
		Filter:   "*/soc.*",
		Interval: models.IntervalFiveMinute,
	})
	require.NoError(t, err)

	// Only soc.last survives at 5m; it still reports both intervals.
	require.Len(t, series, 1)
	assert.Equal(t, "battery/soc.last", series[0].Path)
	assert.Equal(t, []models.Interval{models.IntervalFiveMinute, models.IntervalDaily}, series[0].Intervals)
}

func TestGetSeriesDailyIntervalKeepsMinMax(t *testing.T) {
	source, system := solarSystemFixture()
	manager := newTestManager(source, &fakeClock{now: time.Now()})

	series, err := manager.GetSeriesForSystem(context.Background(), system, Query{
		Filter:   "source.solar/power.*",
		Interval: models.IntervalDaily,
	})
	require.NoError(t, err)
	assert.Len(t, series, 4)
}

func TestGetSeriesTypedOnly(t *testing.T) {
	source, system := solarSystemFixture()
	manager := newTestManager(source, &fakeClock{now: time.Now()})

	series, err := manager.GetSeriesForSystem(context.Background(), system, Query{TypedOnly: true})
	require.NoError(t, err)

	for _, info := range series {
		assert.True(t, info.Typed)
		assert.NotContains(t, info.Path, "4/", "fallback-path points are excluded")
	}
}

func TestGetSeriesInvalidFilterRejectedBeforeLookup(t *testing.T) {
	source, system := solarSystemFixture()
	manager := newTestManager(source, &fakeClock{now: time.Now()})

	_, err := manager.GetSeriesForSystem(context.Background(), system, Query{Filter: "invalid$pattern"})
	assert.ErrorIs(t, err, ErrFilterCharacter)
	assert.Zero(t, source.calls, "validation must precede I/O")
}

func TestGetSeriesNoPointsIsEmptyNotError(t *testing.T) {
	source := &fakeSource{points: map[int][]*models.Point{}}
	manager := newTestManager(source, &fakeClock{now: time.Now()})

	series, err := manager.GetSeriesForSystem(context.Background(), &models.System{ID: 99}, Query{})
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestGetSeriesCachesUntilInvalidated(t *testing.T) {
	source, system := solarSystemFixture()
	clock := &fakeClock{now: time.Now()}
	manager := newTestManager(source, clock)

	_, err := manager.GetSeriesForSystem(context.Background(), system, Query{})
	require.NoError(t, err)
	_, err = manager.GetSeriesForSystem(context.Background(), system, Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls, "second read must hit the cache")

	manager.Invalidate(system.ID)

	_, err = manager.GetSeriesForSystem(context.Background(), system, Query{})
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls, "invalidation forces a reload")
}

func TestGetSeriesTTLExpiryWipesCache(t *testing.T) {
	source, system := solarSystemFixture()
	clock := &fakeClock{now: time.Now()}
	manager := newTestManager(source, clock)

	_, err := manager.GetSeriesForSystem(context.Background(), system, Query{})
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)

	_, err = manager.GetSeriesForSystem(context.Background(), system, Query{})
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls, "TTL expiry must force a reload")
}

func TestCompositeResolution(t *testing.T) {
	source, _ := solarSystemFixture()

	metadata, err := json.Marshal(map[string]any{
		"version": 1,
		"mappings": map[string][]string{
			"solar":   {"12.3"},
			"battery": {"12.5"},
			"broken":  {"not-a-ref", "99.1"},
		},
	})
	require.NoError(t, err)

	composite := &models.System{
		ID:         40,
		Name:       "Fleet",
		VendorType: models.VendorTypeComposite,
		Metadata:   metadata,
	}

	manager := newTestManager(source, &fakeClock{now: time.Now()})

	series, err := manager.GetSeriesForSystem(context.Background(), composite, Query{})
	require.NoError(t, err)

	// Point 3 (power, 4 fields) and point 5 (soc, 4 fields) resolve; the
	// malformed ref and the ref into a nonexistent system drop silently.
	assert.Len(t, series, 8)

	for _, info := range series {
		assert.Equal(t, 12, info.SystemID, "series are attributed to the resolved source points")
	}
}

func TestCompositeUnknownVersionDegradesToEmpty(t *testing.T) {
	source, _ := solarSystemFixture()

	composite := &models.System{
		ID:         41,
		VendorType: models.VendorTypeComposite,
		Metadata:   json.RawMessage(`{"version":9,"mappings":{}}`),
	}

	manager := newTestManager(source, &fakeClock{now: time.Now()})

	series, err := manager.GetSeriesForSystem(context.Background(), composite, Query{})
	require.NoError(t, err)
	assert.Empty(t, series)
}
