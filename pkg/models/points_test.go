package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOriginKey(t *testing.T) {
	tests := []struct {
		name  string
		point Point
		want  string
	}{
		{"origin only", Point{OriginID: "E1"}, "E1"},
		{"origin with sub id", Point{OriginID: "E1", OriginSubID: "x"}, "E1:x"},
		{"sub id presence must not collide with plain origin", Point{OriginID: "E1:x"}, "E1:x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.point.OriginKey())
		})
	}
}

func TestPointIdentifier(t *testing.T) {
	full := Point{Type: "source", Subtype: "solar", Extension: "east"}
	assert.Equal(t, "source.solar.east", full.Identifier())

	partial := Point{Type: "source", Subtype: "solar"}
	assert.Equal(t, "source.solar", partial.Identifier())

	typeOnly := Point{Type: "load"}
	assert.Equal(t, "load", typeOnly.Identifier())

	untyped := Point{Subtype: "solar"}
	assert.Empty(t, untyped.Identifier(), "subtype without type is ignored")
}

func TestPointLogicalPath(t *testing.T) {
	typed := Point{Index: 2, MetricType: "power", Type: "source", Subtype: "solar"}
	assert.Equal(t, "source.solar/power", typed.LogicalPath())

	untyped := Point{Index: 3, MetricType: "power"}
	assert.Equal(t, "3/power", untyped.LogicalPath())
}

func TestPointSeriesPath(t *testing.T) {
	point := Point{Index: 2, MetricType: "power", Type: "source", Subtype: "solar"}
	assert.Equal(t, "source.solar/power.avg", point.SeriesPath(AggAvg))
}

func TestPointPreferredAggregation(t *testing.T) {
	assert.Equal(t, AggDelta, (&Point{MetricType: "energy"}).PreferredAggregation())
	assert.Equal(t, AggLast, (&Point{MetricType: "soc"}).PreferredAggregation())
	assert.Equal(t, AggAvg, (&Point{MetricType: "power"}).PreferredAggregation())
	assert.Equal(t, AggAvg, (&Point{MetricType: "temperature"}).PreferredAggregation())
}

func TestPointLabel(t *testing.T) {
	assert.Equal(t, "Solar Power", (&Point{DefaultName: "pv_w", DisplayName: "Solar Power"}).Label())
	assert.Equal(t, "pv_w", (&Point{DefaultName: "pv_w"}).Label())
}

func TestSystemDayStart(t *testing.T) {
	// +600 minutes east of UTC: local midnight is 10 hours before UTC midnight.
	system := &System{OffsetMinutes: 600}
	date := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	want := time.Date(2025, time.May, 31, 14, 0, 0, 0, time.UTC).Unix()
	assert.Equal(t, want, system.DayStart(date))

	utcSystem := &System{}
	assert.Equal(t, date.Unix(), utcSystem.DayStart(date))
}

func TestSystemToday(t *testing.T) {
	system := &System{OffsetMinutes: 600}

	// 15:00 UTC is already past local midnight of the next day.
	now := time.Date(2025, time.June, 1, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), system.Today(now))

	earlier := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), system.Today(earlier))
}

func TestParseInterval(t *testing.T) {
	got, err := ParseInterval("5m")
	assert.NoError(t, err)
	assert.Equal(t, IntervalFiveMinute, got)

	got, err = ParseInterval("1d")
	assert.NoError(t, err)
	assert.Equal(t, IntervalDaily, got)

	_, err = ParseInterval("1h")
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
