package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridpulse/gridpulse/pkg/models"
)

func TestFields(t *testing.T) {
	tests := []struct {
		name string
		kind models.MetricKind
		want []models.AggField
	}{
		{
			name: "energy has delta only",
			kind: models.MetricKindEnergy,
			want: []models.AggField{models.AggDelta},
		},
		{
			name: "soc has last avg min max",
			kind: models.MetricKindSoc,
			want: []models.AggField{models.AggAvg, models.AggMin, models.AggMax, models.AggLast},
		},
		{
			name: "power-like has avg min max last",
			kind: models.MetricKindPowerLike,
			want: []models.AggField{models.AggAvg, models.AggMin, models.AggMax, models.AggLast},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, Fields(tt.kind))
		})
	}
}

func TestFieldsStableOrder(t *testing.T) {
	first := Fields(models.MetricKindPowerLike)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Fields(models.MetricKindPowerLike))
	}
}

func TestSupports(t *testing.T) {
	tests := []struct {
		name     string
		kind     models.MetricKind
		field    models.AggField
		interval models.Interval
		want     bool
	}{
		{"energy delta 5m", models.MetricKindEnergy, models.AggDelta, models.IntervalFiveMinute, true},
		{"energy delta 1d", models.MetricKindEnergy, models.AggDelta, models.IntervalDaily, true},
		{"energy avg never", models.MetricKindEnergy, models.AggAvg, models.IntervalDaily, false},
		{"soc last 5m", models.MetricKindSoc, models.AggLast, models.IntervalFiveMinute, true},
		{"soc last 1d", models.MetricKindSoc, models.AggLast, models.IntervalDaily, true},
		{"soc avg 5m excluded", models.MetricKindSoc, models.AggAvg, models.IntervalFiveMinute, false},
		{"soc min 1d", models.MetricKindSoc, models.AggMin, models.IntervalDaily, true},
		{"power avg 5m", models.MetricKindPowerLike, models.AggAvg, models.IntervalFiveMinute, true},
		{"power last 5m", models.MetricKindPowerLike, models.AggLast, models.IntervalFiveMinute, true},
		{"power min 5m excluded", models.MetricKindPowerLike, models.AggMin, models.IntervalFiveMinute, false},
		{"power max 1d", models.MetricKindPowerLike, models.AggMax, models.IntervalDaily, true},
		{"power delta never", models.MetricKindPowerLike, models.AggDelta, models.IntervalDaily, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Supports(tt.kind, tt.field, tt.interval))
		})
	}
}

func TestIntervals(t *testing.T) {
	assert.Equal(t,
		[]models.Interval{models.IntervalFiveMinute, models.IntervalDaily},
		Intervals(models.MetricKindEnergy, models.AggDelta))

	assert.Equal(t,
		[]models.Interval{models.IntervalDaily},
		Intervals(models.MetricKindSoc, models.AggMax))

	assert.Nil(t, Intervals(models.MetricKindEnergy, models.AggAvg))
}
