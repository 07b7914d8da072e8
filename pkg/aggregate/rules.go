/*
 * Copyright 2025 GridPulse Contributors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package aggregate holds the per-metric-kind table of valid statistical
// fields and the intervals each field supports. The rollup engine and the
// series manager both consult this table; there is no second copy of these
// rules anywhere.
package aggregate

import "github.com/gridpulse/gridpulse/pkg/models"

// rule is the interval support for one (kind, field) pair.
type rule struct {
	fiveMinute bool
	daily      bool
}

var (
	bothIntervals = rule{fiveMinute: true, daily: true}
	dailyOnly     = rule{daily: true}
)

// rules maps metric kind to its valid fields. A field absent from a kind's
// map does not exist for that kind at any interval.
//
// Power-like min/max are daily-only: a 5-minute bucket has no finer
// sub-aggregate to min/max over.
var rules = map[models.MetricKind]map[models.AggField]rule{
	models.MetricKindEnergy: {
		models.AggDelta: bothIntervals,
	},
	models.MetricKindSoc: {
		models.AggLast: bothIntervals,
		models.AggAvg:  dailyOnly,
		models.AggMin:  dailyOnly,
		models.AggMax:  dailyOnly,
	},
	models.MetricKindPowerLike: {
		models.AggAvg:  bothIntervals,
		models.AggLast: bothIntervals,
		models.AggMin:  dailyOnly,
		models.AggMax:  dailyOnly,
	},
}

// fieldOrder fixes the order fields are reported in, so series listings are
// stable across calls.
var fieldOrder = []models.AggField{
	models.AggAvg,
	models.AggMin,
	models.AggMax,
	models.AggLast,
	models.AggDelta,
}

// Fields returns the aggregation fields that exist for a metric kind, in
// stable order.
func Fields(kind models.MetricKind) []models.AggField {
	kindRules := rules[kind]

	fields := make([]models.AggField, 0, len(kindRules))

	for _, field := range fieldOrder {
		if _, ok := kindRules[field]; ok {
			fields = append(fields, field)
		}
	}

	return fields
}

// Supports reports whether a (kind, field) pair is valid at the given
// interval.
func Supports(kind models.MetricKind, field models.AggField, interval models.Interval) bool {
	r, ok := rules[kind][field]
	if !ok {
		return false
	}

	switch interval {
	case models.IntervalFiveMinute:
		return r.fiveMinute
	case models.IntervalDaily:
		return r.daily
	default:
		return false
	}
}

// Intervals returns every interval a (kind, field) pair is valid at, or nil
// when the pair does not exist.
func Intervals(kind models.MetricKind, field models.AggField) []models.Interval {
	r, ok := rules[kind][field]
	if !ok {
		return nil
	}

	var intervals []models.Interval

	if r.fiveMinute {
		intervals = append(intervals, models.IntervalFiveMinute)
	}

	if r.daily {
		intervals = append(intervals, models.IntervalDaily)
	}

	return intervals
}
