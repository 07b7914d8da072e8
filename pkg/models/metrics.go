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

// Package models defines the core data structures shared across the
// aggregation, series, and sync packages.
package models

// MetricKind classifies a point's metric type for aggregation purposes.
// Vendor metric-type strings collapse onto three kinds; everything that is
// not energy or state-of-charge aggregates the way power does.
type MetricKind int

const (
	MetricKindPowerLike MetricKind = iota
	MetricKindEnergy
	MetricKindSoc
)

func (k MetricKind) String() string {
	switch k {
	case MetricKindEnergy:
		return "energy"
	case MetricKindSoc:
		return "soc"
	default:
		return "power-like"
	}
}

// KindOfMetricType maps a vendor metric-type string onto its MetricKind.
func KindOfMetricType(metricType string) MetricKind {
	switch metricType {
	case "energy":
		return MetricKindEnergy
	case "soc":
		return MetricKindSoc
	default:
		return MetricKindPowerLike
	}
}

// AggField identifies one statistic computed over an interval.
type AggField string

const (
	AggAvg   AggField = "avg"
	AggMin   AggField = "min"
	AggMax   AggField = "max"
	AggLast  AggField = "last"
	AggDelta AggField = "delta"
)

// Interval is a rollup resolution.
type Interval string

const (
	IntervalFiveMinute Interval = "5m"
	IntervalDaily      Interval = "1d"
)

// ParseInterval validates an interval string from an API caller.
func ParseInterval(s string) (Interval, error) {
	switch Interval(s) {
	case IntervalFiveMinute, IntervalDaily:
		return Interval(s), nil
	default:
		return "", ErrInvalidInterval
	}
}

// Transform is the per-point value transform applied at ingest.
type Transform string

const (
	TransformNone      Transform = ""
	TransformIdentity  Transform = "n"
	TransformNegate    Transform = "i"
	TransformDeltaOnly Transform = "d"
)
