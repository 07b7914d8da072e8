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

package models

import "time"

// FiveMinuteAggregate is one 5-minute rollup row. IntervalEnd is the unix
// second the bucket closes on; the bucket labelled 00:00 covers the trailing
// five minutes of the previous day.
type FiveMinuteAggregate struct {
	SystemID    int       `json:"system_id"`
	PointID     int       `json:"point_id"`
	IntervalEnd int64     `json:"interval_end"`
	Avg         *float64  `json:"avg,omitempty"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
	Last        *float64  `json:"last,omitempty"`
	Delta       *float64  `json:"delta,omitempty"`
	SampleCount int       `json:"sample_count"`
	ErrorCount  int       `json:"error_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DailyAggregate is one day-level rollup row. Day is the calendar date in
// the owning system's UTC offset, held at UTC midnight.
type DailyAggregate struct {
	SystemID    int       `json:"system_id"`
	PointID     int       `json:"point_id"`
	Day         time.Time `json:"day"`
	Avg         *float64  `json:"avg,omitempty"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
	Last        *float64  `json:"last,omitempty"`
	Delta       *float64  `json:"delta,omitempty"`
	SampleCount int       `json:"sample_count"`
	ErrorCount  int       `json:"error_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RawField is one named value inside a vendor interval, together with the
// origin identity and classification needed to resolve it to a point.
type RawField struct {
	OriginID    string    `json:"origin_id"`
	OriginSubID string    `json:"origin_sub_id,omitempty"`
	Name        string    `json:"name"`
	MetricType  string    `json:"metric_type"`
	MetricUnit  string    `json:"metric_unit"`
	Transform   Transform `json:"transform,omitempty"`
	Value       float64   `json:"value"`
	Error       bool      `json:"error,omitempty"`
}

// RawInterval is one vendor telemetry interval: an end timestamp plus one or
// more named numeric fields.
type RawInterval struct {
	End    int64      `json:"end"`
	Fields []RawField `json:"fields"`
}
