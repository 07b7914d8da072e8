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

import (
	"encoding/json"
	"fmt"
	"time"
)

// VendorTypeComposite marks a virtual system whose points are remapped from
// other systems via metadata mappings.
const VendorTypeComposite = "composite"

// System is one monitored installation (a site with inverter, battery, meter).
type System struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	VendorType    string          `json:"vendor_type"`
	VendorAccount string          `json:"vendor_account,omitempty"`
	// OffsetMinutes is the system's fixed UTC offset in minutes. Calendar
	// days for daily rollups are defined in this offset, not server time.
	OffsetMinutes int             `json:"offset_minutes"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (s *System) IsComposite() bool {
	return s.VendorType == VendorTypeComposite
}

// DayStart returns the unix second at which the given calendar date begins
// in the system's own UTC offset.
func (s *System) DayStart(date time.Time) int64 {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Unix() - int64(s.OffsetMinutes)*60
}

// Today returns the system-local calendar date for the given instant.
func (s *System) Today(now time.Time) time.Time {
	local := now.UTC().Add(time.Duration(s.OffsetMinutes) * time.Minute)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Point is a single monitored signal scoped to one system. Identity is the
// (SystemID, Index) pair; Index values are never reused within a system.
type Point struct {
	ID          int    `json:"id"`
	SystemID    int    `json:"system_id"`
	Index       int    `json:"index"`
	OriginID    string `json:"origin_id"`
	OriginSubID string `json:"origin_sub_id,omitempty"`

	MetricType string    `json:"metric_type"`
	MetricUnit string    `json:"metric_unit"`
	Transform  Transform `json:"transform,omitempty"`

	DefaultName string `json:"default_name"`
	DisplayName string `json:"display_name,omitempty"`

	Type      string `json:"type,omitempty"`
	Subtype   string `json:"subtype,omitempty"`
	Extension string `json:"extension,omitempty"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OriginKey is the ingest-dedup key: originId alone, or originId:subId when a
// sub-id is present. Metric type is deliberately not part of the key.
func (p *Point) OriginKey() string {
	return OriginKey(p.OriginID, p.OriginSubID)
}

// OriginKey builds the origin uniqueness key from its parts.
func OriginKey(originID, originSubID string) string {
	if originSubID == "" {
		return originID
	}

	return originID + ":" + originSubID
}

// Kind returns the point's aggregation classification.
func (p *Point) Kind() MetricKind {
	return KindOfMetricType(p.MetricType)
}

// Identifier returns the hierarchical path built from the type.subtype.extension
// triple, or "" when no type hierarchy is set.
func (p *Point) Identifier() string {
	if p.Type == "" {
		return ""
	}

	id := p.Type
	if p.Subtype != "" {
		id += "." + p.Subtype
	}

	if p.Extension != "" {
		id += "." + p.Extension
	}

	return id
}

// LogicalPath returns the preferred display path for the point. Points with
// no type hierarchy fall back to an index-based path.
func (p *Point) LogicalPath() string {
	if id := p.Identifier(); id != "" {
		return id + "/" + p.MetricType
	}

	return fmt.Sprintf("%d/%s", p.Index, p.MetricType)
}

// SeriesPath returns the queryable path for one aggregation field of this
// point, e.g. "source.solar/power.avg".
func (p *Point) SeriesPath(field AggField) string {
	return p.LogicalPath() + "." + string(field)
}

// Label returns the display name, falling back to the vendor default.
func (p *Point) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}

	return p.DefaultName
}

// PreferredAggregation is the default field to chart for this point:
// energy charts its daily delta, state-of-charge its last reading, and
// everything else its average.
func (p *Point) PreferredAggregation() AggField {
	switch p.Kind() {
	case MetricKindEnergy:
		return AggDelta
	case MetricKindSoc:
		return AggLast
	default:
		return AggAvg
	}
}
