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

// Package series resolves the queryable series of a system: point expansion
// through the aggregation rules, composite remapping, interval filtering,
// and glob filtering, with a TTL-bounded per-system cache.
package series

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gridpulse/gridpulse/pkg/aggregate"
	"github.com/gridpulse/gridpulse/pkg/logger"
	"github.com/gridpulse/gridpulse/pkg/models"
)

// DefaultCacheTTL bounds staleness of every cached entry, mutations seen or
// not.
const DefaultCacheTTL = 60 * time.Second

// SeriesInfo is one queryable series of a system.
type SeriesInfo struct {
	Path       string            `json:"path"`
	Intervals  []models.Interval `json:"intervals"`
	Label      string            `json:"label"`
	MetricUnit string            `json:"metric_unit"`
	SystemID   int               `json:"system_id"`
	PointID    int               `json:"point_id"`
	PointIndex int               `json:"point_index"`
	Field      models.AggField   `json:"aggregation_field"`
	Preferred  bool              `json:"preferred"`
	Typed      bool              `json:"-"`
}

// Query narrows a series listing. The zero value returns every series.
type Query struct {
	// Filter is a comma-separated list of glob patterns matched against
	// the series path. Empty means no filter.
	Filter string
	// Interval keeps only series valid at that resolution when set.
	Interval models.Interval
	// TypedOnly drops points that lack the type hierarchy.
	TypedOnly bool
}

// Manager caches resolved series per system. Reads hit an immutable
// snapshot; mutations just drop the entry and let the next read recompute.
type Manager struct {
	store  PointSource
	clock  Clock
	ttl    time.Duration
	logger logger.Logger

	mu       sync.RWMutex
	cache    map[int][]SeriesInfo
	loadedAt time.Time
}

// NewManager builds a manager. A non-positive ttl falls back to
// DefaultCacheTTL.
func NewManager(store PointSource, clock Clock, ttl time.Duration, log logger.Logger) *Manager {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &Manager{
		store:  store,
		clock:  clock,
		ttl:    ttl,
		logger: log,
		cache:  make(map[int][]SeriesInfo),
	}
}

// GetSeriesForSystem returns the system's series, filtered per the query.
// Filter validation happens before any point lookup; a system with no
// points yields an empty list, never an error.
func (m *Manager) GetSeriesForSystem(ctx context.Context, system *models.System, query Query) ([]SeriesInfo, error) {
	matcher, err := compileFilter(query.Filter)
	if err != nil {
		return nil, err
	}

	all, err := m.seriesSnapshot(ctx, system)
	if err != nil {
		return nil, err
	}

	result := make([]SeriesInfo, 0, len(all))

	for _, info := range all {
		if query.TypedOnly && !info.Typed {
			continue
		}

		if query.Interval != "" && !supportsInterval(info, query.Interval) {
			continue
		}

		if !matcher.Match(info.Path) {
			continue
		}

		result = append(result, info)
	}

	return result, nil
}

// Invalidate drops one system's cache entry. Point mutation paths call this
// after any create or update.
func (m *Manager) Invalidate(systemID int) {
	m.mu.Lock()
	delete(m.cache, systemID)
	m.mu.Unlock()
}

func (m *Manager) seriesSnapshot(ctx context.Context, system *models.System) ([]SeriesInfo, error) {
	now := m.clock.Now()

	m.mu.RLock()
	expired := !m.loadedAt.IsZero() && now.Sub(m.loadedAt) > m.ttl
	cached, ok := m.cache[system.ID]
	m.mu.RUnlock()

	if ok && !expired {
		return cached, nil
	}

	points, err := m.resolvePoints(ctx, system)
	if err != nil {
		return nil, err
	}

	snapshot := expandSeries(points)

	m.mu.Lock()
	if expired {
		// The TTL bounds staleness for every system at once, so expiry
		// wipes the whole cache rather than tracking ages per entry.
		m.cache = make(map[int][]SeriesInfo)
	}

	if m.loadedAt.IsZero() || expired {
		m.loadedAt = now
	}

	m.cache[system.ID] = snapshot
	m.mu.Unlock()

	return snapshot, nil
}

// resolvePoints returns the points backing a system's series. Composite
// systems own no points; their mappings are resolved against the source
// systems' point tables.
func (m *Manager) resolvePoints(ctx context.Context, system *models.System) ([]*models.Point, error) {
	if !system.IsComposite() {
		points, err := m.store.ListActivePoints(ctx, system.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list points for system %d: %w", system.ID, err)
		}

		return points, nil
	}

	return m.resolveComposite(ctx, system)
}

func (m *Manager) resolveComposite(ctx context.Context, system *models.System) ([]*models.Point, error) {
	meta, err := models.ParseCompositeMetadata(system.Metadata)
	if err != nil {
		// A composite with bad metadata degrades to no series.
		m.logger.Warn().Err(err).
			Int("system_id", system.ID).
			Msg("Composite metadata unusable")

		return nil, nil
	}

	// Group point ids per source system so each source costs one query.
	bySource := make(map[int][]int)

	for category, refs := range meta.Mappings {
		for _, ref := range refs {
			parsed, ok := models.ParsePointRef(ref)
			if !ok {
				m.logger.Debug().
					Int("system_id", system.ID).
					Str("category", category).
					Str("ref", ref).
					Msg("Dropping malformed composite reference")

				continue
			}

			bySource[parsed.SystemID] = append(bySource[parsed.SystemID], parsed.PointID)
		}
	}

	var points []*models.Point

	for sourceID, pointIDs := range bySource {
		resolved, err := m.store.GetPointsByIDs(ctx, sourceID, pointIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve composite points from system %d: %w", sourceID, err)
		}

		points = append(points, resolved...)
	}

	return points, nil
}

// expandSeries turns points into one SeriesInfo per valid aggregation field,
// consulting the rules table for field existence and interval support.
func expandSeries(points []*models.Point) []SeriesInfo {
	var series []SeriesInfo

	for _, point := range points {
		kind := point.Kind()
		typed := point.Identifier() != ""
		preferred := point.PreferredAggregation()

		for _, field := range aggregate.Fields(kind) {
			intervals := aggregate.Intervals(kind, field)
			if len(intervals) == 0 {
				continue
			}

			series = append(series, SeriesInfo{
				Path:       point.SeriesPath(field),
				Intervals:  intervals,
				Label:      point.Label(),
				MetricUnit: point.MetricUnit,
				SystemID:   point.SystemID,
				PointID:    point.ID,
				PointIndex: point.Index,
				Field:      field,
				Preferred:  field == preferred,
				Typed:      typed,
			})
		}
	}

	return series
}

func supportsInterval(info SeriesInfo, interval models.Interval) bool {
	for _, candidate := range info.Intervals {
		if candidate == interval {
			return true
		}
	}

	return false
}
