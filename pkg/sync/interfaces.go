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

//go:generate mockgen -destination=mock_sync.go -package=sync github.com/gridpulse/gridpulse/pkg/sync VendorClient,Store,Aggregator

package sync

import (
	"context"
	"time"

	"github.com/gridpulse/gridpulse/pkg/models"
)

// VendorClient fetches raw telemetry intervals from a vendor backend.
// Implementations must honor context cancellation on every call.
type VendorClient interface {
	// FetchIntervals returns the raw intervals whose end timestamps fall in
	// (startUnix, endUnix]. Zero start and end request today's partial data.
	FetchIntervals(ctx context.Context, system *models.System, action Action, startUnix, endUnix int64) ([]*models.RawInterval, error)
}

// Store is the persistence surface the engine writes through.
type Store interface {
	EnsurePoint(ctx context.Context, point *models.Point) (*models.Point, error)
	FiveMinuteRange(ctx context.Context, systemID int, startEnd, stopEnd int64) ([]*models.FiveMinuteAggregate, error)
	UpsertFiveMinute(ctx context.Context, rows []*models.FiveMinuteAggregate) error
	CreateSession(ctx context.Context, session *models.SyncSession) error
	FinalizeSession(ctx context.Context, session *models.SyncSession) error
}

// Aggregator rebuilds the daily rollup for days a sync has touched.
type Aggregator interface {
	AggregateDay(ctx context.Context, system *models.System, date time.Time) ([]*models.DailyAggregate, error)
}

// Invalidator drops cached series for a system after point mutations. The
// series manager satisfies it.
type Invalidator interface {
	Invalidate(systemID int)
}

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
