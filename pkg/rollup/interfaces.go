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

//go:generate mockgen -destination=mock_rollup.go -package=rollup github.com/gridpulse/gridpulse/pkg/rollup Store

package rollup

import (
	"context"
	"time"

	"github.com/gridpulse/gridpulse/pkg/models"
)

// Store is the persistence surface the rollup engine consumes.
type Store interface {
	ListSystems(ctx context.Context) ([]*models.System, error)
	ListActivePoints(ctx context.Context, systemID int) ([]*models.Point, error)
	FiveMinuteRange(ctx context.Context, systemID int, startEnd, stopEnd int64) ([]*models.FiveMinuteAggregate, error)
	UpsertDaily(ctx context.Context, rows []*models.DailyAggregate) error
	DailyDays(ctx context.Context, systemID int, from, to time.Time) ([]time.Time, error)
	EarliestFiveMinuteEnd(ctx context.Context, systemID int) (int64, bool, error)
	DeleteFiveMinuteRange(ctx context.Context, systemID int, startEnd, stopEnd int64) (int64, error)
	DeleteDailyRange(ctx context.Context, systemID int, from, to time.Time) (int64, error)
}

// Clock abstracts the time source so "yesterday" is testable.
type Clock interface {
	Now() time.Time
}
