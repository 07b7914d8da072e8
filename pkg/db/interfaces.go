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

//go:generate mockgen -destination=mock_db.go -package=db github.com/gridpulse/gridpulse/pkg/db Service

package db

import (
	"context"
	"time"

	"github.com/gridpulse/gridpulse/pkg/models"
)

// SystemStore reads system metadata.
type SystemStore interface {
	ListSystems(ctx context.Context) ([]*models.System, error)
	GetSystem(ctx context.Context, id int) (*models.System, error)
}

// PointStore manages point metadata. EnsurePoint is the ingest boundary that
// enforces origin-key uniqueness; it returns the existing point when the
// origin has been seen before.
type PointStore interface {
	EnsurePoint(ctx context.Context, point *models.Point) (*models.Point, error)
	UpdatePoint(ctx context.Context, point *models.Point) error
	DeactivatePoint(ctx context.Context, systemID, pointID int) error
	ListActivePoints(ctx context.Context, systemID int) ([]*models.Point, error)
	GetPointsByIDs(ctx context.Context, systemID int, pointIDs []int) ([]*models.Point, error)
}

// AggregateStore reads and writes the two rollup tables. Upserts are
// transactional: a batch either lands entirely or not at all.
type AggregateStore interface {
	FiveMinuteRange(ctx context.Context, systemID int, startEnd, stopEnd int64) ([]*models.FiveMinuteAggregate, error)
	UpsertFiveMinute(ctx context.Context, rows []*models.FiveMinuteAggregate) error
	UpsertDaily(ctx context.Context, rows []*models.DailyAggregate) error
	DailyDays(ctx context.Context, systemID int, from, to time.Time) ([]time.Time, error)
	EarliestFiveMinuteEnd(ctx context.Context, systemID int) (int64, bool, error)
	DeleteFiveMinuteRange(ctx context.Context, systemID int, startEnd, stopEnd int64) (int64, error)
	DeleteDailyRange(ctx context.Context, systemID int, from, to time.Time) (int64, error)
}

// SessionStore persists sync session audit rows: one insert at session
// start, one terminal update at the end.
type SessionStore interface {
	CreateSession(ctx context.Context, session *models.SyncSession) error
	FinalizeSession(ctx context.Context, session *models.SyncSession) error
	GetSession(ctx context.Context, id string) (*models.SyncSession, error)
}

// Service is the full persistence surface consumed by the engines.
type Service interface {
	SystemStore
	PointStore
	AggregateStore
	SessionStore
}
