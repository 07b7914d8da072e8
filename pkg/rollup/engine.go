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

// Package rollup computes daily aggregate rows from 5-minute aggregates,
// calendar-day-aware in each system's own UTC offset.
package rollup

import (
	"context"
	"fmt"
	"time"

	"github.com/gridpulse/gridpulse/pkg/logger"
	"github.com/gridpulse/gridpulse/pkg/models"
)

const dateFormat = "2006-01-02"

// Engine drives daily rollups. Writes for one system-day land in a single
// transactional upsert; the engine holds no locks beyond that.
type Engine struct {
	store  Store
	clock  Clock
	floor  time.Time
	logger logger.Logger
}

// NewEngine builds an engine. floorDate (2006-01-02) is the hard lower bound
// for every range operation.
func NewEngine(store Store, clock Clock, floorDate string, log logger.Logger) (*Engine, error) {
	floor, err := time.Parse(dateFormat, floorDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrFloorDateInvalid, floorDate)
	}

	return &Engine{
		store:  store,
		clock:  clock,
		floor:  floor,
		logger: log,
	}, nil
}

// AggregateDay rolls one system's calendar day up into daily rows. A day
// with no 5-minute data yields nil and writes nothing.
func (e *Engine) AggregateDay(ctx context.Context, system *models.System, date time.Time) ([]*models.DailyAggregate, error) {
	dayStart := system.DayStart(date)

	buckets, err := e.store.FiveMinuteRange(ctx, system.ID, dayStart+bucketSeconds, dayStart+daySeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to load 5m buckets for system %d: %w", system.ID, err)
	}

	if len(buckets) == 0 {
		return nil, nil
	}

	points, err := e.store.ListActivePoints(ctx, system.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load points for system %d: %w", system.ID, err)
	}

	rows := ComputeDay(points, buckets, dayStart, date, e.clock.Now().UTC())
	if len(rows) == 0 {
		return nil, nil
	}

	if err := e.store.UpsertDaily(ctx, rows); err != nil {
		return nil, fmt.Errorf("failed to upsert daily rows for system %d: %w", system.ID, err)
	}

	e.logger.Debug().
		Int("system_id", system.ID).
		Str("day", date.Format(dateFormat)).
		Int("rows", len(rows)).
		Msg("Aggregated day")

	return rows, nil
}

// AggregateYesterdayAll rolls up yesterday, per each system's own calendar,
// for every non-composite system. This is the nightly cron entrypoint.
func (e *Engine) AggregateYesterdayAll(ctx context.Context) error {
	systems, err := e.store.ListSystems(ctx)
	if err != nil {
		return fmt.Errorf("failed to list systems: %w", err)
	}

	now := e.clock.Now()

	for _, system := range systems {
		if system.IsComposite() {
			continue
		}

		date := system.Today(now).AddDate(0, 0, -1)

		if _, err := e.AggregateDay(ctx, system, date); err != nil {
			e.logger.Error().Err(err).
				Int("system_id", system.ID).
				Msg("Yesterday rollup failed for system")
		}
	}

	return nil
}

// AggregateDateAll regenerates one date for every non-composite system.
func (e *Engine) AggregateDateAll(ctx context.Context, date time.Time) error {
	if err := e.validateDate(date); err != nil {
		return err
	}

	return e.forEachSystemDay(ctx, date, date)
}

// AggregateRange backfills every day in [start, end] for every non-composite
// system.
func (e *Engine) AggregateRange(ctx context.Context, start, end time.Time) error {
	if err := e.ValidateRange(start, end); err != nil {
		return err
	}

	return e.forEachSystemDay(ctx, start, end)
}

// AggregateAllMissing rebuilds every day that has 5-minute data but no daily
// rows yet, up to yesterday, per system.
func (e *Engine) AggregateAllMissing(ctx context.Context) error {
	systems, err := e.store.ListSystems(ctx)
	if err != nil {
		return fmt.Errorf("failed to list systems: %w", err)
	}

	now := e.clock.Now()

	for _, system := range systems {
		if system.IsComposite() {
			continue
		}

		if err := e.aggregateMissingForSystem(ctx, system, now); err != nil {
			e.logger.Error().Err(err).
				Int("system_id", system.ID).
				Msg("Missing-day rollup failed for system")
		}
	}

	return nil
}

func (e *Engine) aggregateMissingForSystem(ctx context.Context, system *models.System, now time.Time) error {
	earliest, ok, err := e.store.EarliestFiveMinuteEnd(ctx, system.ID)
	if err != nil {
		return err
	}

	if !ok {
		return nil
	}

	// The earliest bucket end belongs to the local day containing the five
	// minutes before it.
	first := system.Today(time.Unix(earliest-bucketSeconds, 0))
	if first.Before(e.floor) {
		first = e.floor
	}

	yesterday := system.Today(now).AddDate(0, 0, -1)
	if yesterday.Before(first) {
		return nil
	}

	existing, err := e.store.DailyDays(ctx, system.ID, first, yesterday)
	if err != nil {
		return err
	}

	have := make(map[string]struct{}, len(existing))
	for _, day := range existing {
		have[day.Format(dateFormat)] = struct{}{}
	}

	for date := first; !date.After(yesterday); date = date.AddDate(0, 0, 1) {
		if _, ok := have[date.Format(dateFormat)]; ok {
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := e.AggregateDay(ctx, system, date); err != nil {
			return err
		}
	}

	return nil
}

// DeleteRange removes aggregate rows, both resolutions, for every system in
// [start, end]. The floor date is a hard guard: requests reaching below it
// fail outright rather than being clamped.
func (e *Engine) DeleteRange(ctx context.Context, start, end time.Time) (int64, error) {
	if err := e.ValidateRange(start, end); err != nil {
		return 0, err
	}

	systems, err := e.store.ListSystems(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list systems: %w", err)
	}

	var deleted int64

	for _, system := range systems {
		if system.IsComposite() {
			continue
		}

		n, err := e.store.DeleteDailyRange(ctx, system.ID, start, end)
		if err != nil {
			return deleted, fmt.Errorf("failed to delete daily rows for system %d: %w", system.ID, err)
		}

		deleted += n

		startEnd := system.DayStart(start) + bucketSeconds
		stopEnd := system.DayStart(end) + daySeconds

		n, err = e.store.DeleteFiveMinuteRange(ctx, system.ID, startEnd, stopEnd)
		if err != nil {
			return deleted, fmt.Errorf("failed to delete 5m rows for system %d: %w", system.ID, err)
		}

		deleted += n

		e.logger.Warn().
			Int("system_id", system.ID).
			Str("start", start.Format(dateFormat)).
			Str("end", end.Format(dateFormat)).
			Msg("Deleted aggregate range")
	}

	return deleted, nil
}

// ValidateRange enforces both-or-neither, ordering, and the floor date.
func (e *Engine) ValidateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrRangeIncomplete
	}

	if start.After(end) {
		return ErrRangeOrder
	}

	return e.validateDate(start)
}

func (e *Engine) validateDate(date time.Time) error {
	if date.IsZero() {
		return ErrRangeIncomplete
	}

	if date.Before(e.floor) {
		return fmt.Errorf("%w: %s precedes %s", ErrDateBeforeFloor,
			date.Format(dateFormat), e.floor.Format(dateFormat))
	}

	return nil
}

func (e *Engine) forEachSystemDay(ctx context.Context, start, end time.Time) error {
	systems, err := e.store.ListSystems(ctx)
	if err != nil {
		return fmt.Errorf("failed to list systems: %w", err)
	}

	for _, system := range systems {
		if system.IsComposite() {
			continue
		}

		for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
			if err := ctx.Err(); err != nil {
				return err
			}

			if _, err := e.AggregateDay(ctx, system, date); err != nil {
				e.logger.Error().Err(err).
					Int("system_id", system.ID).
					Str("day", date.Format(dateFormat)).
					Msg("Rollup failed for system day")
			}
		}
	}

	return nil
}
