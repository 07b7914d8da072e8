package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gridpulse/gridpulse/pkg/models"
)

// nowUTC allows tests to override the timestamp source.
//
//nolint:gochecknoglobals // test hooks need a package-level clock override.
var nowUTC = func() time.Time {
	return time.Now().UTC()
}

const upsertFiveMinuteSQL = `
INSERT INTO five_minute_aggregates (
	system_id, point_id, interval_end,
	avg, min, max, last, delta,
	sample_count, error_count, updated_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
)
ON CONFLICT (system_id, point_id, interval_end) DO UPDATE SET
	avg          = EXCLUDED.avg,
	min          = EXCLUDED.min,
	max          = EXCLUDED.max,
	last         = EXCLUDED.last,
	delta        = EXCLUDED.delta,
	sample_count = EXCLUDED.sample_count,
	error_count  = EXCLUDED.error_count,
	updated_at   = EXCLUDED.updated_at`

const upsertDailySQL = `
INSERT INTO daily_aggregates (
	system_id, point_id, day,
	avg, min, max, last, delta,
	sample_count, error_count, updated_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
)
ON CONFLICT (system_id, point_id, day) DO UPDATE SET
	avg          = EXCLUDED.avg,
	min          = EXCLUDED.min,
	max          = EXCLUDED.max,
	last         = EXCLUDED.last,
	delta        = EXCLUDED.delta,
	sample_count = EXCLUDED.sample_count,
	error_count  = EXCLUDED.error_count,
	updated_at   = EXCLUDED.updated_at`

const selectFiveMinuteRangeSQL = `
SELECT system_id, point_id, interval_end,
	avg, min, max, last, delta,
	sample_count, error_count, updated_at
FROM five_minute_aggregates
WHERE system_id = $1 AND interval_end >= $2 AND interval_end <= $3
ORDER BY point_id, interval_end`

const selectDailyDaysSQL = `
SELECT DISTINCT day
FROM daily_aggregates
WHERE system_id = $1 AND day >= $2 AND day <= $3
ORDER BY day`

const selectEarliestFiveMinuteSQL = `
SELECT MIN(interval_end)
FROM five_minute_aggregates
WHERE system_id = $1`

const deleteFiveMinuteRangeSQL = `
DELETE FROM five_minute_aggregates
WHERE system_id = $1 AND interval_end >= $2 AND interval_end <= $3`

const deleteDailyRangeSQL = `
DELETE FROM daily_aggregates
WHERE system_id = $1 AND day >= $2 AND day <= $3`

// FiveMinuteRange returns 5-minute rows whose interval end falls inside
// [startEnd, stopEnd], ordered by point then time.
func (s *Store) FiveMinuteRange(ctx context.Context, systemID int, startEnd, stopEnd int64) ([]*models.FiveMinuteAggregate, error) {
	rows, err := s.pool.Query(ctx, selectFiveMinuteRangeSQL, systemID, startEnd, stopEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query 5m aggregates for system %d: %w", systemID, err)
	}
	defer rows.Close()

	var result []*models.FiveMinuteAggregate

	for rows.Next() {
		var agg models.FiveMinuteAggregate

		err := rows.Scan(
			&agg.SystemID,
			&agg.PointID,
			&agg.IntervalEnd,
			&agg.Avg,
			&agg.Min,
			&agg.Max,
			&agg.Last,
			&agg.Delta,
			&agg.SampleCount,
			&agg.ErrorCount,
			&agg.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan 5m aggregate: %w", err)
		}

		result = append(result, &agg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating 5m aggregates: %w", err)
	}

	return result, nil
}

// UpsertFiveMinute writes a batch of 5-minute rows in one transaction,
// overwriting every statistical field on conflict.
func (s *Store) UpsertFiveMinute(ctx context.Context, rows []*models.FiveMinuteAggregate) error {
	if len(rows) == 0 {
		return nil
	}

	batch := &pgx.Batch{}

	for _, row := range rows {
		if row == nil {
			continue
		}

		batch.Queue(upsertFiveMinuteSQL, buildFiveMinuteArgs(row)...)
	}

	return s.sendBatchTx(ctx, batch, "5m aggregates")
}

// UpsertDaily writes a batch of daily rows in one transaction. Callers batch
// per system-day so re-aggregation is atomic and readers never see a
// partial day.
func (s *Store) UpsertDaily(ctx context.Context, rows []*models.DailyAggregate) error {
	if len(rows) == 0 {
		return nil
	}

	batch := &pgx.Batch{}

	for _, row := range rows {
		if row == nil {
			continue
		}

		batch.Queue(upsertDailySQL, buildDailyArgs(row)...)
	}

	return s.sendBatchTx(ctx, batch, "daily aggregates")
}

// DailyDays returns the distinct days inside [from, to] that already have
// daily rows for a system.
func (s *Store) DailyDays(ctx context.Context, systemID int, from, to time.Time) ([]time.Time, error) {
	rows, err := s.pool.Query(ctx, selectDailyDaysSQL, systemID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily days for system %d: %w", systemID, err)
	}
	defer rows.Close()

	var days []time.Time

	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan daily day: %w", err)
		}

		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily days: %w", err)
	}

	return days, nil
}

// EarliestFiveMinuteEnd returns the first 5-minute interval end recorded for
// a system; ok is false when the system has no 5-minute data at all.
func (s *Store) EarliestFiveMinuteEnd(ctx context.Context, systemID int) (int64, bool, error) {
	var earliest *int64

	err := s.pool.QueryRow(ctx, selectEarliestFiveMinuteSQL, systemID).Scan(&earliest)
	if err != nil {
		return 0, false, fmt.Errorf("failed to query earliest 5m end for system %d: %w", systemID, err)
	}

	if earliest == nil {
		return 0, false, nil
	}

	return *earliest, true, nil
}

// DeleteFiveMinuteRange removes 5-minute rows in [startEnd, stopEnd] and
// returns the number deleted.
func (s *Store) DeleteFiveMinuteRange(ctx context.Context, systemID int, startEnd, stopEnd int64) (int64, error) {
	tag, err := s.pool.Exec(ctx, deleteFiveMinuteRangeSQL, systemID, startEnd, stopEnd)
	if err != nil {
		return 0, fmt.Errorf("failed to delete 5m range for system %d: %w", systemID, err)
	}

	return tag.RowsAffected(), nil
}

// DeleteDailyRange removes daily rows in [from, to] and returns the number
// deleted.
func (s *Store) DeleteDailyRange(ctx context.Context, systemID int, from, to time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, deleteDailyRangeSQL, systemID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to delete daily range for system %d: %w", systemID, err)
	}

	return tag.RowsAffected(), nil
}

func buildFiveMinuteArgs(row *models.FiveMinuteAggregate) []interface{} {
	return []interface{}{
		row.SystemID,
		row.PointID,
		row.IntervalEnd,
		row.Avg,
		row.Min,
		row.Max,
		row.Last,
		row.Delta,
		row.SampleCount,
		row.ErrorCount,
		sanitizeTimestamp(row.UpdatedAt),
	}
}

func buildDailyArgs(row *models.DailyAggregate) []interface{} {
	return []interface{}{
		row.SystemID,
		row.PointID,
		row.Day,
		row.Avg,
		row.Min,
		row.Max,
		row.Last,
		row.Delta,
		row.SampleCount,
		row.ErrorCount,
		sanitizeTimestamp(row.UpdatedAt),
	}
}

func sanitizeTimestamp(ts time.Time) time.Time {
	if ts.IsZero() {
		return nowUTC()
	}

	return ts.UTC()
}
