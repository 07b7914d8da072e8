package rollup

import (
	"time"

	"github.com/gridpulse/gridpulse/pkg/aggregate"
	"github.com/gridpulse/gridpulse/pkg/models"
)

const (
	bucketSeconds = 300
	daySeconds    = 86400
)

// ComputeDay folds one system-day of 5-minute buckets into daily rows, one
// per point that contributed data. The bucket range for a day runs from
// dayStart+5m through dayStart+24h inclusive: the bucket labelled midnight
// covers the trailing five minutes of the day that just ended, and its last
// value is the day's closing reading.
//
// Daily avg is an unweighted mean of bucket averages, not weighted by sample
// count. That approximation is deliberate and must not change silently.
func ComputeDay(points []*models.Point, buckets []*models.FiveMinuteAggregate, dayStart int64, day time.Time, now time.Time) []*models.DailyAggregate {
	if len(buckets) == 0 {
		return nil
	}

	kinds := make(map[int]models.MetricKind, len(points))
	for _, point := range points {
		kinds[point.ID] = point.Kind()
	}

	byPoint := make(map[int][]*models.FiveMinuteAggregate)
	order := make([]int, 0, len(points))

	for _, bucket := range buckets {
		if _, ok := kinds[bucket.PointID]; !ok {
			// Inactive or unknown point; its buckets stay out of the rollup.
			continue
		}

		if _, seen := byPoint[bucket.PointID]; !seen {
			order = append(order, bucket.PointID)
		}

		byPoint[bucket.PointID] = append(byPoint[bucket.PointID], bucket)
	}

	boundaryEnd := dayStart + daySeconds
	rows := make([]*models.DailyAggregate, 0, len(byPoint))

	for _, pointID := range order {
		row := computePointDay(pointID, kinds[pointID], byPoint[pointID], boundaryEnd)
		if row == nil {
			continue
		}

		row.Day = day
		row.UpdatedAt = now

		rows = append(rows, row)
	}

	return rows
}

func computePointDay(pointID int, kind models.MetricKind, buckets []*models.FiveMinuteAggregate, boundaryEnd int64) *models.DailyAggregate {
	var (
		avgSum   float64
		avgCount int
		min      *float64
		max      *float64
		last     *float64
		delta    *float64
	)

	row := &models.DailyAggregate{
		SystemID: buckets[0].SystemID,
		PointID:  pointID,
	}

	for _, bucket := range buckets {
		if bucket.Avg != nil {
			avgSum += *bucket.Avg
			avgCount++
		}

		if bucket.Min != nil && (min == nil || *bucket.Min < *min) {
			v := *bucket.Min
			min = &v
		}

		if bucket.Max != nil && (max == nil || *bucket.Max > *max) {
			v := *bucket.Max
			max = &v
		}

		if bucket.Delta != nil {
			v := *bucket.Delta
			if delta == nil {
				delta = &v
			} else {
				*delta += v
			}
		}

		if bucket.IntervalEnd == boundaryEnd && bucket.Last != nil {
			v := *bucket.Last
			last = &v
		}

		row.SampleCount += bucket.SampleCount
		row.ErrorCount += bucket.ErrorCount
	}

	if avgCount > 0 {
		mean := avgSum / float64(avgCount)
		row.Avg = &mean
	}

	row.Min = min
	row.Max = max
	row.Last = last
	row.Delta = delta

	// The rules table decides which fields exist for this kind at the daily
	// interval; everything else is forced back to null.
	if !aggregate.Supports(kind, models.AggAvg, models.IntervalDaily) {
		row.Avg = nil
	}

	if !aggregate.Supports(kind, models.AggMin, models.IntervalDaily) {
		row.Min = nil
	}

	if !aggregate.Supports(kind, models.AggMax, models.IntervalDaily) {
		row.Max = nil
	}

	if !aggregate.Supports(kind, models.AggLast, models.IntervalDaily) {
		row.Last = nil
	}

	if !aggregate.Supports(kind, models.AggDelta, models.IntervalDaily) {
		row.Delta = nil
	}

	if row.Avg == nil && row.Min == nil && row.Max == nil && row.Last == nil && row.Delta == nil && row.SampleCount == 0 {
		return nil
	}

	return row
}
