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

// Package sync runs vendor data synchronizations as auditable, observable,
// cancellable sessions. A session persists its audit row before the first
// vendor call and finalizes it exactly once on every exit path.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gridpulse/gridpulse/pkg/logger"
	"github.com/gridpulse/gridpulse/pkg/models"
)

// Action selects which vendor dataset a session synchronizes.
type Action string

const (
	ActionUsage   Action = "usage"
	ActionPricing Action = "pricing"
	ActionBoth    Action = "both"
)

const (
	stageDiscover     = "Discover ranges"
	stageFetchUsage   = "Fetch usage"
	stageFetchPricing = "Fetch pricing"
	stageCompare      = "Compare & write"

	maxSyncDays        = 30
	maxSamplesPerPoint = 2
	eventBuffer        = 16
	finalizeTimeout    = 10 * time.Second
	daySeconds         = 86400
	dateFormat         = "2006-01-02"
)

// Options configures one session. Validation happens before any I/O.
type Options struct {
	System *models.System
	Action Action
	// StartDate is the first local calendar day to sync. The zero value
	// requests today's partial data instead of a day range.
	StartDate  time.Time
	Days       int
	DryRun     bool
	ShowSample bool
	Cause      models.SyncCause
}

// Validate rejects unusable options with a sentinel error.
func (o *Options) Validate() error {
	if o.System == nil {
		return ErrSystemRequired
	}

	if o.System.IsComposite() {
		return ErrCompositeSystem
	}

	switch o.Action {
	case ActionUsage, ActionPricing, ActionBoth:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, o.Action)
	}

	if !o.StartDate.IsZero() && (o.Days < 1 || o.Days > maxSyncDays) {
		return ErrDaysOutOfRange
	}

	return nil
}

// Engine executes sync sessions against a vendor client and the stores.
type Engine struct {
	store       Store
	vendor      VendorClient
	aggregator  Aggregator
	invalidator Invalidator
	clock       Clock
	logger      logger.Logger
}

// NewEngine builds an engine. The invalidator is optional; a nil clock
// falls back to wall time.
func NewEngine(store Store, vendor VendorClient, aggregator Aggregator, invalidator Invalidator, clock Clock, log logger.Logger) *Engine {
	if clock == nil {
		clock = realClock{}
	}

	return &Engine{
		store:       store,
		vendor:      vendor,
		aggregator:  aggregator,
		invalidator: invalidator,
		clock:       clock,
		logger:      log,
	}
}

// Run validates the options and starts the session in a goroutine. The
// returned channel streams events as stages complete and closes after the
// terminal event. Cancel ctx to stop the session cooperatively.
func (e *Engine) Run(ctx context.Context, opts Options) (<-chan Event, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if e.vendor == nil {
		return nil, ErrVendorRequired
	}

	if opts.Cause == "" {
		opts.Cause = models.CauseUser
	}

	events := make(chan Event, eventBuffer)

	go e.run(ctx, opts, events)

	return events, nil
}

// runState accumulates what the stages produce. The finalizer reads it
// after stage execution has returned, panicked, or been cancelled.
type runState struct {
	stages     []models.StageResult
	candidates []*models.FiveMinuteAggregate
	points     map[string]*models.Point
	startUnix  int64
	endUnix    int64
	numRows    int
	fatal      error
	cancelled  bool
}

func (e *Engine) run(ctx context.Context, opts Options, events chan<- Event) {
	defer close(events)

	started := e.clock.Now().UTC()
	session := e.newSession(opts, started)

	if err := e.store.CreateSession(ctx, session); err != nil {
		e.logger.Error().Err(err).
			Int("system_id", opts.System.ID).
			Msg("Failed to create sync session")
		events <- errorEvent(fmt.Sprintf("failed to create session: %v", err))

		return
	}

	state := &runState{points: make(map[string]*models.Point)}

	defer e.finalize(ctx, session, started, state, events)

	defer func() {
		if r := recover(); r != nil {
			state.fatal = fmt.Errorf("sync panicked: %v", r)
		}
	}()

	e.executeStages(ctx, opts, state, events)
}

func (e *Engine) newSession(opts Options, started time.Time) *models.SyncSession {
	id := uuid.NewString()

	date := "today"
	if !opts.StartDate.IsZero() {
		date = opts.StartDate.Format(dateFormat)
	}

	return &models.SyncSession{
		ID:       id,
		SystemID: opts.System.ID,
		Label:    fmt.Sprintf("%s %s %s %s", opts.System.Name, opts.Action, date, id[:8]),
		Cause:    opts.Cause.WithDryRun(opts.DryRun),
		Started:  started,
	}
}

// finalize writes the single terminal session update and emits the terminal
// event. It runs on every exit path, a panic in stage execution included,
// and uses a detached context so cancellation cannot skip the audit write.
func (e *Engine) finalize(ctx context.Context, session *models.SyncSession, started time.Time, state *runState, events chan<- Event) {
	session.DurationMS = e.clock.Now().UTC().Sub(started).Milliseconds()
	session.NumRows = state.numRows
	session.Successful = state.fatal == nil && !state.cancelled && !stagesErrored(state.stages)

	switch {
	case state.fatal != nil:
		session.Error = state.fatal.Error()
	case state.cancelled:
		session.Error = "Cancelled"
	case stagesErrored(state.stages):
		session.Error = firstStageError(state.stages)
	}

	if detail, err := json.Marshal(state.stages); err == nil {
		session.Detail = detail
	}

	finalizeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
	defer cancel()

	if err := e.store.FinalizeSession(finalizeCtx, session); err != nil {
		e.logger.Error().Err(err).
			Str("session_id", session.ID).
			Msg("Failed to finalize sync session")
	}

	if state.fatal != nil {
		events <- errorEvent(state.fatal.Error())
		return
	}

	events <- completeEvent(session)
}

func (e *Engine) executeStages(ctx context.Context, opts Options, state *runState, events chan<- Event) {
	stages := planStages(opts.Action)
	total := len(stages)

	for i, name := range stages {
		// Cancellation is cooperative: checked between stages, never
		// preemptive.
		if ctx.Err() != nil {
			state.cancelled = true
			state.stages = append(state.stages, models.StageResult{Name: name, Error: "Cancelled"})
			events <- stagesEvent(state.stages)

			return
		}

		events <- progressEvent(name, i, total)

		result := e.runStage(ctx, name, opts, state)

		if ctx.Err() != nil {
			state.cancelled = true

			if result.Error == "" {
				result.Error = "Interrupted"
			}
		}

		state.stages = append(state.stages, result)
		events <- stagesEvent(state.stages)

		if state.cancelled {
			return
		}
	}

	events <- progressEvent("Done", total, total)
}

func planStages(action Action) []string {
	stages := []string{stageDiscover}

	if action == ActionUsage || action == ActionBoth {
		stages = append(stages, stageFetchUsage)
	}

	if action == ActionPricing || action == ActionBoth {
		stages = append(stages, stageFetchPricing)
	}

	return append(stages, stageCompare)
}

func (e *Engine) runStage(ctx context.Context, name string, opts Options, state *runState) models.StageResult {
	switch name {
	case stageDiscover:
		return discoverStage(opts, state)
	case stageFetchUsage:
		return e.fetchStage(ctx, name, ActionUsage, opts, state)
	case stageFetchPricing:
		return e.fetchStage(ctx, name, ActionPricing, opts, state)
	case stageCompare:
		return e.compareStage(ctx, opts, state)
	}

	return models.StageResult{Name: name, Error: "unknown stage"}
}

func discoverStage(opts Options, state *runState) models.StageResult {
	result := models.StageResult{Name: stageDiscover}

	if opts.StartDate.IsZero() {
		result.Discovery = "today's partial data"
		return result
	}

	state.startUnix = opts.System.DayStart(opts.StartDate)
	state.endUnix = state.startUnix + int64(opts.Days)*daySeconds

	result.Discovery = fmt.Sprintf("%d day(s) from %s", opts.Days, opts.StartDate.Format(dateFormat))
	result.Display = []string{fmt.Sprintf("interval ends in (%d, %d]", state.startUnix, state.endUnix)}

	return result
}

// fetchStage pulls one dataset from the vendor and normalizes it into
// candidate 5-minute rows. Fetch failures stay at the stage boundary; later
// stages still run.
func (e *Engine) fetchStage(ctx context.Context, name string, action Action, opts Options, state *runState) models.StageResult {
	result := models.StageResult{
		Name:    name,
		Request: fmt.Sprintf("%s (%d, %d]", action, state.startUnix, state.endUnix),
	}

	intervals, err := e.vendor.FetchIntervals(ctx, opts.System, action, state.startUnix, state.endUnix)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Records = len(intervals)

	rows, errCount, err := e.normalize(ctx, opts.System, intervals, state)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	switch {
	case len(rows) == 0:
		result.Quality = "empty"
	case errCount == 0:
		result.Quality = "good"
	default:
		result.Quality = "partial"
	}

	result.Overview = e.overview(rows, state)
	result.Characterisation = characterise(rows, result.Quality)

	if opts.ShowSample {
		result.Samples, result.SamplesOmitted = sampleRows(rows)
	}

	return result
}

// normalize resolves every raw field to a point through the origin key and
// shapes its value into a candidate 5-minute row.
func (e *Engine) normalize(ctx context.Context, system *models.System, intervals []*models.RawInterval, state *runState) ([]*models.FiveMinuteAggregate, int, error) {
	var (
		rows     []*models.FiveMinuteAggregate
		errCount int
	)

	for _, interval := range intervals {
		for i := range interval.Fields {
			field := &interval.Fields[i]

			point, err := e.resolvePoint(ctx, system, field, state)
			if err != nil {
				return rows, errCount, err
			}

			if field.Error {
				errCount++
			}

			rows = append(rows, candidateRow(point, interval.End, field))
		}
	}

	state.candidates = append(state.candidates, rows...)

	return rows, errCount, nil
}

func (e *Engine) resolvePoint(ctx context.Context, system *models.System, field *models.RawField, state *runState) (*models.Point, error) {
	key := models.OriginKey(field.OriginID, field.OriginSubID)

	if point, ok := state.points[key]; ok {
		return point, nil
	}

	point, err := e.store.EnsurePoint(ctx, &models.Point{
		SystemID:    system.ID,
		OriginID:    field.OriginID,
		OriginSubID: field.OriginSubID,
		MetricType:  field.MetricType,
		MetricUnit:  field.MetricUnit,
		Transform:   field.Transform,
		DefaultName: field.Name,
		Active:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure point %q: %w", key, err)
	}

	state.points[key] = point

	return point, nil
}

// candidateRow shapes one raw value into the 5-minute row the point's kind
// calls for: energy carries delta, soc carries last, power-like carries avg
// and last. The delta-only transform overrides the kind shape.
func candidateRow(point *models.Point, end int64, field *models.RawField) *models.FiveMinuteAggregate {
	value := field.Value

	transform := field.Transform
	if transform == models.TransformNone {
		transform = point.Transform
	}

	if transform == models.TransformNegate {
		value = -value
	}

	row := &models.FiveMinuteAggregate{
		SystemID:    point.SystemID,
		PointID:     point.ID,
		IntervalEnd: end,
		SampleCount: 1,
	}

	if field.Error {
		row.ErrorCount = 1
	}

	if transform == models.TransformDeltaOnly {
		row.Delta = &value
		return row
	}

	switch point.Kind() {
	case models.MetricKindEnergy:
		row.Delta = &value
	case models.MetricKindSoc:
		row.Last = &value
	default:
		avg := value
		last := value
		row.Avg = &avg
		row.Last = &last
	}

	return row
}

// overview summarises the fetched rows per series path.
func (e *Engine) overview(rows []*models.FiveMinuteAggregate, state *runState) map[string]models.SeriesOverview {
	if len(rows) == 0 {
		return nil
	}

	byPoint := make(map[int]string, len(state.points))
	for _, point := range state.points {
		byPoint[point.ID] = point.LogicalPath()
	}

	result := make(map[string]models.SeriesOverview)

	for _, row := range rows {
		path := byPoint[row.PointID]
		entry := result[path]
		entry.Records++

		if entry.First == 0 || row.IntervalEnd < entry.First {
			entry.First = row.IntervalEnd
		}

		if row.IntervalEnd > entry.Last {
			entry.Last = row.IntervalEnd
		}

		if value, ok := primaryValue(row); ok {
			if entry.Min == nil || value < *entry.Min {
				v := value
				entry.Min = &v
			}

			if entry.Max == nil || value > *entry.Max {
				v := value
				entry.Max = &v
			}
		}

		result[path] = entry
	}

	return result
}

func primaryValue(row *models.FiveMinuteAggregate) (float64, bool) {
	switch {
	case row.Avg != nil:
		return *row.Avg, true
	case row.Delta != nil:
		return *row.Delta, true
	case row.Last != nil:
		return *row.Last, true
	}

	return 0, false
}

// characterise annotates the fetched time range with the uniform quality
// code and the contributing point ids.
func characterise(rows []*models.FiveMinuteAggregate, quality string) []models.CharacterisationSpan {
	if len(rows) == 0 {
		return nil
	}

	span := models.CharacterisationSpan{Quality: quality}
	seen := make(map[int]struct{})

	for _, row := range rows {
		if span.From == 0 || row.IntervalEnd < span.From {
			span.From = row.IntervalEnd
		}

		if row.IntervalEnd > span.To {
			span.To = row.IntervalEnd
		}

		if _, ok := seen[row.PointID]; !ok {
			seen[row.PointID] = struct{}{}
			span.PointIDs = append(span.PointIDs, row.PointID)
		}
	}

	sort.Ints(span.PointIDs)

	return []models.CharacterisationSpan{span}
}

// sampleRows bounds the samples included in a stage result to a couple per
// point and reports how many were dropped for brevity.
func sampleRows(rows []*models.FiveMinuteAggregate) ([]models.SampleRecord, int) {
	perPoint := make(map[int]int)

	var (
		samples []models.SampleRecord
		omitted int
	)

	for _, row := range rows {
		if perPoint[row.PointID] >= maxSamplesPerPoint {
			omitted++
			continue
		}

		value, ok := primaryValue(row)
		if !ok {
			omitted++
			continue
		}

		perPoint[row.PointID]++

		samples = append(samples, models.SampleRecord{
			PointID: row.PointID,
			End:     row.IntervalEnd,
			Value:   value,
		})
	}

	return samples, omitted
}

// compareStage diffs the candidates against the stored rows and writes the
// new or changed ones. Dry runs go through the identical comparison and
// report the row count a real run would have written.
func (e *Engine) compareStage(ctx context.Context, opts Options, state *runState) models.StageResult {
	result := models.StageResult{Name: stageCompare}

	candidates := dedupeCandidates(state.candidates)
	if len(candidates) == 0 {
		result.Discovery = "nothing fetched"
		return result
	}

	minEnd, maxEnd := candidates[0].IntervalEnd, candidates[0].IntervalEnd
	for _, row := range candidates {
		if row.IntervalEnd < minEnd {
			minEnd = row.IntervalEnd
		}

		if row.IntervalEnd > maxEnd {
			maxEnd = row.IntervalEnd
		}
	}

	existing, err := e.store.FiveMinuteRange(ctx, opts.System.ID, minEnd, maxEnd)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	stored := make(map[rowKey]*models.FiveMinuteAggregate, len(existing))
	for _, row := range existing {
		stored[rowKey{row.PointID, row.IntervalEnd}] = row
	}

	var toWrite []*models.FiveMinuteAggregate

	for _, row := range candidates {
		current, ok := stored[rowKey{row.PointID, row.IntervalEnd}]
		if !ok || !rowsEqual(current, row) {
			toWrite = append(toWrite, row)
		}
	}

	state.numRows = len(toWrite)
	result.Records = len(toWrite)
	result.Display = []string{fmt.Sprintf("%d of %d rows new or changed", len(toWrite), len(candidates))}

	if opts.DryRun {
		result.Discovery = "dry run, write skipped"
		return result
	}

	if len(toWrite) == 0 {
		return result
	}

	if err := e.store.UpsertFiveMinute(ctx, toWrite); err != nil {
		state.numRows = 0
		result.Error = err.Error()

		return result
	}

	// Points may have been created during normalization.
	if e.invalidator != nil {
		e.invalidator.Invalidate(opts.System.ID)
	}

	for _, day := range touchedDays(opts.System, toWrite) {
		if _, err := e.aggregator.AggregateDay(ctx, opts.System, day); err != nil {
			e.logger.Warn().Err(err).
				Int("system_id", opts.System.ID).
				Str("day", day.Format(dateFormat)).
				Msg("Failed to re-aggregate touched day")

			if result.Error == "" {
				result.Error = err.Error()
			}
		}
	}

	return result
}

type rowKey struct {
	pointID int
	end     int64
}

// dedupeCandidates keeps the last candidate per (point, interval end) so a
// pricing fetch can override a usage fetch for the same bucket.
func dedupeCandidates(rows []*models.FiveMinuteAggregate) []*models.FiveMinuteAggregate {
	byKey := make(map[rowKey]int, len(rows))

	var result []*models.FiveMinuteAggregate

	for _, row := range rows {
		key := rowKey{row.PointID, row.IntervalEnd}
		if i, ok := byKey[key]; ok {
			result[i] = row
			continue
		}

		byKey[key] = len(result)
		result = append(result, row)
	}

	return result
}

func rowsEqual(a, b *models.FiveMinuteAggregate) bool {
	return floatPtrEqual(a.Avg, b.Avg) &&
		floatPtrEqual(a.Min, b.Min) &&
		floatPtrEqual(a.Max, b.Max) &&
		floatPtrEqual(a.Last, b.Last) &&
		floatPtrEqual(a.Delta, b.Delta) &&
		a.SampleCount == b.SampleCount &&
		a.ErrorCount == b.ErrorCount
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}

// touchedDays returns the distinct local calendar days the rows fall on, in
// ascending order. The bucket ending exactly at a day boundary belongs to
// the day it closes.
func touchedDays(system *models.System, rows []*models.FiveMinuteAggregate) []time.Time {
	seen := make(map[time.Time]struct{})

	var days []time.Time

	for _, row := range rows {
		local := time.Unix(row.IntervalEnd-1+int64(system.OffsetMinutes)*60, 0).UTC()
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

		if _, ok := seen[day]; !ok {
			seen[day] = struct{}{}
			days = append(days, day)
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	return days
}

func stagesErrored(stages []models.StageResult) bool {
	return firstStageError(stages) != ""
}

func firstStageError(stages []models.StageResult) string {
	for _, stage := range stages {
		if stage.Error != "" {
			return stage.Error
		}
	}

	return ""
}
