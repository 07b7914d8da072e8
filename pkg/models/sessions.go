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
	"time"
)

// SyncCause records what triggered a sync session.
type SyncCause string

const (
	CausePoll  SyncCause = "POLL"
	CausePush  SyncCause = "PUSH"
	CauseUser  SyncCause = "USER"
	CauseAdmin SyncCause = "ADMIN"
)

// WithDryRun returns the cause label used for audit rows, with the dry-run
// variant applied when set.
func (c SyncCause) WithDryRun(dryRun bool) string {
	if dryRun {
		return string(c) + "_DRYRUN"
	}

	return string(c)
}

// SyncSession is the audit record of one vendor synchronization attempt.
// It is inserted when the sync starts and updated exactly once at the end.
type SyncSession struct {
	ID         string          `json:"id"`
	SystemID   int             `json:"system_id"`
	Label      string          `json:"label"`
	Cause      string          `json:"cause"`
	Started    time.Time       `json:"started"`
	DurationMS int64           `json:"duration_ms"`
	Successful bool            `json:"successful"`
	Error      string          `json:"error,omitempty"`
	NumRows    int             `json:"num_rows"`
	Detail     json.RawMessage `json:"detail,omitempty"`
}

// CharacterisationSpan annotates one time range of fetched data with a
// quality code and the point ids that contributed to it.
type CharacterisationSpan struct {
	From     int64  `json:"from"`
	To       int64  `json:"to"`
	Quality  string `json:"quality"`
	PointIDs []int  `json:"point_ids,omitempty"`
}

// SeriesOverview summarises one sub-series inside a stage result.
type SeriesOverview struct {
	Records int      `json:"records"`
	First   int64    `json:"first,omitempty"`
	Last    int64    `json:"last,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
}

// SampleRecord is one bounded example record included in a stage result.
type SampleRecord struct {
	PointID int     `json:"point_id"`
	End     int64   `json:"end"`
	Value   float64 `json:"value"`
}

// StageResult is the structured outcome of one named sync stage. A stage
// error is non-fatal to the session; later stages may still run.
type StageResult struct {
	Name             string                    `json:"name"`
	Request          string                    `json:"request,omitempty"`
	Discovery        string                    `json:"discovery,omitempty"`
	Records          int                       `json:"records"`
	Quality          string                    `json:"quality,omitempty"`
	Overview         map[string]SeriesOverview `json:"overview,omitempty"`
	Characterisation []CharacterisationSpan    `json:"characterisation,omitempty"`
	Samples          []SampleRecord            `json:"samples,omitempty"`
	SamplesOmitted   int                       `json:"samples_omitted,omitempty"`
	Display          []string                  `json:"display,omitempty"`
	Error            string                    `json:"error,omitempty"`
}
