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

package sync

import "github.com/gridpulse/gridpulse/pkg/models"

// EventType tags the payload variant carried by an Event.
type EventType string

const (
	EventProgress EventType = "progress"
	EventStages   EventType = "stages"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// Progress is a monotonic (message, progress, total) tuple suitable for a
// percentage bar, independent of stage detail.
type Progress struct {
	Message  string `json:"message"`
	Progress int    `json:"progress"`
	Total    int    `json:"total"`
}

// Event is one frame of a session's output stream. Exactly one payload
// field is set, selected by Type.
type Event struct {
	Type     EventType            `json:"type"`
	Progress *Progress            `json:"progress,omitempty"`
	Stages   []models.StageResult `json:"stages,omitempty"`
	Session  *models.SyncSession  `json:"session,omitempty"`
	Error    string               `json:"error,omitempty"`
}

func progressEvent(message string, progress, total int) Event {
	return Event{
		Type:     EventProgress,
		Progress: &Progress{Message: message, Progress: progress, Total: total},
	}
}

func stagesEvent(stages []models.StageResult) Event {
	// Listeners may hold the slice across later stage appends, so hand out
	// a copy.
	snapshot := make([]models.StageResult, len(stages))
	copy(snapshot, stages)

	return Event{Type: EventStages, Stages: snapshot}
}

func completeEvent(session *models.SyncSession) Event {
	return Event{Type: EventComplete, Session: session}
}

func errorEvent(message string) Event {
	return Event{Type: EventError, Error: message}
}
