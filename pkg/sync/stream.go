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

import (
	"encoding/json"
	"io"
)

// WriteEvents encodes a session's event stream as newline-delimited JSON,
// one frame per event, until the channel closes. On a write error it keeps
// draining the channel so the producer never blocks, then reports the first
// error.
func WriteEvents(w io.Writer, events <-chan Event) error {
	encoder := json.NewEncoder(w)

	var firstErr error

	for event := range events {
		if firstErr != nil {
			continue
		}

		if err := encoder.Encode(event); err != nil {
			firstErr = err
		}
	}

	return firstErr
}
