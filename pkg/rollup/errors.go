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

package rollup

import "errors"

var (

	// Range validation errors. The API layer maps these to 400 responses.

	ErrRangeIncomplete  = errors.New("date range requires both start and end")
	ErrRangeOrder       = errors.New("date range start is after end")
	ErrDateBeforeFloor  = errors.New("date is before the configured minimum")
	ErrFloorDateInvalid = errors.New("floor date must be formatted 2006-01-02")
)
