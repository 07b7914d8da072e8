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

package db

import "errors"

var (

	// Core database errors.

	ErrConfigNil    = errors.New("database config is nil")
	ErrFailedOpenDB = errors.New("failed to open database")

	// Lookup errors.

	ErrSystemNotFound  = errors.New("system not found")
	ErrSessionNotFound = errors.New("sync session not found")

	// Validation errors.

	ErrPointOriginRequired = errors.New("point origin id is required")
	ErrSessionIDRequired   = errors.New("sync session id is required")
)
