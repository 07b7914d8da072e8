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

import "errors"

var (
	errInvalidDuration = errors.New("invalid duration")

	// ErrInvalidInterval is exposed so the API layer can map it to a 400.
	ErrInvalidInterval = errors.New("invalid interval: must be 5m or 1d")

	// Composite metadata errors.

	ErrCompositeMetadataMissing = errors.New("composite system has no metadata")
	ErrCompositeVersionUnknown  = errors.New("composite metadata version not supported")

	// Config validation errors.

	ErrConfigDBRequired        = errors.New("db host and database are required")
	ErrConfigFloorDateRequired = errors.New("rollup floor_date is required")
	ErrConfigFloorDateInvalid  = errors.New("rollup floor_date must be formatted 2006-01-02")
)
