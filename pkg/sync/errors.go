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

import "errors"

var (
	ErrSystemRequired  = errors.New("sync: system is required")
	ErrCompositeSystem = errors.New("sync: composite systems have no vendor to sync")
	ErrUnknownAction   = errors.New("sync: unknown action")
	ErrDaysOutOfRange  = errors.New("sync: days must be between 1 and 30")
	ErrVendorRequired  = errors.New("sync: no vendor client configured")
)
