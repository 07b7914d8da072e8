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

package series

import "errors"

var (

	// Filter validation errors. All of these reject the request before any
	// point lookup happens; the API layer maps them to 400 responses.

	ErrFilterTooLong     = errors.New("filter exceeds maximum length")
	ErrFilterCharacter   = errors.New("filter contains a disallowed character")
	ErrFilterBraces      = errors.New("filter has unmatched braces")
	ErrFilterSyntax      = errors.New("filter pattern is not valid glob syntax")
	ErrFilterEmptyClause = errors.New("filter has an empty pattern clause")
)
