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
	"strconv"
	"strings"
)

// compositeMetadataVersion is the only mappings shape currently understood.
const compositeMetadataVersion = 1

// CompositeMetadata is the parsed mappings payload of a composite system:
// logical category name to a list of "systemId.pointId" references into
// other systems.
type CompositeMetadata struct {
	Version  int                 `json:"version"`
	Mappings map[string][]string `json:"mappings"`
}

// ParseCompositeMetadata decodes a composite system's metadata blob. Unknown
// versions are rejected rather than guessed at.
func ParseCompositeMetadata(raw json.RawMessage) (*CompositeMetadata, error) {
	if len(raw) == 0 {
		return nil, ErrCompositeMetadataMissing
	}

	var meta CompositeMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, err
	}

	if meta.Version != compositeMetadataVersion {
		return nil, ErrCompositeVersionUnknown
	}

	return &meta, nil
}

// PointRef is a resolved "systemId.pointId" reference.
type PointRef struct {
	SystemID int
	PointID  int
}

// ParsePointRef parses a "systemId.pointId" reference string. The bool result
// is false for malformed references; callers drop those silently.
func ParsePointRef(ref string) (PointRef, bool) {
	parts := strings.Split(ref, ".")
	if len(parts) != 2 {
		return PointRef{}, false
	}

	systemID, err := strconv.Atoi(parts[0])
	if err != nil || systemID <= 0 {
		return PointRef{}, false
	}

	pointID, err := strconv.Atoi(parts[1])
	if err != nil || pointID <= 0 {
		return PointRef{}, false
	}

	return PointRef{SystemID: systemID, PointID: pointID}, true
}
