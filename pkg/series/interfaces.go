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

import (
	"context"
	"time"

	"github.com/gridpulse/gridpulse/pkg/models"
)

// PointSource is the point lookup surface the manager consumes.
type PointSource interface {
	ListActivePoints(ctx context.Context, systemID int) ([]*models.Point, error)
	GetPointsByIDs(ctx context.Context, systemID int, pointIDs []int) ([]*models.Point, error)
}

// Clock abstracts the time source so cache TTL expiry is testable without
// wall-clock sleeps.
type Clock interface {
	Now() time.Time
}
