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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gridpulse/gridpulse/pkg/models"
)

const (
	defaultVendorTimeout  = 30 * time.Second
	maxVendorResponseSize = 32 << 20
)

// HTTPVendorClient fetches raw intervals from a vendor gateway speaking the
// gridpulse interval JSON shape. Vendor-specific protocol translation lives
// behind the gateway, not here.
type HTTPVendorClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPVendorClient builds a client for the gateway at baseURL. A
// non-positive timeout falls back to 30 seconds.
func NewHTTPVendorClient(baseURL string, timeout time.Duration) *HTTPVendorClient {
	if timeout <= 0 {
		timeout = defaultVendorTimeout
	}

	return &HTTPVendorClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchIntervals implements VendorClient. Zero start and end request today's
// partial data; the query parameters are omitted in that case.
func (c *HTTPVendorClient) FetchIntervals(ctx context.Context, system *models.System, action Action, startUnix, endUnix int64) ([]*models.RawInterval, error) {
	endpoint := fmt.Sprintf("%s/systems/%d/%s", c.baseURL, system.ID, action)

	if startUnix != 0 || endUnix != 0 {
		query := url.Values{}
		query.Set("start", strconv.FormatInt(startUnix, 10))
		query.Set("end", strconv.FormatInt(endUnix, 10))
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build vendor request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vendor fetch failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vendor returned status %d", resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, maxVendorResponseSize)

	var intervals []*models.RawInterval
	if err := json.NewDecoder(body).Decode(&intervals); err != nil {
		return nil, fmt.Errorf("failed to decode vendor response: %w", err)
	}

	return intervals, nil
}
