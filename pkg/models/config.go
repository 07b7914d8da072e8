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
	"fmt"
	"time"
)

// Duration wraps time.Duration so config files can carry "30s"-style strings.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// DBConfig holds the Postgres connection settings.
type DBConfig struct {
	Host            string   `json:"host"`
	Port            int      `json:"port"`
	Database        string   `json:"database"`
	Username        string   `json:"username"`
	Password        string   `json:"password"`
	SSLMode         string   `json:"ssl_mode"`
	ApplicationName string   `json:"application_name,omitempty"`
	MaxConnections  int32    `json:"max_connections,omitempty"`
	MinConnections  int32    `json:"min_connections,omitempty"`
	MaxConnLifetime Duration `json:"max_conn_lifetime,omitempty"`
}

// RollupConfig holds the daily rollup engine settings.
type RollupConfig struct {
	// FloorDate is the earliest date any range operation may touch,
	// formatted 2006-01-02.
	FloorDate string `json:"floor_date"`
	// Schedule is how often the cron loop looks for yesterday rollup work.
	Schedule Duration `json:"schedule,omitempty"`
}

// SeriesConfig holds the series manager cache settings.
type SeriesConfig struct {
	CacheTTL Duration `json:"cache_ttl,omitempty"`
}

// SyncConfig holds the sync engine's polling settings. Poll syncs stay
// disabled until both a vendor URL and a poll interval are configured.
type SyncConfig struct {
	VendorURL     string   `json:"vendor_url,omitempty"`
	VendorTimeout Duration `json:"vendor_timeout,omitempty"`
	PollInterval  Duration `json:"poll_interval,omitempty"`
	PollDays      int      `json:"poll_days,omitempty"`
}

// CoreConfig is the gridpulsed service configuration.
type CoreConfig struct {
	DB      DBConfig       `json:"db"`
	Logging *LoggingConfig `json:"logging,omitempty"`
	Rollup  RollupConfig   `json:"rollup"`
	Series  SeriesConfig   `json:"series"`
	Sync    SyncConfig     `json:"sync"`
}

// Validate checks the parts of the config without workable defaults.
func (c *CoreConfig) Validate() error {
	if c.DB.Host == "" || c.DB.Database == "" {
		return ErrConfigDBRequired
	}

	if c.Rollup.FloorDate == "" {
		return ErrConfigFloorDateRequired
	}

	if _, err := time.Parse("2006-01-02", c.Rollup.FloorDate); err != nil {
		return fmt.Errorf("%w: %q", ErrConfigFloorDateInvalid, c.Rollup.FloorDate)
	}

	return nil
}

// LoggingConfig mirrors logger.Config without importing it, keeping models
// dependency-free.
type LoggingConfig struct {
	Level      string `json:"level"`
	Debug      bool   `json:"debug"`
	Output     string `json:"output"`
	TimeFormat string `json:"time_format"`
}
