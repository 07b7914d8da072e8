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

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gridpulse/gridpulse/pkg/config"
	"github.com/gridpulse/gridpulse/pkg/db"
	"github.com/gridpulse/gridpulse/pkg/logger"
	"github.com/gridpulse/gridpulse/pkg/models"
	"github.com/gridpulse/gridpulse/pkg/rollup"
	"github.com/gridpulse/gridpulse/pkg/series"
	gpsync "github.com/gridpulse/gridpulse/pkg/sync"
	"github.com/gridpulse/gridpulse/pkg/version"
)

const defaultRollupSchedule = time.Hour

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

func run() error {
	configPath := flag.String("config", "/etc/gridpulse/core.json", "Path to core config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootLog, err := logger.NewLogger(&logger.Config{Level: "warn", Output: "stderr"})
	if err != nil {
		return err
	}

	var cfg models.CoreConfig
	if err := config.NewConfig(bootLog).LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return err
	}

	logConfig := logger.DefaultConfig()
	if cfg.Logging != nil {
		logConfig = &logger.Config{
			Level:      cfg.Logging.Level,
			Debug:      cfg.Logging.Debug,
			Output:     cfg.Logging.Output,
			TimeFormat: cfg.Logging.TimeFormat,
		}
	}

	mainLog, err := logger.NewLogger(logConfig)
	if err != nil {
		return err
	}

	store, err := db.New(ctx, &cfg.DB, mainLog)
	if err != nil {
		return err
	}
	defer store.Close()

	clock := wallClock{}

	rollupEngine, err := rollup.NewEngine(store, clock, cfg.Rollup.FloorDate, mainLog)
	if err != nil {
		return err
	}

	seriesManager := series.NewManager(store, clock, time.Duration(cfg.Series.CacheTTL), mainLog)

	var vendor gpsync.VendorClient
	if cfg.Sync.VendorURL != "" {
		vendor = gpsync.NewHTTPVendorClient(cfg.Sync.VendorURL, time.Duration(cfg.Sync.VendorTimeout))
	}

	syncEngine := gpsync.NewEngine(store, vendor, rollupEngine, seriesManager, clock, mainLog)

	mainLog.Info().
		Str("version", version.GetFullVersion()).
		Str("config", *configPath).
		Msg("gridpulsed started")

	if vendor != nil {
		go pollLoop(ctx, syncEngine, store, &cfg.Sync, mainLog)
	} else {
		mainLog.Info().Msg("Poll syncs disabled, no vendor_url configured")
	}

	rollupLoop(ctx, rollupEngine, time.Duration(cfg.Rollup.Schedule), mainLog)

	mainLog.Info().Msg("gridpulsed shutting down")

	return nil
}

// rollupLoop rolls up yesterday for every system once at startup and then on
// the configured schedule, until the context is cancelled.
func rollupLoop(ctx context.Context, engine *rollup.Engine, schedule time.Duration, log logger.Logger) {
	if schedule <= 0 {
		schedule = defaultRollupSchedule
	}

	ticker := time.NewTicker(schedule)
	defer ticker.Stop()

	for {
		if err := engine.AggregateYesterdayAll(ctx); err != nil {
			log.Error().Err(err).Msg("Daily rollup pass failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// pollLoop triggers poll-cause syncs for every non-composite system on the
// configured interval. It stays idle until a vendor client is wired in.
func pollLoop(ctx context.Context, engine *gpsync.Engine, systems db.SystemStore, cfg *models.SyncConfig, log logger.Logger) {
	interval := time.Duration(cfg.PollInterval)
	if interval <= 0 {
		log.Info().Msg("Poll syncs disabled, no poll_interval configured")
		return
	}

	days := cfg.PollDays
	if days < 1 {
		days = 1
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		list, err := systems.ListSystems(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to list systems for poll sync")
			continue
		}

		for _, system := range list {
			if system.IsComposite() {
				continue
			}

			pollSystem(ctx, engine, system, days, log)
		}
	}
}

func pollSystem(ctx context.Context, engine *gpsync.Engine, system *models.System, days int, log logger.Logger) {
	start := time.Now().UTC().AddDate(0, 0, -days)
	startDate := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	events, err := engine.Run(ctx, gpsync.Options{
		System:    system,
		Action:    gpsync.ActionBoth,
		StartDate: startDate,
		Days:      days,
		Cause:     models.CausePoll,
	})
	if err != nil {
		log.Error().Err(err).
			Int("system_id", system.ID).
			Msg("Failed to start poll sync")

		return
	}

	// Drain so the session can finish; the audit row is the record.
	for range events {
	}
}
