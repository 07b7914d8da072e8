package db

import (
	"context"
	"fmt"
)

// migrations are applied in order on startup. Statements are idempotent so
// repeated startups are safe.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS systems (
		id             SERIAL PRIMARY KEY,
		name           TEXT NOT NULL,
		vendor_type    TEXT NOT NULL DEFAULT '',
		vendor_account TEXT NOT NULL DEFAULT '',
		offset_minutes INT NOT NULL DEFAULT 0,
		metadata       JSONB,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS points (
		id            SERIAL PRIMARY KEY,
		system_id     INT NOT NULL REFERENCES systems(id),
		idx           INT NOT NULL,
		origin_id     TEXT NOT NULL,
		origin_sub_id TEXT NOT NULL DEFAULT '',
		origin_key    TEXT NOT NULL,
		metric_type   TEXT NOT NULL,
		metric_unit   TEXT NOT NULL DEFAULT '',
		transform     TEXT NOT NULL DEFAULT '',
		default_name  TEXT NOT NULL DEFAULT '',
		display_name  TEXT NOT NULL DEFAULT '',
		type          TEXT NOT NULL DEFAULT '',
		subtype       TEXT NOT NULL DEFAULT '',
		extension     TEXT NOT NULL DEFAULT '',
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (system_id, idx)
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS points_origin_key
		ON points (system_id, origin_key)`,

	`CREATE TABLE IF NOT EXISTS five_minute_aggregates (
		system_id    INT NOT NULL,
		point_id     INT NOT NULL REFERENCES points(id),
		interval_end BIGINT NOT NULL,
		avg          DOUBLE PRECISION,
		min          DOUBLE PRECISION,
		max          DOUBLE PRECISION,
		last         DOUBLE PRECISION,
		delta        DOUBLE PRECISION,
		sample_count INT NOT NULL DEFAULT 0,
		error_count  INT NOT NULL DEFAULT 0,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (system_id, point_id, interval_end)
	)`,

	`CREATE INDEX IF NOT EXISTS five_minute_aggregates_system_end
		ON five_minute_aggregates (system_id, interval_end)`,

	`CREATE TABLE IF NOT EXISTS daily_aggregates (
		system_id    INT NOT NULL,
		point_id     INT NOT NULL REFERENCES points(id),
		day          DATE NOT NULL,
		avg          DOUBLE PRECISION,
		min          DOUBLE PRECISION,
		max          DOUBLE PRECISION,
		last         DOUBLE PRECISION,
		delta        DOUBLE PRECISION,
		sample_count INT NOT NULL DEFAULT 0,
		error_count  INT NOT NULL DEFAULT 0,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (system_id, point_id, day)
	)`,

	`CREATE TABLE IF NOT EXISTS sync_sessions (
		id          TEXT PRIMARY KEY,
		system_id   INT NOT NULL REFERENCES systems(id),
		label       TEXT NOT NULL,
		cause       TEXT NOT NULL,
		started     TIMESTAMPTZ NOT NULL,
		duration_ms BIGINT NOT NULL DEFAULT 0,
		successful  BOOLEAN NOT NULL DEFAULT FALSE,
		error       TEXT NOT NULL DEFAULT '',
		num_rows    INT NOT NULL DEFAULT 0,
		detail      JSONB
	)`,

	`CREATE INDEX IF NOT EXISTS sync_sessions_system_started
		ON sync_sessions (system_id, started DESC)`,
}

// Migrate applies the schema.
func (s *Store) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}

	s.logger.Debug().Int("statements", len(migrations)).Msg("Schema migrations applied")

	return nil
}
