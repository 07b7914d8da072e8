/*
 * Copyright 2025 GridPulse Contributors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package db implements the Postgres persistence layer for points,
// aggregate rows, and sync session audit records.
package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridpulse/gridpulse/pkg/logger"
	"github.com/gridpulse/gridpulse/pkg/models"
)

// Store is the pgx-backed implementation of Service.
type Store struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

// New dials Postgres and returns a ready Store. The schema is migrated on
// connect.
func New(ctx context.Context, cfg *models.DBConfig, log logger.Logger) (*Store, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := &Store{pool: pool, logger: log}

	if err := store.Migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	return store, nil
}

// NewWithPool wraps an existing pool, used by tests and callers that manage
// their own pool lifecycle.
func NewWithPool(pool *pgxpool.Pool, log logger.Logger) *Store {
	return &Store{pool: pool, logger: log}
}

// NewPool builds a pgx pool from config.
func NewPool(ctx context.Context, cfg *models.DBConfig) (*pgxpool.Pool, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	conn := *cfg
	if conn.Port == 0 {
		conn.Port = 5432
	}

	connURL := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", conn.Host, conn.Port),
		Path:   "/" + conn.Database,
	}

	if conn.Username != "" {
		if conn.Password != "" {
			connURL.User = url.UserPassword(conn.Username, conn.Password)
		} else {
			connURL.User = url.User(conn.Username)
		}
	}

	query := connURL.Query()

	sslMode := conn.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	query.Set("sslmode", sslMode)

	if conn.ApplicationName != "" {
		query.Set("application_name", conn.ApplicationName)
	}

	connURL.RawQuery = query.Encode()

	poolConfig, err := pgxpool.ParseConfig(connURL.String())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if conn.MaxConnections > 0 {
		poolConfig.MaxConns = conn.MaxConnections
	}

	if conn.MinConnections > 0 {
		poolConfig.MinConns = conn.MinConnections
	}

	if conn.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(conn.MaxConnLifetime)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	return pool, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	s.pool.Close()
}

// sendBatchTx runs a batch inside one transaction so readers never observe a
// partially applied write set.
func (s *Store) sendBatchTx(ctx context.Context, batch *pgx.Batch, operation string) (err error) {
	if batch == nil || batch.Len() == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s begin: %w", operation, err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	br := tx.SendBatch(ctx, batch)

	for i := 0; i < batch.Len(); i++ {
		if _, execErr := br.Exec(); execErr != nil {
			_ = br.Close()
			return fmt.Errorf("%s batch exec (command %d): %w", operation, i, execErr)
		}
	}

	if err = br.Close(); err != nil {
		return fmt.Errorf("%s batch close: %w", operation, err)
	}

	return tx.Commit(ctx)
}
