package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gridpulse/gridpulse/pkg/models"
)

const selectSystemsSQL = `
SELECT id, name, vendor_type, vendor_account, offset_minutes, metadata, created_at
FROM systems
ORDER BY id`

const selectSystemSQL = `
SELECT id, name, vendor_type, vendor_account, offset_minutes, metadata, created_at
FROM systems
WHERE id = $1`

// ListSystems returns every system, composites included.
func (s *Store) ListSystems(ctx context.Context) ([]*models.System, error) {
	rows, err := s.pool.Query(ctx, selectSystemsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query systems: %w", err)
	}
	defer rows.Close()

	var systems []*models.System

	for rows.Next() {
		system, err := scanSystem(rows)
		if err != nil {
			return nil, err
		}

		systems = append(systems, system)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating systems: %w", err)
	}

	return systems, nil
}

// GetSystem returns one system by id.
func (s *Store) GetSystem(ctx context.Context, id int) (*models.System, error) {
	rows, err := s.pool.Query(ctx, selectSystemSQL, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query system %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading system %d: %w", id, err)
		}

		return nil, ErrSystemNotFound
	}

	return scanSystem(rows)
}

func scanSystem(row pgx.Row) (*models.System, error) {
	var system models.System

	err := row.Scan(
		&system.ID,
		&system.Name,
		&system.VendorType,
		&system.VendorAccount,
		&system.OffsetMinutes,
		&system.Metadata,
		&system.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSystemNotFound
		}

		return nil, fmt.Errorf("failed to scan system: %w", err)
	}

	return &system, nil
}
