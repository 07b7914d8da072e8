package db

import (
	"context"
	"fmt"

	"github.com/gridpulse/gridpulse/pkg/models"
)

const insertPointSQL = `
INSERT INTO points (
	system_id, idx, origin_id, origin_sub_id, origin_key,
	metric_type, metric_unit, transform,
	default_name, display_name, type, subtype, extension,
	active, created_at, updated_at
) VALUES (
	$1,
	(SELECT COALESCE(MAX(idx), 0) + 1 FROM points WHERE system_id = $1),
	$2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
	TRUE, now(), now()
)
ON CONFLICT (system_id, origin_key) DO UPDATE SET updated_at = points.updated_at
RETURNING id, system_id, idx, origin_id, origin_sub_id,
	metric_type, metric_unit, transform,
	default_name, display_name, type, subtype, extension,
	active, created_at, updated_at`

const updatePointSQL = `
UPDATE points SET
	metric_type  = $3,
	metric_unit  = $4,
	transform    = $5,
	display_name = $6,
	type         = $7,
	subtype      = $8,
	extension    = $9,
	updated_at   = now()
WHERE system_id = $1 AND id = $2`

const deactivatePointSQL = `
UPDATE points SET active = FALSE, updated_at = now()
WHERE system_id = $1 AND id = $2`

const selectActivePointsSQL = `
SELECT id, system_id, idx, origin_id, origin_sub_id,
	metric_type, metric_unit, transform,
	default_name, display_name, type, subtype, extension,
	active, created_at, updated_at
FROM points
WHERE system_id = $1 AND active
ORDER BY idx`

const selectPointsByIDsSQL = `
SELECT id, system_id, idx, origin_id, origin_sub_id,
	metric_type, metric_unit, transform,
	default_name, display_name, type, subtype, extension,
	active, created_at, updated_at
FROM points
WHERE system_id = $1 AND active AND id = ANY($2)
ORDER BY idx`

// EnsurePoint inserts a point on first ingest of a new origin, or returns
// the existing live point for that origin key. The conflict target is
// (system_id, origin_key) alone: one origin maps to exactly one metric type
// for its lifetime, so metric type is not part of the key.
func (s *Store) EnsurePoint(ctx context.Context, point *models.Point) (*models.Point, error) {
	if point.OriginID == "" {
		return nil, ErrPointOriginRequired
	}

	row := s.pool.QueryRow(ctx, insertPointSQL,
		point.SystemID,
		point.OriginID,
		point.OriginSubID,
		point.OriginKey(),
		point.MetricType,
		point.MetricUnit,
		string(point.Transform),
		point.DefaultName,
		point.DisplayName,
		point.Type,
		point.Subtype,
		point.Extension,
	)

	stored, err := scanPoint(row)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure point %q: %w", point.OriginKey(), err)
	}

	return stored, nil
}

// UpdatePoint applies display/classification edits to an existing point.
func (s *Store) UpdatePoint(ctx context.Context, point *models.Point) error {
	_, err := s.pool.Exec(ctx, updatePointSQL,
		point.SystemID,
		point.ID,
		point.MetricType,
		point.MetricUnit,
		string(point.Transform),
		point.DisplayName,
		point.Type,
		point.Subtype,
		point.Extension,
	)
	if err != nil {
		return fmt.Errorf("failed to update point %d: %w", point.ID, err)
	}

	return nil
}

// DeactivatePoint excludes a point from series resolution and future
// aggregation. Points are never physically deleted.
func (s *Store) DeactivatePoint(ctx context.Context, systemID, pointID int) error {
	_, err := s.pool.Exec(ctx, deactivatePointSQL, systemID, pointID)
	if err != nil {
		return fmt.Errorf("failed to deactivate point %d: %w", pointID, err)
	}

	return nil
}

// ListActivePoints returns a system's live points in index order.
func (s *Store) ListActivePoints(ctx context.Context, systemID int) ([]*models.Point, error) {
	rows, err := s.pool.Query(ctx, selectActivePointsSQL, systemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query points for system %d: %w", systemID, err)
	}
	defer rows.Close()

	return collectPoints(rows)
}

// GetPointsByIDs resolves a batch of point ids within one system. IDs that
// do not resolve to a live point are absent from the result, never an error.
func (s *Store) GetPointsByIDs(ctx context.Context, systemID int, pointIDs []int) ([]*models.Point, error) {
	if len(pointIDs) == 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx, selectPointsByIDsSQL, systemID, pointIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query points by ids for system %d: %w", systemID, err)
	}
	defer rows.Close()

	return collectPoints(rows)
}

type pointRow interface {
	Scan(dest ...any) error
}

func scanPoint(row pointRow) (*models.Point, error) {
	var (
		point     models.Point
		transform string
	)

	err := row.Scan(
		&point.ID,
		&point.SystemID,
		&point.Index,
		&point.OriginID,
		&point.OriginSubID,
		&point.MetricType,
		&point.MetricUnit,
		&transform,
		&point.DefaultName,
		&point.DisplayName,
		&point.Type,
		&point.Subtype,
		&point.Extension,
		&point.Active,
		&point.CreatedAt,
		&point.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	point.Transform = models.Transform(transform)

	return &point, nil
}

type pointRows interface {
	pointRow
	Next() bool
	Err() error
}

func collectPoints(rows pointRows) ([]*models.Point, error) {
	var points []*models.Point

	for rows.Next() {
		point, err := scanPoint(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}

		points = append(points, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating points: %w", err)
	}

	return points, nil
}
