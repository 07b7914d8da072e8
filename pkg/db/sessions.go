package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gridpulse/gridpulse/pkg/models"
)

const insertSessionSQL = `
INSERT INTO sync_sessions (id, system_id, label, cause, started)
VALUES ($1, $2, $3, $4, $5)`

const finalizeSessionSQL = `
UPDATE sync_sessions SET
	duration_ms = $2,
	successful  = $3,
	error       = $4,
	num_rows    = $5,
	detail      = $6
WHERE id = $1`

const selectSessionSQL = `
SELECT id, system_id, label, cause, started,
	duration_ms, successful, error, num_rows, detail
FROM sync_sessions
WHERE id = $1`

// CreateSession persists the audit row at the moment a sync starts, before
// any vendor call, so a crash mid-sync still leaves a traceable record.
func (s *Store) CreateSession(ctx context.Context, session *models.SyncSession) error {
	if session.ID == "" {
		return ErrSessionIDRequired
	}

	_, err := s.pool.Exec(ctx, insertSessionSQL,
		session.ID,
		session.SystemID,
		session.Label,
		session.Cause,
		session.Started.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create sync session %s: %w", session.ID, err)
	}

	return nil
}

// FinalizeSession applies the single terminal update with the sync outcome.
func (s *Store) FinalizeSession(ctx context.Context, session *models.SyncSession) error {
	if session.ID == "" {
		return ErrSessionIDRequired
	}

	tag, err := s.pool.Exec(ctx, finalizeSessionSQL,
		session.ID,
		session.DurationMS,
		session.Successful,
		session.Error,
		session.NumRows,
		session.Detail,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize sync session %s: %w", session.ID, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// GetSession returns one audit row by id.
func (s *Store) GetSession(ctx context.Context, id string) (*models.SyncSession, error) {
	var session models.SyncSession

	err := s.pool.QueryRow(ctx, selectSessionSQL, id).Scan(
		&session.ID,
		&session.SystemID,
		&session.Label,
		&session.Cause,
		&session.Started,
		&session.DurationMS,
		&session.Successful,
		&session.Error,
		&session.NumRows,
		&session.Detail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}

		return nil, fmt.Errorf("failed to query sync session %s: %w", id, err)
	}

	return &session, nil
}
