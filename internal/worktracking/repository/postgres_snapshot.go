package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS project_snapshots (
    owner_id   TEXT PRIMARY KEY,
    version    INTEGER NOT NULL,
    payload    JSONB NOT NULL,
    saved_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// PostgresSnapshotStore persists snapshots as one JSONB row per owner.
type PostgresSnapshotStore struct {
	db *sql.DB
}

// NewPostgresSnapshotStore creates a store on an open database/sql handle
// (lib/pq driver).
func NewPostgresSnapshotStore(db *sql.DB) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{db: db}
}

func (r *PostgresSnapshotStore) Name() string { return "postgres" }

// EnsureSchema creates the snapshot table if it does not exist.
func (r *PostgresSnapshotStore) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("failed to create project_snapshots: %w", err)
	}
	return nil
}

// Save upserts the owner's snapshot.
func (r *PostgresSnapshotStore) Save(ctx context.Context, ownerID string, projects []domain.Project) (*Snapshot, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	s := newSnapshot(ownerID, projects)
	payload, err := encodeSnapshot(s)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO project_snapshots (owner_id, version, payload, saved_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (owner_id) DO UPDATE
SET version = EXCLUDED.version, payload = EXCLUDED.payload, saved_at = EXCLUDED.saved_at
RETURNING saved_at;
`
	if err := r.db.QueryRowContext(ctx, q, ownerID, s.Version, payload, s.SavedAt).Scan(&s.SavedAt); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return s, nil
}

// Load returns the owner's latest snapshot.
func (r *PostgresSnapshotStore) Load(ctx context.Context, ownerID string) (*Snapshot, error) {
	const q = `
SELECT payload
FROM project_snapshots
WHERE owner_id = $1;
`
	var payload []byte
	err := r.db.QueryRowContext(ctx, q, ownerID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return decodeSnapshot(payload)
}
