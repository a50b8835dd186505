package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
)

func setupPostgresStore(t *testing.T) (*PostgresSnapshotStore, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewPostgresSnapshotStore(db), mock, db
}

func TestPostgresSnapshotStore_Save(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	savedAt := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO project_snapshots`)).
		WithArgs("owner-1", SnapshotVersion, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"saved_at"}).AddRow(savedAt))

	s, err := store.Save(context.Background(), "owner-1", sampleProjects())
	require.NoError(t, err)
	assert.Equal(t, savedAt, s.SavedAt)
	assert.Equal(t, sampleProjects(), s.Projects)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotStore_Load(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	t.Run("returns stored snapshot", func(t *testing.T) {
		payload, err := json.Marshal(Snapshot{
			Version:  SnapshotVersion,
			OwnerID:  "owner-1",
			SavedAt:  time.Now().UTC(),
			Projects: sampleProjects(),
		})
		require.NoError(t, err)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload`)).
			WithArgs("owner-1").
			WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

		s, err := store.Load(context.Background(), "owner-1")
		require.NoError(t, err)
		assert.Equal(t, sampleProjects(), s.Projects)
	})

	t.Run("maps no rows to not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload`)).
			WithArgs("owner-2").
			WillReturnError(sql.ErrNoRows)

		_, err := store.Load(context.Background(), "owner-2")
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("wraps driver errors", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT payload`)).
			WithArgs("owner-3").
			WillReturnError(sql.ErrConnDone)

		_, err := store.Load(context.Background(), "owner-3")
		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.NotErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotStore_EnsureSchema(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS project_snapshots`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
