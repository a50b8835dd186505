package users

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	id  string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.id
	return nil
}

type fakeDB struct {
	sql  string
	args []any
	row  fakeRow
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.sql = sql
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.sql = sql
	f.args = args
	return f.row
}

func TestEnsureUser(t *testing.T) {
	db := &fakeDB{row: fakeRow{id: "7"}}
	repo := NewRepo(db)

	id, err := repo.EnsureUser(context.Background(), UpsertUser{UID: "owner-1", Email: "o@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "7", id)
	assert.Contains(t, db.sql, "on conflict (uid)")
	assert.Equal(t, []any{"owner-1", "o@example.com", ""}, db.args)
}

func TestEnsureUser_RequiresUID(t *testing.T) {
	_, err := NewRepo(&fakeDB{}).EnsureUser(context.Background(), UpsertUser{})
	assert.Error(t, err)
}

func TestEnsureUser_WrapsScanError(t *testing.T) {
	_, err := NewRepo(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}}).EnsureUser(context.Background(), UpsertUser{UID: "x"})
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
}

func TestEnsureSchema(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, NewRepo(db).EnsureSchema(context.Background()))
	assert.Contains(t, db.sql, "create table if not exists users")
}
