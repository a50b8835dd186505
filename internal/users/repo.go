// Package users keeps one row per workspace owner.
package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the repo uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repo struct {
	db DB
}

func NewRepo(db DB) *Repo {
	return &Repo{db: db}
}

type UpsertUser struct {
	UID         string
	Email       string
	DisplayName string
}

const schema = `
create table if not exists users (
  id bigserial primary key,
  uid text not null unique,
  email text,
  display_name text,
  created_at timestamptz not null default now(),
  updated_at timestamptz not null default now()
);`

func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("users schema: %w", err)
	}
	return nil
}

// EnsureUser upserts the owner and returns its id. Blank fields never
// overwrite stored values.
func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (string, error) {
	if u.UID == "" {
		return "", fmt.Errorf("uid required")
	}

	const q = `
insert into users (uid, email, display_name, updated_at)
values ($1, nullif($2,''), nullif($3,''), now())
on conflict (uid) do update
set
  email = coalesce(excluded.email, users.email),
  display_name = coalesce(excluded.display_name, users.display_name),
  updated_at = now()
returning id::text;
`
	var id string
	if err := r.db.QueryRow(ctx, q, u.UID, u.Email, u.DisplayName).Scan(&id); err != nil {
		return "", fmt.Errorf("ensure user %s: %w", u.UID, err)
	}
	return id, nil
}
