// Package store persists users, appointments, notes and contact messages
// in Postgres via pgx.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("store: not found")
	ErrSlotTaken  = errors.New("store: slot already booked")
	ErrEmailTaken = errors.New("store: email already registered")
)

// db is the slice of the pool the store uses; pgxmock satisfies it in tests.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Store struct {
	db db
}

func New(pool *pgxpool.Pool) *Store {
	if pool == nil {
		panic("store: pgx pool required")
	}
	return &Store{db: pool}
}

func newWithDB(d db) *Store {
	return &Store{db: d}
}

func isUniqueViolation(err error) bool {
	var pg *pgconn.PgError
	return errors.As(err, &pg) && pg.Code == "23505"
}
