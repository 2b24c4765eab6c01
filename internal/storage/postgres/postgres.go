// Package postgres stores project datasets in PostgreSQL.
//
// The projects table keeps input rows only: one row per project per
// dataset, with NULL for a missing cell. Schema changes live in
// internal/storage/migrations/postgres and are applied by the migrations
// package before a store is used.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the pgx pool shared by the project store and the migration
// runner.
type Pool struct {
	*pgxpool.Pool
}

// NewPool connects to the DSN from source.postgres_dsn and pings it, so a
// bad DSN fails before any dataset is read or written.
func NewPool(ctx context.Context, dsn string) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// Close releases every connection.
func (p *Pool) Close() {
	p.Pool.Close()
}

// pgUniqueViolation is raised when a (dataset, position) key already
// exists.
const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err means the dataset row was
// already stored. The store maps it to storage.ErrDuplicateKey.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
