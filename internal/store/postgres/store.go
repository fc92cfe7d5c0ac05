// Package postgres keeps checkpoints, leases, network configuration and labels in PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// DB is the subset of pgxpool.Pool the store uses.
	DB interface {
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	}

	// Row is a single result row.
	Row interface {
		Scan(dest ...any) error
	}

	Metrics interface {
		Observe(operation string, network string, err error, started time.Time)
	}
)

const foreignKeyViolation = "23503"

// Store implements the relational store on top of a connection pool.
type Store struct {
	db      DB
	metrics Metrics
}

// New wraps db.
func New(db DB, metrics Metrics) (*Store, error) {
	if db == nil {
		return nil, errors.New("postgres store db is required")
	}
	if metrics == nil {
		return nil, errors.New("postgres store metrics is required")
	}
	return &Store{db: db, metrics: metrics}, nil
}

// Open connects a pool to dsn and verifies it.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
