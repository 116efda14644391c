// Package postgres implements the storage interfaces using PostgreSQL.
//
// Ids come from BIGSERIAL sequences, which satisfies the monotonic,
// never-reused id contract the in-memory store documents.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ireporter-ke/ireporter/internal/domain"
	"github.com/ireporter-ke/ireporter/internal/storage"
)

// DB wraps the PostgreSQL connection pool and provides access to repositories.
type DB struct {
	pool *pgxpool.Pool
}

// New creates a new PostgreSQL database connection.
func New(ctx context.Context, connString string) (*DB, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes all connections in the pool.
func (db *DB) Close() {
	db.pool.Close()
}

// Repositories returns all repositories backed by this database.
func (db *DB) Repositories() *storage.Repositories {
	return &storage.Repositories{
		Reports:  NewReportRepository(db.pool),
		Accounts: NewAccountRepository(db.pool),
		Sessions: NewSessionStore(db.pool),
	}
}

// EnsureSchema creates the tables if they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS reports (
			id         BIGSERIAL PRIMARY KEY,
			created_by TEXT        NOT NULL,
			kind       TEXT        NOT NULL,
			location   TEXT        NOT NULL,
			title      TEXT        NOT NULL,
			comment    TEXT        NOT NULL,
			status     TEXT        NOT NULL DEFAULT '',
			images     TEXT[]      NOT NULL DEFAULT '{}',
			videos     TEXT[]      NOT NULL DEFAULT '{}',
			created_on TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS accounts (
			id       BIGSERIAL PRIMARY KEY,
			email    TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS sessions (
			seq        BIGSERIAL PRIMARY KEY,
			account_id BIGINT NOT NULL UNIQUE,
			email      TEXT   NOT NULL
		);`)
	if err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}

// Error code constants for PostgreSQL
const uniqueViolationCode = "23505"

// mapError converts PostgreSQL errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return domain.ErrAlreadyExists
	}

	return err
}
