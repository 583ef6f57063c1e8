// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stride/internal/domain"

	"github.com/lib/pq"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Ensure interfaces are met.
var _ domain.AccountRepository = (*DB)(nil)
var _ domain.ActivityRepository = (*DB)(nil)
var _ domain.LikeRepository = (*DB)(nil)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Ping reports whether the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT accounts_email_key UNIQUE (email)
		);`,
		`CREATE TABLE IF NOT EXISTS activities (
			id BIGSERIAL PRIMARY KEY,
			account_id BIGINT NOT NULL,
			kind TEXT NOT NULL CHECK (kind IN ('run','walk')),
			distance_miles NUMERIC(8,2) NOT NULL CHECK (distance_miles > 0),
			duration_hours INTEGER NOT NULL DEFAULT 0 CHECK (duration_hours >= 0),
			duration_minutes INTEGER NOT NULL DEFAULT 0 CHECK (duration_minutes BETWEEN 0 AND 59),
			duration_seconds INTEGER NOT NULL DEFAULT 0 CHECK (duration_seconds BETWEEN 0 AND 59),
			activity_date TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT activities_account_id_fkey FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
		);`,
		"CREATE INDEX IF NOT EXISTS idx_activities_account_date ON activities(account_id, activity_date DESC);",
		"CREATE INDEX IF NOT EXISTS idx_activities_created_at ON activities(created_at DESC);",
		`CREATE TABLE IF NOT EXISTS activity_likes (
			id BIGSERIAL PRIMARY KEY,
			activity_id BIGINT NOT NULL,
			account_id BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT activity_likes_activity_id_fkey FOREIGN KEY (activity_id) REFERENCES activities(id) ON DELETE CASCADE,
			CONSTRAINT activity_likes_account_id_fkey FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
		);`,
		"CREATE UNIQUE INDEX IF NOT EXISTS activity_likes_activity_account_key ON activity_likes(activity_id, account_id);",
		"CREATE INDEX IF NOT EXISTS idx_activity_likes_account_id ON activity_likes(account_id);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// translate maps constraint violations onto domain errors.
func translate(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case "23505": // unique_violation
		switch pqErr.Constraint {
		case "accounts_email_key":
			return domain.ErrDuplicateEmail
		case "activity_likes_activity_account_key":
			return domain.ErrDuplicateLike
		}
	case "23503": // foreign_key_violation
		switch pqErr.Constraint {
		case "activities_account_id_fkey", "activity_likes_account_id_fkey":
			return domain.ErrAccountNotFound
		case "activity_likes_activity_id_fkey":
			return domain.ErrActivityNotFound
		}
	case "23514": // check_violation
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pqErr.Constraint)
	case "22003": // numeric_value_out_of_range
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pqErr.Message)
	}
	return err
}
