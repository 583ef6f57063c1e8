package postgres

import (
	"context"
	"database/sql"

	"stride/internal/domain"
)

const accountColumns = "id, email, password_hash, name, created_at"

func scanAccount(row *sql.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AccountByEmail retrieves an account by email.
func (d *DB) AccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return scanAccount(d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE email = $1",
		email,
	))
}

// AccountByID retrieves an account by ID.
func (d *DB) AccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	return scanAccount(d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id = $1",
		id,
	))
}

// CreateAccount creates a new account.
func (d *DB) CreateAccount(ctx context.Context, email, passwordHash, name string) (*domain.Account, error) {
	var a domain.Account
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO accounts (email, password_hash, name) VALUES ($1, $2, $3) RETURNING "+accountColumns,
		email, passwordHash, name,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}
