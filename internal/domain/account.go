// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// Account represents a registered user of the tracker.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccountRepository defines the port for account persistence operations.
type AccountRepository interface {
	// CreateAccount returns ErrDuplicateEmail when the email is taken.
	CreateAccount(ctx context.Context, email, passwordHash, name string) (*Account, error)
	// AccountByEmail returns nil, nil when no account matches.
	AccountByEmail(ctx context.Context, email string) (*Account, error)
	// AccountByID returns nil, nil when no account matches.
	AccountByID(ctx context.Context, id int64) (*Account, error)
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegistration checks the registration fields. The email is expected
// to be normalized already.
func ValidateRegistration(email, password, name string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: email must be a valid address", ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return nil
}
