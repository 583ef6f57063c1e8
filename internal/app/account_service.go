// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stride/internal/domain"
	"stride/internal/observability"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past 72 bytes and newer versions reject it.
const maxPasswordBytes = 72

// AccountService handles registration and credential checks.
type AccountService struct {
	accounts domain.AccountRepository
	log      *zap.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(accounts domain.AccountRepository, log *zap.Logger) *AccountService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountService{accounts: accounts, log: log}
}

// Register validates the input, hashes the password and stores a new account.
func (s *AccountService) Register(ctx context.Context, email, password, name string) (*domain.Account, error) {
	email = domain.NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if err := domain.ValidateRegistration(email, password, name); err != nil {
		return nil, err
	}
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acct, err := s.accounts.CreateAccount(ctx, email, string(hash), name)
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicateEmail) {
			s.log.Error("create account", zap.Error(err))
		}
		return nil, err
	}
	observability.RecordAccountCreated()
	return acct, nil
}

// Login returns the account matching the credentials. A nil account with a
// nil error means the email is unknown or the password does not match.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	acct, err := s.accounts.AccountByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		s.log.Error("lookup account", zap.Error(err))
		return nil, err
	}
	// SSO-provisioned accounts have no password.
	if acct == nil || acct.PasswordHash == "" {
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}
	return acct, nil
}

// LoginWithEmail resolves the account for an identity already verified by an
// external provider, creating it on first sight.
func (s *AccountService) LoginWithEmail(ctx context.Context, email, name string) (*domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	acct, err := s.accounts.AccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if acct != nil {
		return acct, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	acct, err = s.accounts.CreateAccount(ctx, email, "", name)
	if errors.Is(err, domain.ErrDuplicateEmail) {
		// Lost a race with a concurrent first login.
		return s.accounts.AccountByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}
	observability.RecordAccountCreated()
	return acct, nil
}
