package domain

import "errors"

var (
	// ErrInvalidInput wraps every validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAccountNotFound indicates that the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrActivityNotFound indicates that the referenced activity does not exist.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrDuplicateEmail indicates that an account with the email already exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateLike indicates that the account has already liked the activity.
	ErrDuplicateLike = errors.New("account has already liked this activity")
	// ErrNotOwner indicates that the acting account does not own the activity.
	ErrNotOwner = errors.New("activity does not belong to account")
)
