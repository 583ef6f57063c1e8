package postgres

import (
	"errors"
	"fmt"
	"testing"

	"stride/internal/domain"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"duplicate email", &pq.Error{Code: "23505", Constraint: "accounts_email_key"}, domain.ErrDuplicateEmail},
		{"duplicate like", &pq.Error{Code: "23505", Constraint: "activity_likes_activity_account_key"}, domain.ErrDuplicateLike},
		{"unknown owner", &pq.Error{Code: "23503", Constraint: "activities_account_id_fkey"}, domain.ErrAccountNotFound},
		{"like on missing activity", &pq.Error{Code: "23503", Constraint: "activity_likes_activity_id_fkey"}, domain.ErrActivityNotFound},
		{"like by missing account", &pq.Error{Code: "23503", Constraint: "activity_likes_account_id_fkey"}, domain.ErrAccountNotFound},
		{"check violation", &pq.Error{Code: "23514", Constraint: "activities_distance_miles_check"}, domain.ErrInvalidInput},
		{"out of range", &pq.Error{Code: "22003", Message: "integer out of range"}, domain.ErrInvalidInput},
		{"wrapped", fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "accounts_email_key"}), domain.ErrDuplicateEmail},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, translate(tc.err), tc.want)
		})
	}
}

func TestTranslate_PassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Same(t, plain, translate(plain))

	other := &pq.Error{Code: "23505", Constraint: "some_other_key"}
	assert.Equal(t, error(other), translate(other))
}
