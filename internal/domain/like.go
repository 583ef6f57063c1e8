package domain

import (
	"context"
	"time"
)

// Like is an account's endorsement of one activity.
type Like struct {
	ID         int64     `json:"id"`
	ActivityID int64     `json:"activity_id"`
	AccountID  int64     `json:"account_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// LikeRepository is the port for like persistence.
type LikeRepository interface {
	// InsertLike returns ErrDuplicateLike when the pair already exists.
	InsertLike(ctx context.Context, activityID, accountID int64) (*Like, error)
	// DeleteLike reports whether a row was removed.
	DeleteLike(ctx context.Context, activityID, accountID int64) (bool, error)
	ListLikesByActivity(ctx context.Context, activityID int64) ([]Like, error)
}
