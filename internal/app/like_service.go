package app

import (
	"context"
	"errors"
	"fmt"

	"stride/internal/domain"
	"stride/internal/observability"

	"go.uber.org/zap"
)

// LikeService encapsulates like/unlike use cases.
type LikeService struct {
	likes      domain.LikeRepository
	activities domain.ActivityRepository
	accounts   domain.AccountRepository
	events     domain.EventPublisher
	log        *zap.Logger
}

// NewLikeService creates a LikeService. events may be nil.
func NewLikeService(likes domain.LikeRepository, activities domain.ActivityRepository, accounts domain.AccountRepository, events domain.EventPublisher, log *zap.Logger) *LikeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LikeService{likes: likes, activities: activities, accounts: accounts, events: events, log: log}
}

// Like records that accountID likes activityID. Liking the same activity twice
// fails with domain.ErrDuplicateLike.
func (s *LikeService) Like(ctx context.Context, activityID, accountID int64) (*domain.Like, error) {
	act, err := s.activities.ActivityByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if act == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrActivityNotFound, activityID)
	}

	acct, err := s.accounts.AccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrAccountNotFound, accountID)
	}

	like, err := s.likes.InsertLike(ctx, activityID, accountID)
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicateLike) &&
			!errors.Is(err, domain.ErrActivityNotFound) &&
			!errors.Is(err, domain.ErrAccountNotFound) {
			s.log.Error("insert like", zap.Int64("activity_id", activityID), zap.Error(err))
		}
		return nil, err
	}
	observability.RecordLike("liked")
	publish(ctx, s.events, s.log, domain.EventActivityLiked, activityID, accountID)
	return like, nil
}

// Unlike removes the like of accountID on activityID. It reports false, without
// error, when there was nothing to remove.
func (s *LikeService) Unlike(ctx context.Context, activityID, accountID int64) (bool, error) {
	removed, err := s.likes.DeleteLike(ctx, activityID, accountID)
	if err != nil {
		s.log.Error("delete like", zap.Int64("activity_id", activityID), zap.Error(err))
		return false, err
	}
	if removed {
		observability.RecordLike("unliked")
		publish(ctx, s.events, s.log, domain.EventActivityUnliked, activityID, accountID)
	}
	return removed, nil
}

// LikesForActivity lists the likes recorded on an activity.
func (s *LikeService) LikesForActivity(ctx context.Context, activityID int64) ([]domain.Like, error) {
	return s.likes.ListLikesByActivity(ctx, activityID)
}
