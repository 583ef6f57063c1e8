package app_test

import (
	"context"
	"errors"
	"testing"

	"stride/internal/app"
	"stride/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func existingActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{
		byIDFn: func(_ context.Context, id int64) (*domain.Activity, error) {
			if id != 10 {
				return nil, nil
			}
			return storedActivity(), nil
		},
	}
}

func TestLikeService_Like_Success(t *testing.T) {
	pub := &recordingPublisher{}
	svc := app.NewLikeService(&mockLikeRepo{}, existingActivityRepo(), &mockAccountRepo{}, pub, nil)

	like, err := svc.Like(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(10), like.ActivityID)
	assert.Equal(t, int64(2), like.AccountID)
	assert.Equal(t, []domain.EventType{domain.EventActivityLiked}, pub.types())
}

func TestLikeService_Like_ActivityNotFound(t *testing.T) {
	svc := app.NewLikeService(&mockLikeRepo{}, existingActivityRepo(), &mockAccountRepo{}, nil, nil)

	_, err := svc.Like(context.Background(), 99, 2)
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestLikeService_Like_AccountNotFound(t *testing.T) {
	accounts := &mockAccountRepo{
		byIDFn: func(context.Context, int64) (*domain.Account, error) { return nil, nil },
	}
	svc := app.NewLikeService(&mockLikeRepo{}, existingActivityRepo(), accounts, nil, nil)

	_, err := svc.Like(context.Background(), 10, 99)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestLikeService_Like_Duplicate(t *testing.T) {
	liked := map[[2]int64]bool{}
	likes := &mockLikeRepo{
		insertFn: func(_ context.Context, activityID, accountID int64) (*domain.Like, error) {
			key := [2]int64{activityID, accountID}
			if liked[key] {
				return nil, domain.ErrDuplicateLike
			}
			liked[key] = true
			return &domain.Like{ID: 1, ActivityID: activityID, AccountID: accountID}, nil
		},
	}
	pub := &recordingPublisher{}
	svc := app.NewLikeService(likes, existingActivityRepo(), &mockAccountRepo{}, pub, nil)

	_, err := svc.Like(context.Background(), 10, 2)
	require.NoError(t, err)
	_, err = svc.Like(context.Background(), 10, 2)
	assert.ErrorIs(t, err, domain.ErrDuplicateLike)
	assert.Len(t, liked, 1)
	assert.Len(t, pub.types(), 1, "a rejected like publishes nothing")
}

func TestLikeService_Unlike(t *testing.T) {
	pub := &recordingPublisher{}
	likes := &mockLikeRepo{
		deleteFn: func(_ context.Context, activityID, accountID int64) (bool, error) {
			return activityID == 10 && accountID == 2, nil
		},
	}
	svc := app.NewLikeService(likes, existingActivityRepo(), &mockAccountRepo{}, pub, nil)

	removed, err := svc.Unlike(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Unlike(context.Background(), 10, 3)
	require.NoError(t, err, "unliking a never-liked pair is not an error")
	assert.False(t, removed)

	assert.Equal(t, []domain.EventType{domain.EventActivityUnliked}, pub.types())
}

func TestLikeService_Unlike_InfrastructureError(t *testing.T) {
	boom := errors.New("connection reset")
	likes := &mockLikeRepo{
		deleteFn: func(context.Context, int64, int64) (bool, error) { return false, boom },
	}
	svc := app.NewLikeService(likes, existingActivityRepo(), &mockAccountRepo{}, nil, nil)

	_, err := svc.Unlike(context.Background(), 10, 2)
	assert.ErrorIs(t, err, boom)
}
