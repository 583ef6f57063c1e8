package app

import (
	"context"
	"fmt"
	"time"

	"stride/internal/domain"
	"stride/internal/observability"

	"go.uber.org/zap"
)

// CreateActivityInput carries the fields of a new activity.
type CreateActivityInput struct {
	AccountID     int64
	Kind          domain.ActivityKind
	DistanceMiles float64
	Duration      domain.Duration
	ActivityDate  time.Time
}

// UpdateActivityInput identifies the activity and acting account for a
// partial update.
type UpdateActivityInput struct {
	ID        int64
	AccountID int64
	Patch     domain.ActivityPatch
}

// ActivityService encapsulates activity CRUD use cases.
type ActivityService struct {
	activities domain.ActivityRepository
	accounts   domain.AccountRepository
	events     domain.EventPublisher
	log        *zap.Logger
}

// NewActivityService creates an ActivityService. events may be nil.
func NewActivityService(activities domain.ActivityRepository, accounts domain.AccountRepository, events domain.EventPublisher, log *zap.Logger) *ActivityService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActivityService{activities: activities, accounts: accounts, events: events, log: log}
}

// Create validates and stores a new activity for an existing account.
func (s *ActivityService) Create(ctx context.Context, in CreateActivityInput) (*domain.Activity, error) {
	a := domain.Activity{
		AccountID:     in.AccountID,
		Kind:          in.Kind,
		DistanceMiles: domain.RoundDistance(in.DistanceMiles),
		Duration:      in.Duration,
		ActivityDate:  in.ActivityDate.UTC(),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	owner, err := s.accounts.AccountByID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrAccountNotFound, in.AccountID)
	}

	created, err := s.activities.CreateActivity(ctx, a)
	if err != nil {
		s.log.Error("create activity", zap.Int64("account_id", in.AccountID), zap.Error(err))
		return nil, err
	}
	observability.RecordActivity("created")
	publish(ctx, s.events, s.log, domain.EventActivityCreated, created.ID, created.AccountID)
	return created, nil
}

// Update applies a partial update to an activity owned by in.AccountID. The
// merged record must satisfy every activity invariant.
func (s *ActivityService) Update(ctx context.Context, in UpdateActivityInput) (*domain.Activity, error) {
	existing, err := s.activities.ActivityByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrActivityNotFound, in.ID)
	}
	if existing.AccountID != in.AccountID {
		return nil, domain.ErrNotOwner
	}
	if in.Patch.Empty() {
		return existing, nil
	}

	merged := in.Patch.Apply(*existing)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.activities.UpdateActivity(ctx, merged)
	if err != nil {
		s.log.Error("update activity", zap.Int64("activity_id", in.ID), zap.Error(err))
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrActivityNotFound, in.ID)
	}
	observability.RecordActivity("updated")
	publish(ctx, s.events, s.log, domain.EventActivityUpdated, updated.ID, updated.AccountID)
	return updated, nil
}

// Delete removes an activity owned by accountID together with its likes.
func (s *ActivityService) Delete(ctx context.Context, id, accountID int64) error {
	deleted, err := s.activities.DeleteActivity(ctx, id, accountID)
	if err != nil {
		s.log.Error("delete activity", zap.Int64("activity_id", id), zap.Error(err))
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: id %d for account %d", domain.ErrActivityNotFound, id, accountID)
	}
	observability.RecordActivity("deleted")
	publish(ctx, s.events, s.log, domain.EventActivityDeleted, id, accountID)
	return nil
}
