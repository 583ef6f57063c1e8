package app_test

import (
	"context"
	"sync"

	"stride/internal/domain"
)

// ---------------------------------------------------------------------------
// Mock repositories (function-fields pattern)
// ---------------------------------------------------------------------------

type mockAccountRepo struct {
	createFn  func(ctx context.Context, email, passwordHash, name string) (*domain.Account, error)
	byEmailFn func(ctx context.Context, email string) (*domain.Account, error)
	byIDFn    func(ctx context.Context, id int64) (*domain.Account, error)
}

func (m *mockAccountRepo) CreateAccount(ctx context.Context, email, passwordHash, name string) (*domain.Account, error) {
	if m.createFn != nil {
		return m.createFn(ctx, email, passwordHash, name)
	}
	return &domain.Account{ID: 1, Email: email, PasswordHash: passwordHash, Name: name}, nil
}

func (m *mockAccountRepo) AccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.byEmailFn != nil {
		return m.byEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockAccountRepo) AccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return &domain.Account{ID: id, Email: "runner@example.com", Name: "Runner"}, nil
}

type mockActivityRepo struct {
	createFn   func(ctx context.Context, a domain.Activity) (*domain.Activity, error)
	byIDFn     func(ctx context.Context, id int64) (*domain.Activity, error)
	byAcctFn   func(ctx context.Context, accountID int64) ([]domain.Activity, error)
	withLikeFn func(ctx context.Context, viewerID *int64) ([]domain.ActivityWithLikes, error)
	updateFn   func(ctx context.Context, a domain.Activity) (*domain.Activity, error)
	deleteFn   func(ctx context.Context, id, accountID int64) (bool, error)
}

func (m *mockActivityRepo) CreateActivity(ctx context.Context, a domain.Activity) (*domain.Activity, error) {
	if m.createFn != nil {
		return m.createFn(ctx, a)
	}
	a.ID = 1
	return &a, nil
}

func (m *mockActivityRepo) ActivityByID(ctx context.Context, id int64) (*domain.Activity, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockActivityRepo) ListActivitiesByAccount(ctx context.Context, accountID int64) ([]domain.Activity, error) {
	if m.byAcctFn != nil {
		return m.byAcctFn(ctx, accountID)
	}
	return []domain.Activity{}, nil
}

func (m *mockActivityRepo) ListActivitiesWithLikes(ctx context.Context, viewerID *int64) ([]domain.ActivityWithLikes, error) {
	if m.withLikeFn != nil {
		return m.withLikeFn(ctx, viewerID)
	}
	return []domain.ActivityWithLikes{}, nil
}

func (m *mockActivityRepo) UpdateActivity(ctx context.Context, a domain.Activity) (*domain.Activity, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, a)
	}
	return &a, nil
}

func (m *mockActivityRepo) DeleteActivity(ctx context.Context, id, accountID int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, accountID)
	}
	return true, nil
}

type mockLikeRepo struct {
	insertFn func(ctx context.Context, activityID, accountID int64) (*domain.Like, error)
	deleteFn func(ctx context.Context, activityID, accountID int64) (bool, error)
	listFn   func(ctx context.Context, activityID int64) ([]domain.Like, error)
}

func (m *mockLikeRepo) InsertLike(ctx context.Context, activityID, accountID int64) (*domain.Like, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, activityID, accountID)
	}
	return &domain.Like{ID: 1, ActivityID: activityID, AccountID: accountID}, nil
}

func (m *mockLikeRepo) DeleteLike(ctx context.Context, activityID, accountID int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, activityID, accountID)
	}
	return false, nil
}

func (m *mockLikeRepo) ListLikesByActivity(ctx context.Context, activityID int64) ([]domain.Like, error) {
	if m.listFn != nil {
		return m.listFn(ctx, activityID)
	}
	return []domain.Like{}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
