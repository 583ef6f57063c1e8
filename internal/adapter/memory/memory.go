// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"stride/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu         sync.Mutex
	accounts   []*domain.Account
	activities []domain.Activity
	likes      []domain.Like

	accountIDCounter  int64
	activityIDCounter int64
	likeIDCounter     int64

	now func() time.Time
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{now: func() time.Time { return time.Now().UTC() }}
}

// Ensure interfaces are met.
var _ domain.AccountRepository = (*DB)(nil)
var _ domain.ActivityRepository = (*DB)(nil)
var _ domain.LikeRepository = (*DB)(nil)

// --- AccountRepository ---

// CreateAccount creates a new account.
func (db *DB) CreateAccount(ctx context.Context, email, passwordHash, name string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.Email == email {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, email)
		}
	}

	db.accountIDCounter++
	a := &domain.Account{
		ID:           db.accountIDCounter,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    db.now(),
	}
	db.accounts = append(db.accounts, a)
	ret := *a
	return &ret, nil
}

// AccountByEmail retrieves an account by email.
func (db *DB) AccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.Email == email {
			ret := *a
			return &ret, nil
		}
	}
	return nil, nil
}

// AccountByID retrieves an account by ID.
func (db *DB) AccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.accountLocked(id), nil
}

func (db *DB) accountLocked(id int64) *domain.Account {
	for _, a := range db.accounts {
		if a.ID == id {
			ret := *a
			return &ret
		}
	}
	return nil
}

// --- ActivityRepository ---

// CreateActivity stores a new activity.
func (db *DB) CreateActivity(ctx context.Context, a domain.Activity) (*domain.Activity, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.accountLocked(a.AccountID) == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrAccountNotFound, a.AccountID)
	}

	db.activityIDCounter++
	a.ID = db.activityIDCounter
	a.DistanceMiles = domain.RoundDistance(a.DistanceMiles)
	a.ActivityDate = a.ActivityDate.UTC()
	a.CreatedAt = db.now()
	db.activities = append(db.activities, a)
	return &a, nil
}

// ActivityByID retrieves an activity by ID.
func (db *DB) ActivityByID(ctx context.Context, id int64) (*domain.Activity, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if i := db.activityIndexLocked(id); i >= 0 {
		ret := db.activities[i]
		return &ret, nil
	}
	return nil, nil
}

func (db *DB) activityIndexLocked(id int64) int {
	for i, a := range db.activities {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// ListActivitiesByAccount lists one account's activities, latest activity date first.
func (db *DB) ListActivitiesByAccount(ctx context.Context, accountID int64) ([]domain.Activity, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Activity, 0)
	for _, a := range db.activities {
		if a.AccountID == accountID {
			result = append(result, a)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].ActivityDate.Equal(result[j].ActivityDate) {
			return result[i].ActivityDate.After(result[j].ActivityDate)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// ListActivitiesWithLikes lists every activity with its author's name and like
// counts, newest first.
func (db *DB) ListActivitiesWithLikes(ctx context.Context, viewerID *int64) ([]domain.ActivityWithLikes, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.ActivityWithLikes, 0, len(db.activities))
	for _, a := range db.activities {
		row := domain.ActivityWithLikes{Activity: a}
		if acct := db.accountLocked(a.AccountID); acct != nil {
			row.AccountName = acct.Name
		}
		for _, l := range db.likes {
			if l.ActivityID != a.ID {
				continue
			}
			row.LikesCount++
			if viewerID != nil && l.AccountID == *viewerID {
				row.UserHasLiked = true
			}
		}
		result = append(result, row)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// UpdateActivity overwrites the mutable fields of an activity.
func (db *DB) UpdateActivity(ctx context.Context, a domain.Activity) (*domain.Activity, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.activityIndexLocked(a.ID)
	if i < 0 {
		return nil, nil
	}
	cur := &db.activities[i]
	cur.Kind = a.Kind
	cur.DistanceMiles = domain.RoundDistance(a.DistanceMiles)
	cur.Duration = a.Duration
	cur.ActivityDate = a.ActivityDate.UTC()
	ret := *cur
	return &ret, nil
}

// DeleteActivity removes an owned activity and its likes.
func (db *DB) DeleteActivity(ctx context.Context, id, accountID int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.activityIndexLocked(id)
	if i < 0 || db.activities[i].AccountID != accountID {
		return false, nil
	}
	db.activities = append(db.activities[:i], db.activities[i+1:]...)

	kept := db.likes[:0]
	for _, l := range db.likes {
		if l.ActivityID != id {
			kept = append(kept, l)
		}
	}
	db.likes = kept
	return true, nil
}

// --- LikeRepository ---

// InsertLike records a like. The existence checks mirror the foreign keys of
// the SQL stores.
func (db *DB) InsertLike(ctx context.Context, activityID, accountID int64) (*domain.Like, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.activityIndexLocked(activityID) < 0 {
		return nil, fmt.Errorf("%w: id %d", domain.ErrActivityNotFound, activityID)
	}
	if db.accountLocked(accountID) == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrAccountNotFound, accountID)
	}
	for _, l := range db.likes {
		if l.ActivityID == activityID && l.AccountID == accountID {
			return nil, domain.ErrDuplicateLike
		}
	}

	db.likeIDCounter++
	l := domain.Like{
		ID:         db.likeIDCounter,
		ActivityID: activityID,
		AccountID:  accountID,
		CreatedAt:  db.now(),
	}
	db.likes = append(db.likes, l)
	return &l, nil
}

// DeleteLike removes a like.
func (db *DB) DeleteLike(ctx context.Context, activityID, accountID int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, l := range db.likes {
		if l.ActivityID == activityID && l.AccountID == accountID {
			db.likes = append(db.likes[:i], db.likes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListLikesByActivity lists the likes on an activity, oldest first.
func (db *DB) ListLikesByActivity(ctx context.Context, activityID int64) ([]domain.Like, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Like, 0)
	for _, l := range db.likes {
		if l.ActivityID == activityID {
			result = append(result, l)
		}
	}
	return result, nil
}
