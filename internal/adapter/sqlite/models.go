package sqlite

import (
	"time"

	"stride/internal/domain"
)

type accountRow struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"size:320;not null;uniqueIndex:uniq_accounts_email"`
	PasswordHash string    `gorm:"not null;default:''"`
	Name         string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (accountRow) TableName() string { return "accounts" }

func (r accountRow) toDomain() *domain.Account {
	return &domain.Account{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Name:         r.Name,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

type activityRow struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	AccountID       int64     `gorm:"not null;index:idx_activities_account_date,priority:1"`
	Kind            string    `gorm:"size:8;not null"`
	DistanceMiles   float64   `gorm:"not null"`
	DurationHours   int       `gorm:"not null;default:0"`
	DurationMinutes int       `gorm:"not null;default:0"`
	DurationSeconds int       `gorm:"not null;default:0"`
	ActivityDate    time.Time `gorm:"not null;index:idx_activities_account_date,priority:2"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index"`
}

func (activityRow) TableName() string { return "activities" }

func newActivityRow(a domain.Activity) activityRow {
	return activityRow{
		ID:              a.ID,
		AccountID:       a.AccountID,
		Kind:            string(a.Kind),
		DistanceMiles:   domain.RoundDistance(a.DistanceMiles),
		DurationHours:   a.Hours,
		DurationMinutes: a.Minutes,
		DurationSeconds: a.Seconds,
		ActivityDate:    a.ActivityDate.UTC(),
		CreatedAt:       a.CreatedAt,
	}
}

func (r activityRow) toDomain() domain.Activity {
	return domain.Activity{
		ID:            r.ID,
		AccountID:     r.AccountID,
		Kind:          domain.ActivityKind(r.Kind),
		DistanceMiles: r.DistanceMiles,
		Duration: domain.Duration{
			Hours:   r.DurationHours,
			Minutes: r.DurationMinutes,
			Seconds: r.DurationSeconds,
		},
		ActivityDate: r.ActivityDate.UTC(),
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

type likeRow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ActivityID int64     `gorm:"not null;uniqueIndex:uniq_activity_likes,priority:1"`
	AccountID  int64     `gorm:"not null;uniqueIndex:uniq_activity_likes,priority:2;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (likeRow) TableName() string { return "activity_likes" }

func (r likeRow) toDomain() domain.Like {
	return domain.Like{
		ID:         r.ID,
		ActivityID: r.ActivityID,
		AccountID:  r.AccountID,
		CreatedAt:  r.CreatedAt.UTC(),
	}
}

// timelineRow is the result shape of the timeline aggregation query.
type timelineRow struct {
	Activity     activityRow `gorm:"embedded"`
	AccountName  string
	LikesCount   int64
	UserHasLiked int64
}
