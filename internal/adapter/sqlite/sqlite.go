// Package sqlite implements the domain repositories on an embedded SQLite
// database through gorm. It backs single-node deployments that run without a
// PostgreSQL server.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"stride/internal/domain"

	sqlitedriver "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DB implements the domain repositories on SQLite.
type DB struct {
	gorm *gorm.DB
}

var _ domain.AccountRepository = (*DB)(nil)
var _ domain.ActivityRepository = (*DB)(nil)
var _ domain.LikeRepository = (*DB)(nil)

// Open opens (creating if needed) the database at path and migrates it. The
// path ":memory:" yields a private in-memory database.
func Open(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	g, err := gorm.Open(sqlitedriver.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := g.DB()
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" a single database and serializes the
	// existence checks done inside write transactions.
	sqlDB.SetMaxOpenConns(1)

	if path != ":memory:" {
		if err := g.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("configure sqlite: %w", err)
		}
	}

	if err := g.AutoMigrate(&accountRow{}, &activityRow{}, &likeRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &DB{gorm: g}, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping reports whether the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// --- AccountRepository ---

// CreateAccount creates a new account.
func (d *DB) CreateAccount(ctx context.Context, email, passwordHash, name string) (*domain.Account, error) {
	row := accountRow{Email: email, PasswordHash: passwordHash, Name: name}
	res := d.gorm.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, email)
	}
	return row.toDomain(), nil
}

// AccountByEmail retrieves an account by email.
func (d *DB) AccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return d.firstAccount(ctx, "email = ?", email)
}

// AccountByID retrieves an account by ID.
func (d *DB) AccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	return d.firstAccount(ctx, "id = ?", id)
}

func (d *DB) firstAccount(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var row accountRow
	err := d.gorm.WithContext(ctx).Where(query, arg).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func exists(tx *gorm.DB, model any, id int64) (bool, error) {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// --- ActivityRepository ---

// CreateActivity stores a new activity for an existing account.
func (d *DB) CreateActivity(ctx context.Context, a domain.Activity) (*domain.Activity, error) {
	row := newActivityRow(a)
	row.ID = 0
	err := d.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &accountRow{}, a.AccountID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: id %d", domain.ErrAccountNotFound, a.AccountID)
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	out := row.toDomain()
	return &out, nil
}

// ActivityByID retrieves an activity by ID.
func (d *DB) ActivityByID(ctx context.Context, id int64) (*domain.Activity, error) {
	var row activityRow
	err := d.gorm.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := row.toDomain()
	return &out, nil
}

// ListActivitiesByAccount lists one account's activities, latest activity date first.
func (d *DB) ListActivitiesByAccount(ctx context.Context, accountID int64) ([]domain.Activity, error) {
	var rows []activityRow
	err := d.gorm.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("activity_date DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Activity, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

const timelineQuery = `
SELECT a.id, a.account_id, a.kind, a.distance_miles,
       a.duration_hours, a.duration_minutes, a.duration_seconds,
       a.activity_date, a.created_at,
       u.name AS account_name,
       COUNT(l.id) AS likes_count,
       COALESCE(MAX(CASE WHEN l.account_id = ? THEN 1 ELSE 0 END), 0) AS user_has_liked
FROM activities a
JOIN accounts u ON u.id = a.account_id
LEFT JOIN activity_likes l ON l.activity_id = a.id
GROUP BY a.id
ORDER BY a.created_at DESC, a.id DESC`

// ListActivitiesWithLikes lists every activity with its author's name and like
// aggregates, newest first.
func (d *DB) ListActivitiesWithLikes(ctx context.Context, viewerID *int64) ([]domain.ActivityWithLikes, error) {
	var viewer any
	if viewerID != nil {
		viewer = *viewerID
	}

	var rows []timelineRow
	if err := d.gorm.WithContext(ctx).Raw(timelineQuery, viewer).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ActivityWithLikes, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ActivityWithLikes{
			Activity:     r.Activity.toDomain(),
			AccountName:  r.AccountName,
			LikesCount:   int(r.LikesCount),
			UserHasLiked: r.UserHasLiked > 0,
		})
	}
	return out, nil
}

// UpdateActivity overwrites the mutable fields of an activity.
func (d *DB) UpdateActivity(ctx context.Context, a domain.Activity) (*domain.Activity, error) {
	row := newActivityRow(a)
	res := d.gorm.WithContext(ctx).Model(&activityRow{}).Where("id = ?", a.ID).Updates(map[string]any{
		"kind":             row.Kind,
		"distance_miles":   row.DistanceMiles,
		"duration_hours":   row.DurationHours,
		"duration_minutes": row.DurationMinutes,
		"duration_seconds": row.DurationSeconds,
		"activity_date":    row.ActivityDate,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return d.ActivityByID(ctx, a.ID)
}

// DeleteActivity removes an owned activity and its likes in one transaction.
func (d *DB) DeleteActivity(ctx context.Context, id, accountID int64) (bool, error) {
	deleted := false
	err := d.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND account_id = ?", id, accountID).Delete(&activityRow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Where("activity_id = ?", id).Delete(&likeRow{}).Error
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// --- LikeRepository ---

// InsertLike records a like. The unique index on (activity_id, account_id)
// decides concurrent attempts.
func (d *DB) InsertLike(ctx context.Context, activityID, accountID int64) (*domain.Like, error) {
	row := likeRow{ActivityID: activityID, AccountID: accountID}
	err := d.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &activityRow{}, activityID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: id %d", domain.ErrActivityNotFound, activityID)
		}
		if ok, err = exists(tx, &accountRow{}, accountID); err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: id %d", domain.ErrAccountNotFound, accountID)
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrDuplicateLike
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := row.toDomain()
	return &out, nil
}

// DeleteLike removes a like and reports whether one existed.
func (d *DB) DeleteLike(ctx context.Context, activityID, accountID int64) (bool, error) {
	res := d.gorm.WithContext(ctx).
		Where("activity_id = ? AND account_id = ?", activityID, accountID).
		Delete(&likeRow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListLikesByActivity lists the likes on an activity, oldest first.
func (d *DB) ListLikesByActivity(ctx context.Context, activityID int64) ([]domain.Like, error) {
	var rows []likeRow
	err := d.gorm.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("created_at").Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Like, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}
