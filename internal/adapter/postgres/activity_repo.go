package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"stride/internal/domain"
)

const activityColumns = "id, account_id, kind, distance_miles, duration_hours, duration_minutes, duration_seconds, activity_date, created_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanActivity(s scanner, a *domain.Activity, extra ...any) error {
	dest := []any{
		&a.ID, &a.AccountID, &a.Kind, &a.DistanceMiles,
		&a.Hours, &a.Minutes, &a.Seconds,
		&a.ActivityDate, &a.CreatedAt,
	}
	return s.Scan(append(dest, extra...)...)
}

// CreateActivity inserts a new activity and returns the stored row.
func (d *DB) CreateActivity(ctx context.Context, a domain.Activity) (*domain.Activity, error) {
	var out domain.Activity
	err := scanActivity(d.sql.QueryRowContext(ctx,
		`INSERT INTO activities (account_id, kind, distance_miles, duration_hours, duration_minutes, duration_seconds, activity_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING `+activityColumns,
		a.AccountID, string(a.Kind), domain.RoundDistance(a.DistanceMiles),
		a.Hours, a.Minutes, a.Seconds, a.ActivityDate.UTC(),
	), &out)
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// ActivityByID retrieves an activity by ID.
func (d *DB) ActivityByID(ctx context.Context, id int64) (*domain.Activity, error) {
	var a domain.Activity
	err := scanActivity(d.sql.QueryRowContext(ctx,
		"SELECT "+activityColumns+" FROM activities WHERE id = $1", id,
	), &a)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListActivitiesByAccount returns one account's activities, latest activity date first.
func (d *DB) ListActivitiesByAccount(ctx context.Context, accountID int64) ([]domain.Activity, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+activityColumns+" FROM activities WHERE account_id = $1 ORDER BY activity_date DESC, id DESC;",
		accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Activity, 0)
	for rows.Next() {
		var a domain.Activity
		if err := scanActivity(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListActivitiesWithLikes returns every activity with its author's name and
// like aggregates, newest first. A NULL viewer matches no like rows.
func (d *DB) ListActivitiesWithLikes(ctx context.Context, viewerID *int64) ([]domain.ActivityWithLikes, error) {
	var viewer sql.NullInt64
	if viewerID != nil {
		viewer = sql.NullInt64{Int64: *viewerID, Valid: true}
	}

	rows, err := d.sql.QueryContext(ctx, `
		SELECT a.id, a.account_id, a.kind, a.distance_miles,
		       a.duration_hours, a.duration_minutes, a.duration_seconds,
		       a.activity_date, a.created_at,
		       u.name,
		       COUNT(l.id),
		       COALESCE(BOOL_OR(l.account_id = $1), false)
		FROM activities a
		JOIN accounts u ON u.id = a.account_id
		LEFT JOIN activity_likes l ON l.activity_id = a.id
		GROUP BY a.id, u.name
		ORDER BY a.created_at DESC, a.id DESC;`,
		viewer,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.ActivityWithLikes, 0)
	for rows.Next() {
		var r domain.ActivityWithLikes
		if err := scanActivity(rows, &r.Activity, &r.AccountName, &r.LikesCount, &r.UserHasLiked); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpdateActivity overwrites the mutable columns of an activity.
func (d *DB) UpdateActivity(ctx context.Context, a domain.Activity) (*domain.Activity, error) {
	var out domain.Activity
	err := scanActivity(d.sql.QueryRowContext(ctx,
		`UPDATE activities
		SET kind = $2, distance_miles = $3, duration_hours = $4, duration_minutes = $5, duration_seconds = $6, activity_date = $7
		WHERE id = $1 RETURNING `+activityColumns,
		a.ID, string(a.Kind), domain.RoundDistance(a.DistanceMiles),
		a.Hours, a.Minutes, a.Seconds, a.ActivityDate.UTC(),
	), &out)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// DeleteActivity removes an owned activity together with its likes in one
// transaction.
func (d *DB) DeleteActivity(ctx context.Context, id, accountID int64) (bool, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback() //nolint:errcheck

	var owner int64
	err = tx.QueryRowContext(ctx, "SELECT account_id FROM activities WHERE id = $1 FOR UPDATE;", id).Scan(&owner)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if owner != accountID {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM activity_likes WHERE activity_id = $1;", id); err != nil {
		return false, fmt.Errorf("delete likes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM activities WHERE id = $1;", id); err != nil {
		return false, fmt.Errorf("delete activity: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
