package postgres

import (
	"context"
	"database/sql"

	"stride/internal/domain"
)

// InsertLike records a like. The unique index on (activity_id, account_id)
// arbitrates concurrent attempts, so a conflicting insert returns no row.
func (d *DB) InsertLike(ctx context.Context, activityID, accountID int64) (*domain.Like, error) {
	var l domain.Like
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO activity_likes (activity_id, account_id) VALUES ($1, $2)
		ON CONFLICT (activity_id, account_id) DO NOTHING
		RETURNING id, activity_id, account_id, created_at;`,
		activityID, accountID,
	).Scan(&l.ID, &l.ActivityID, &l.AccountID, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrDuplicateLike
	}
	if err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

// DeleteLike removes a like and reports whether one existed.
func (d *DB) DeleteLike(ctx context.Context, activityID, accountID int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"DELETE FROM activity_likes WHERE activity_id = $1 AND account_id = $2;",
		activityID, accountID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListLikesByActivity lists the likes on an activity, oldest first.
func (d *DB) ListLikesByActivity(ctx context.Context, activityID int64) ([]domain.Like, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, activity_id, account_id, created_at FROM activity_likes WHERE activity_id = $1 ORDER BY created_at, id;",
		activityID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Like, 0)
	for rows.Next() {
		var l domain.Like
		if err := rows.Scan(&l.ID, &l.ActivityID, &l.AccountID, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
