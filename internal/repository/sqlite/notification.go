package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tecnitrama/backend/pkg/models"
)

func (r *SQLiteRepo) CreateNotification(ctx context.Context, userID int64, projectID *int64, content string) (int64, error) {
	return r.CreateNotificationForUsers(ctx, []int64{userID}, projectID, content)
}

// CreateNotificationForUsers inserts one notification row and fans it out to
// every user id in one transaction. Duplicate (notification, user) pairs are
// skipped, so re-running a fan-out is idempotent on the junction table.
func (r *SQLiteRepo) CreateNotificationForUsers(ctx context.Context, userIDs []int64, projectID *int64, content string) (int64, error) {
	if len(userIDs) == 0 {
		return 0, fmt.Errorf("no recipients")
	}

	var id int64
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = insertNotificationTx(ctx, tx, userIDs, projectID, content)
		return err
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func insertNotificationTx(ctx context.Context, tx *sql.Tx, userIDs []int64, projectID *int64, content string) (int64, error) {
	res, err := tx.ExecContext(ctx, `INSERT INTO notifications (content, is_read, created_at) VALUES (?, 0, ?)`, content, now())
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, userID := range userIDs {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO user_notifications (user_id, project_id, notification_id, is_read) VALUES (?, ?, ?, 0)`, userID, projectID, id); err != nil {
			return 0, fmt.Errorf("insert user notification: %w", err)
		}
	}

	return id, nil
}

func (r *SQLiteRepo) ListNotificationsByUser(ctx context.Context, userID int64) ([]models.UserNotification, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT un.id, un.user_id, un.project_id, un.notification_id, un.is_read, n.content, n.created_at
		 FROM user_notifications un JOIN notifications n ON n.id = un.notification_id
		 WHERE un.user_id = ? ORDER BY n.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.UserNotification
	for rows.Next() {
		var un models.UserNotification
		var projectID sql.NullInt64
		if err := rows.Scan(&un.ID, &un.UserID, &projectID, &un.NotificationID, &un.IsRead, &un.Content, &un.CreatedAt); err != nil {
			return nil, err
		}
		if projectID.Valid {
			un.ProjectID = &projectID.Int64
		}
		out = append(out, un)
	}

	return out, rows.Err()
}

// MarkNotificationRead is a one-way mark-read by filter; an unknown
// (notification, user) pair affects zero rows and is not an error.
func (r *SQLiteRepo) MarkNotificationRead(ctx context.Context, notificationID, userID int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE user_notifications SET is_read = 1 WHERE notification_id = ? AND user_id = ?`, notificationID, userID)
	return err
}
