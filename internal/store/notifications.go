package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
)

// Notifications returns the user's notifications, newest first.
func (db *DB) Notifications(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, error) {
	conds := []string{"user_id = ?"}
	args := []any{userID}
	if unreadOnly {
		conds = append(conds, "read = 0")
	}
	args = append(args, limit)

	query := `SELECT id, type, message, read, created_at FROM notifications
		WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var created string
		if err := rows.Scan(&n.ID, &n.Type, &n.Message, &n.Read, &created); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.CreatedAt = parseTimestamp(created)
		out = append(out, n)
	}
	return out, rows.Err()
}

// AddNotification inserts a notification, optionally linked to a budget limit.
func (db *DB) AddNotification(ctx context.Context, userID int64, limitID *int64, ntype, message string) (int64, error) {
	res, err := db.sql.ExecContext(ctx,
		`INSERT INTO notifications (user_id, limit_id, type, message) VALUES (?, ?, ?, ?)`,
		userID, limitID, ntype, message)
	if err != nil {
		return 0, fmt.Errorf("add notification: %w", err)
	}
	return res.LastInsertId()
}
