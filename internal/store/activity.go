package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
)

// ActivityEntries returns audit log rows, newest first, optionally filtered
// by action type and date range.
func (db *DB) ActivityEntries(ctx context.Context, userID int64, action, start, end string, limit int) ([]domain.ActivityEntry, error) {
	conds := []string{"user_id = ?"}
	args := []any{userID}
	if action != "" {
		conds = append(conds, "action = ?")
		args = append(args, action)
	}
	dateFilter(&conds, &args, "timestamp", start, end)
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)

	query := `SELECT id, action, user_status, details, timestamp FROM activity_log
		WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY timestamp DESC, id DESC LIMIT ?`

	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var out []domain.ActivityEntry
	for rows.Next() {
		var e domain.ActivityEntry
		var ts string
		if err := rows.Scan(&e.ID, &e.Action, &e.UserStatus, &e.Details, &ts); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		e.Timestamp = parseTimestamp(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

// LogActivity appends one audit row.
func (db *DB) LogActivity(ctx context.Context, userID int64, action, userStatus, details string) error {
	_, err := db.sql.ExecContext(ctx,
		`INSERT INTO activity_log (user_id, action, user_status, details) VALUES (?, ?, ?, ?)`,
		userID, action, userStatus, details)
	if err != nil {
		return fmt.Errorf("log activity: %w", err)
	}
	return nil
}
