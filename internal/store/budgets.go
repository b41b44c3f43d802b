package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// BudgetRow is a budget limit together with the current calendar month's
// spending in its category.
type BudgetRow struct {
	LimitID  int64   `json:"limitId"`
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
	Spent    float64 `json:"spent"`
}

// BudgetRows returns every budget limit for the user with spending summed
// over the current calendar month.
func (db *DB) BudgetRows(ctx context.Context, userID int64) ([]BudgetRow, error) {
	rows, err := db.sql.QueryContext(ctx, `
		SELECT bl.id, cat.name, bl.amount,
		       COALESCE((
		           SELECT SUM(p.price)
		           FROM products p
		           JOIN receipts r ON r.id = p.receipt_id
		           WHERE r.user_id = bl.user_id
		             AND p.category_id = bl.category_id
		             AND strftime('%Y-%m', r.added_at) = strftime('%Y-%m', 'now')
		       ), 0)
		FROM budget_limits bl
		JOIN categories cat ON cat.id = bl.category_id
		WHERE bl.user_id = ?
		ORDER BY cat.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("query budget rows: %w", err)
	}
	defer rows.Close()

	var out []BudgetRow
	for rows.Next() {
		var b BudgetRow
		if err := rows.Scan(&b.LimitID, &b.Category, &b.Limit, &b.Spent); err != nil {
			return nil, fmt.Errorf("scan budget row: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CategoryID resolves a category name to its ID using substring matching.
// When create is true a missing category is inserted with the exact name.
func (db *DB) CategoryID(ctx context.Context, name string, create bool) (int64, error) {
	var id int64
	err := db.sql.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE name LIKE ? ORDER BY length(name) LIMIT 1`,
		like(name),
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		if !create {
			return 0, ErrNotFound
		}
		res, err := db.sql.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, name)
		if err != nil {
			return 0, fmt.Errorf("create category: %w", err)
		}
		return res.LastInsertId()
	}
	if err != nil {
		return 0, fmt.Errorf("category id: %w", err)
	}
	return id, nil
}

// BudgetLimitAmount returns the limit set for a category, or ErrNotFound.
func (db *DB) BudgetLimitAmount(ctx context.Context, userID, categoryID int64) (float64, error) {
	var amount float64
	err := db.sql.QueryRowContext(ctx,
		`SELECT amount FROM budget_limits WHERE user_id = ? AND category_id = ?`,
		userID, categoryID,
	).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("budget limit amount: %w", err)
	}
	return amount, nil
}

// AddBudgetLimit inserts a new limit for the category.
func (db *DB) AddBudgetLimit(ctx context.Context, userID, categoryID int64, amount float64) (int64, error) {
	res, err := db.sql.ExecContext(ctx,
		`INSERT INTO budget_limits (user_id, category_id, amount) VALUES (?, ?, ?)`,
		userID, categoryID, amount,
	)
	if err != nil {
		return 0, fmt.Errorf("add budget limit: %w", err)
	}
	return res.LastInsertId()
}

// UpdateBudgetLimit changes an existing limit. Returns affected row count.
func (db *DB) UpdateBudgetLimit(ctx context.Context, userID, categoryID int64, amount float64) (int64, error) {
	res, err := db.sql.ExecContext(ctx,
		`UPDATE budget_limits SET amount = ? WHERE user_id = ? AND category_id = ?`,
		amount, userID, categoryID,
	)
	if err != nil {
		return 0, fmt.Errorf("update budget limit: %w", err)
	}
	return res.RowsAffected()
}

// DeleteBudgetLimit removes a limit. Returns affected row count.
func (db *DB) DeleteBudgetLimit(ctx context.Context, userID, categoryID int64) (int64, error) {
	res, err := db.sql.ExecContext(ctx,
		`DELETE FROM budget_limits WHERE user_id = ? AND category_id = ?`,
		userID, categoryID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete budget limit: %w", err)
	}
	return res.RowsAffected()
}
