package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
)

// ReceiptByID returns one receipt with all its product lines.
func (db *DB) ReceiptByID(ctx context.Context, userID, receiptID int64) (*domain.Receipt, []domain.ReceiptItem, error) {
	var r domain.Receipt
	var added string
	err := db.sql.QueryRowContext(ctx, receiptSelect+` WHERE r.id = ? AND r.user_id = ?`,
		receiptID, userID,
	).Scan(&r.ID, &r.Store, &r.City, &r.Total, &r.Discount, &added)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("receipt by id: %w", err)
	}
	r.AddedAt = parseTimestamp(added)

	rows, err := db.sql.QueryContext(ctx, `
		SELECT p.id, p.receipt_id, p.name, COALESCE(cat.name, ''),
		       p.price, p.quantity, p.unit_price, p.unit
		FROM products p
		LEFT JOIN categories cat ON cat.id = p.category_id
		WHERE p.receipt_id = ?
		ORDER BY p.id`, receiptID)
	if err != nil {
		return nil, nil, fmt.Errorf("receipt items: %w", err)
	}
	defer rows.Close()

	var items []domain.ReceiptItem
	for rows.Next() {
		var it domain.ReceiptItem
		if err := rows.Scan(&it.ID, &it.ReceiptID, &it.Name, &it.Category,
			&it.Price, &it.Quantity, &it.UnitPrice, &it.Unit); err != nil {
			return nil, nil, fmt.Errorf("scan receipt item: %w", err)
		}
		items = append(items, it)
	}
	return &r, items, rows.Err()
}

// ReceiptSearch carries the optional criteria for SearchReceipts.
// Zero values mean the criterion is not applied.
type ReceiptSearch struct {
	Store     string
	City      string
	MinAmount *float64
	MaxAmount *float64
	Start     string
	End       string
	Limit     int
}

// SearchReceipts finds receipts matching all given criteria, newest first.
func (db *DB) SearchReceipts(ctx context.Context, userID int64, s ReceiptSearch) ([]domain.Receipt, error) {
	conds := []string{"r.user_id = ?"}
	args := []any{userID}

	if s.Store != "" {
		conds = append(conds, "c.name LIKE ?")
		args = append(args, like(s.Store))
	}
	if s.City != "" {
		conds = append(conds, "ci.name LIKE ?")
		args = append(args, like(s.City))
	}
	if s.MinAmount != nil {
		conds = append(conds, "r.total >= ?")
		args = append(args, *s.MinAmount)
	}
	if s.MaxAmount != nil {
		conds = append(conds, "r.total <= ?")
		args = append(args, *s.MaxAmount)
	}
	dateFilter(&conds, &args, "r.added_at", s.Start, s.End)

	limit := s.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)

	q := receiptSelect + " WHERE " + strings.Join(conds, " AND ") +
		" ORDER BY r.added_at DESC LIMIT ?"
	return db.scanReceipts(ctx, q, args...)
}

// RecentReceipts returns the newest receipts.
func (db *DB) RecentReceipts(ctx context.Context, userID int64, limit int) ([]domain.Receipt, error) {
	return db.scanReceipts(ctx,
		receiptSelect+" WHERE r.user_id = ? ORDER BY r.added_at DESC LIMIT ?",
		userID, limit)
}
