package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
)

// GroupTotal is one row of a grouped spending rollup.
type GroupTotal struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// ProductPurchase is a single product line with its receipt context.
type ProductPurchase struct {
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Store     string    `json:"store"`
	Price     float64   `json:"price"`
	Quantity  float64   `json:"quantity"`
	UnitPrice float64   `json:"unitPrice,omitempty"`
	Date      time.Time `json:"date"`
}

// StoreVisit is a per-store visit rollup.
type StoreVisit struct {
	Store   string  `json:"store"`
	Visits  int     `json:"visits"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Days    int     `json:"shoppingDays"`
	First   string  `json:"firstVisit"`
	Last    string  `json:"lastVisit"`
}

// WeekdayTotal is a per-weekday rollup. Weekday follows strftime('%w'):
// 0 is Sunday.
type WeekdayTotal struct {
	Weekday int     `json:"weekday"`
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
}

// HourTotal is a per-hour-of-day rollup.
type HourTotal struct {
	Hour  int     `json:"hour"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// MonthTotal is a per-calendar-month rollup.
type MonthTotal struct {
	Month string  `json:"month"` // YYYY-MM
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// PeriodStats aggregates receipts over a date range.
type PeriodStats struct {
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
}

// parseTimestamp reads the datetime format SQLite stores.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.DateTime, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

const receiptSelect = `
	SELECT r.id, COALESCE(c.name, ''), COALESCE(ci.name, ''),
	       r.total, r.discount, r.added_at
	FROM receipts r
	LEFT JOIN companies c ON c.id = r.company_id
	LEFT JOIN cities ci ON ci.id = r.city_id`

func (db *DB) scanReceipts(ctx context.Context, query string, args ...any) ([]domain.Receipt, error) {
	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}
	defer rows.Close()

	var out []domain.Receipt
	for rows.Next() {
		var r domain.Receipt
		var added string
		if err := rows.Scan(&r.ID, &r.Store, &r.City, &r.Total, &r.Discount, &added); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		r.AddedAt = parseTimestamp(added)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReceiptsBetween returns receipts in the inclusive date range, newest first.
func (db *DB) ReceiptsBetween(ctx context.Context, userID int64, start, end string) ([]domain.Receipt, error) {
	conds := []string{"r.user_id = ?"}
	args := []any{userID}
	dateFilter(&conds, &args, "r.added_at", start, end)

	query := receiptSelect + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY r.added_at DESC"
	return db.scanReceipts(ctx, query, args...)
}

// ReceiptsByStore returns receipts whose store name contains the term.
func (db *DB) ReceiptsByStore(ctx context.Context, userID int64, store, start, end string) ([]domain.Receipt, error) {
	conds := []string{"r.user_id = ?", "c.name LIKE ?"}
	args := []any{userID, like(store)}
	dateFilter(&conds, &args, "r.added_at", start, end)

	query := receiptSelect + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY r.added_at DESC"
	return db.scanReceipts(ctx, query, args...)
}

const purchaseSelect = `
	SELECT p.name, COALESCE(cat.name, ''), COALESCE(c.name, ''),
	       p.price, p.quantity, p.unit_price, r.added_at
	FROM products p
	JOIN receipts r ON r.id = p.receipt_id
	LEFT JOIN categories cat ON cat.id = p.category_id
	LEFT JOIN companies c ON c.id = r.company_id`

func (db *DB) scanPurchases(ctx context.Context, query string, args ...any) ([]ProductPurchase, error) {
	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query purchases: %w", err)
	}
	defer rows.Close()

	var out []ProductPurchase
	for rows.Next() {
		var p ProductPurchase
		var added string
		if err := rows.Scan(&p.Name, &p.Category, &p.Store, &p.Price, &p.Quantity, &p.UnitPrice, &added); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		p.Date = parseTimestamp(added)
		out = append(out, p)
	}
	return out, rows.Err()
}

// ProductsByCategory returns product lines whose category contains the term.
func (db *DB) ProductsByCategory(ctx context.Context, userID int64, category, start, end string) ([]ProductPurchase, error) {
	conds := []string{"r.user_id = ?", "cat.name LIKE ?"}
	args := []any{userID, like(category)}
	dateFilter(&conds, &args, "r.added_at", start, end)

	query := purchaseSelect + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY r.added_at DESC"
	return db.scanPurchases(ctx, query, args...)
}

// ProductPurchases returns past purchases of products matching the name,
// newest first.
func (db *DB) ProductPurchases(ctx context.Context, userID int64, name string, limit int) ([]ProductPurchase, error) {
	query := purchaseSelect + " WHERE r.user_id = ? AND p.name LIKE ? ORDER BY r.added_at DESC LIMIT ?"
	return db.scanPurchases(ctx, query, userID, like(name), limit)
}

// MostExpensive returns the priciest product lines in the range.
func (db *DB) MostExpensive(ctx context.Context, userID int64, start, end string, limit int) ([]ProductPurchase, error) {
	conds := []string{"r.user_id = ?"}
	args := []any{userID}
	dateFilter(&conds, &args, "r.added_at", start, end)
	args = append(args, limit)

	query := purchaseSelect + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY p.price DESC LIMIT ?"
	return db.scanPurchases(ctx, query, args...)
}

// SpendingTotals groups receipt spending by the given dimension.
// groupBy is one of: day, week, month, category, store.
func (db *DB) SpendingTotals(ctx context.Context, userID int64, start, end, groupBy string) ([]GroupTotal, error) {
	var query string
	conds := []string{"r.user_id = ?"}
	args := []any{userID}
	dateFilter(&conds, &args, "r.added_at", start, end)
	where := strings.Join(conds, " AND ")

	switch groupBy {
	case "day":
		query = `SELECT strftime('%Y-%m-%d', r.added_at), COALESCE(SUM(r.total), 0), COUNT(*)
			FROM receipts r WHERE ` + where + ` GROUP BY 1 ORDER BY 1`
	case "week":
		query = `SELECT strftime('%Y-W%W', r.added_at), COALESCE(SUM(r.total), 0), COUNT(*)
			FROM receipts r WHERE ` + where + ` GROUP BY 1 ORDER BY 1`
	case "month":
		query = `SELECT strftime('%Y-%m', r.added_at), COALESCE(SUM(r.total), 0), COUNT(*)
			FROM receipts r WHERE ` + where + ` GROUP BY 1 ORDER BY 1`
	case "store":
		query = `SELECT COALESCE(c.name, 'Nieznany'), COALESCE(SUM(r.total), 0), COUNT(*)
			FROM receipts r LEFT JOIN companies c ON c.id = r.company_id
			WHERE ` + where + ` GROUP BY 1 ORDER BY 2 DESC`
	case "category":
		query = `SELECT COALESCE(cat.name, 'Inne'), COALESCE(SUM(p.price), 0), COUNT(*)
			FROM products p
			JOIN receipts r ON r.id = p.receipt_id
			LEFT JOIN categories cat ON cat.id = p.category_id
			WHERE ` + where + ` GROUP BY 1 ORDER BY 2 DESC`
	default:
		return nil, fmt.Errorf("unsupported grouping %q", groupBy)
	}

	return db.scanGroupTotals(ctx, query, args...)
}

func (db *DB) scanGroupTotals(ctx context.Context, query string, args ...any) ([]GroupTotal, error) {
	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	var out []GroupTotal
	for rows.Next() {
		var g GroupTotal
		if err := rows.Scan(&g.Key, &g.Total, &g.Count); err != nil {
			return nil, fmt.Errorf("scan total: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// CategoryTotals groups product spending by category.
func (db *DB) CategoryTotals(ctx context.Context, userID int64, start, end string) ([]GroupTotal, error) {
	return db.SpendingTotals(ctx, userID, start, end, "category")
}

// StoreVisits counts receipts and spending per store.
func (db *DB) StoreVisits(ctx context.Context, userID int64, start, end, orderBy string, limit int) ([]StoreVisit, error) {
	conds := []string{"r.user_id = ?"}
	args := []any{userID}
	dateFilter(&conds, &args, "r.added_at", start, end)

	order := "COUNT(*) DESC"
	if orderBy == "total" {
		order = "COALESCE(SUM(r.total), 0) DESC"
	}
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)

	query := `SELECT COALESCE(c.name, 'Nieznany'), COUNT(*), COALESCE(SUM(r.total), 0),
			COALESCE(AVG(r.total), 0),
			COUNT(DISTINCT date(r.added_at)),
			MIN(r.added_at), MAX(r.added_at)
		FROM receipts r LEFT JOIN companies c ON c.id = r.company_id
		WHERE ` + strings.Join(conds, " AND ") + `
		GROUP BY 1 ORDER BY ` + order + ` LIMIT ?`

	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query store visits: %w", err)
	}
	defer rows.Close()

	var out []StoreVisit
	for rows.Next() {
		var v StoreVisit
		if err := rows.Scan(&v.Store, &v.Visits, &v.Total, &v.Average, &v.Days, &v.First, &v.Last); err != nil {
			return nil, fmt.Errorf("scan store visit: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// WeekdayTotals counts receipts and spending per weekday (0 = Sunday).
func (db *DB) WeekdayTotals(ctx context.Context, userID int64, start, end string) ([]WeekdayTotal, error) {
	conds := []string{"user_id = ?"}
	args := []any{userID}
	dateFilter(&conds, &args, "added_at", start, end)

	query := `SELECT CAST(strftime('%w', added_at) AS INTEGER), COUNT(*), COALESCE(SUM(total), 0)
		FROM receipts WHERE ` + strings.Join(conds, " AND ") + ` GROUP BY 1 ORDER BY 1`

	rows, err := db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query weekday totals: %w", err)
	}
	defer rows.Close()

	var out []WeekdayTotal
	for rows.Next() {
		var w WeekdayTotal
		if err := rows.Scan(&w.Weekday, &w.Count, &w.Total); err != nil {
			return nil, fmt.Errorf("scan weekday total: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// HourTotals counts receipts and spending per hour of day.
func (db *DB) HourTotals(ctx context.Context, userID int64, start, end string) ([]HourTotal, error) {
	conds := []string{"user_id = ?"}
	args := []any{userID}
	dateFilter(&conds, &args, "added_at", start, end)

	rows, err := db.sql.QueryContext(ctx,
		`SELECT CAST(strftime('%H', added_at) AS INTEGER), COUNT(*), COALESCE(SUM(total), 0)
		 FROM receipts WHERE `+strings.Join(conds, " AND ")+` GROUP BY 1 ORDER BY 1`, args...)
	if err != nil {
		return nil, fmt.Errorf("query hour totals: %w", err)
	}
	defer rows.Close()

	var out []HourTotal
	for rows.Next() {
		var h HourTotal
		if err := rows.Scan(&h.Hour, &h.Count, &h.Total); err != nil {
			return nil, fmt.Errorf("scan hour total: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// MonthlyTotals sums receipts per calendar month over the trailing window,
// oldest month first.
func (db *DB) MonthlyTotals(ctx context.Context, userID int64, months int) ([]MonthTotal, error) {
	modifier := fmt.Sprintf("-%d months", months)
	rows, err := db.sql.QueryContext(ctx,
		`SELECT strftime('%Y-%m', added_at), COALESCE(SUM(total), 0), COUNT(*)
		 FROM receipts
		 WHERE user_id = ? AND date(added_at) >= date('now', ?)
		 GROUP BY 1 ORDER BY 1`, userID, modifier)
	if err != nil {
		return nil, fmt.Errorf("query monthly totals: %w", err)
	}
	defer rows.Close()

	var out []MonthTotal
	for rows.Next() {
		var m MonthTotal
		if err := rows.Scan(&m.Month, &m.Total, &m.Count); err != nil {
			return nil, fmt.Errorf("scan monthly total: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// PeriodStats aggregates receipts over the inclusive date range.
// Missing data yields zeros, never NULL scan errors.
func (db *DB) PeriodStats(ctx context.Context, userID int64, start, end string) (PeriodStats, error) {
	conds := []string{"user_id = ?"}
	args := []any{userID}
	dateFilter(&conds, &args, "added_at", start, end)

	query := `SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(AVG(total), 0),
		COALESCE(MAX(total), 0), COALESCE(MIN(total), 0)
		FROM receipts WHERE ` + strings.Join(conds, " AND ")

	var s PeriodStats
	if err := db.sql.QueryRowContext(ctx, query, args...).Scan(
		&s.Count, &s.Total, &s.Average, &s.Max, &s.Min,
	); err != nil {
		return PeriodStats{}, fmt.Errorf("query period stats: %w", err)
	}
	return s, nil
}

// ReceiptStatistics is the all-time receipt rollup for one user.
type ReceiptStatistics struct {
	Receipts     int     `json:"total_receipts"`
	ShoppingDays int     `json:"shopping_days"`
	Total        float64 `json:"total_spent"`
	Average      float64 `json:"avg_receipt_value"`
	Min          float64 `json:"min_receipt_value"`
	Max          float64 `json:"max_receipt_value"`
	Stores       int     `json:"stores_count"`
	FirstReceipt string  `json:"first_receipt_date"`
	LastReceipt  string  `json:"last_receipt_date"`
}

// AllTimeStatistics aggregates every receipt the user has.
func (db *DB) AllTimeStatistics(ctx context.Context, userID int64) (ReceiptStatistics, error) {
	var s ReceiptStatistics
	err := db.sql.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(DISTINCT date(added_at)),
		       COALESCE(SUM(total), 0),
		       COALESCE(AVG(total), 0),
		       COALESCE(MIN(total), 0),
		       COALESCE(MAX(total), 0),
		       COUNT(DISTINCT company_id),
		       COALESCE(MIN(added_at), ''),
		       COALESCE(MAX(added_at), '')
		FROM receipts WHERE user_id = ?`, userID,
	).Scan(&s.Receipts, &s.ShoppingDays, &s.Total, &s.Average,
		&s.Min, &s.Max, &s.Stores, &s.FirstReceipt, &s.LastReceipt)
	if err != nil {
		return ReceiptStatistics{}, fmt.Errorf("query receipt statistics: %w", err)
	}
	return s, nil
}
