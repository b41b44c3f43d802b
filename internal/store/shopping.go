package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
)

// ProductRef points at a concrete purchased product row.
type ProductRef struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// ListItemDetail is a shopping list item with the current price data of its
// linked product, when one is linked.
type ListItemDetail struct {
	domain.ShoppingListItem
	Price     float64 `json:"price,omitempty"`
	UnitPrice float64 `json:"unitPrice,omitempty"`
	PackQty   float64 `json:"packQty,omitempty"`
}

// StorePrice is a per-store average unit price for one product name.
type StorePrice struct {
	Store   string  `json:"store"`
	AvgUnit float64 `json:"avgUnitPrice"`
	Samples int     `json:"samples"`
}

// LatestListID returns the newest shopping list for the user, or ErrNotFound.
func (db *DB) LatestListID(ctx context.Context, userID int64) (int64, error) {
	var id int64
	err := db.sql.QueryRowContext(ctx,
		`SELECT id FROM shopping_lists WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		userID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("latest list: %w", err)
	}
	return id, nil
}

// CreateList inserts a shopping list and returns its ID.
func (db *DB) CreateList(ctx context.Context, userID int64, name string) (int64, error) {
	res, err := db.sql.ExecContext(ctx,
		`INSERT INTO shopping_lists (user_id, name) VALUES (?, ?)`, userID, name)
	if err != nil {
		return 0, fmt.Errorf("create list: %w", err)
	}
	return res.LastInsertId()
}

// ListExists reports whether the list belongs to the user.
func (db *DB) ListExists(ctx context.Context, userID, listID int64) (bool, error) {
	var one int
	err := db.sql.QueryRowContext(ctx,
		`SELECT 1 FROM shopping_lists WHERE id = ? AND user_id = ?`, listID, userID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("list exists: %w", err)
	}
	return true, nil
}

// DeleteList removes a list and its items. Returns affected list rows.
func (db *DB) DeleteList(ctx context.Context, userID, listID int64) (int64, error) {
	res, err := db.sql.ExecContext(ctx,
		`DELETE FROM shopping_lists WHERE id = ? AND user_id = ?`, listID, userID)
	if err != nil {
		return 0, fmt.Errorf("delete list: %w", err)
	}
	return res.RowsAffected()
}

// Lists returns all shopping lists for the user, newest first.
func (db *DB) Lists(ctx context.Context, userID int64) ([]domain.ShoppingList, error) {
	rows, err := db.sql.QueryContext(ctx,
		`SELECT id, name, created_at FROM shopping_lists WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query lists: %w", err)
	}
	defer rows.Close()

	var out []domain.ShoppingList
	for rows.Next() {
		var l domain.ShoppingList
		var created string
		if err := rows.Scan(&l.ID, &l.Name, &created); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		l.CreatedAt = parseTimestamp(created)
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListItems returns items on a list together with the current price data of
// any linked product.
func (db *DB) ListItems(ctx context.Context, listID int64) ([]ListItemDetail, error) {
	rows, err := db.sql.QueryContext(ctx, `
		SELECT i.id, i.list_id, i.product_id, i.name, i.quantity,
		       COALESCE(p.price, 0), COALESCE(p.unit_price, 0), COALESCE(p.quantity, 0)
		FROM shopping_list_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.list_id = ?
		ORDER BY i.id`, listID)
	if err != nil {
		return nil, fmt.Errorf("query list items: %w", err)
	}
	defer rows.Close()

	var out []ListItemDetail
	for rows.Next() {
		var d ListItemDetail
		if err := rows.Scan(&d.ID, &d.ListID, &d.ProductID, &d.Name, &d.Quantity,
			&d.Price, &d.UnitPrice, &d.PackQty); err != nil {
			return nil, fmt.Errorf("scan list item: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// FindListItem locates an item on the list by substring name match.
func (db *DB) FindListItem(ctx context.Context, listID int64, name string) (*domain.ShoppingListItem, error) {
	var item domain.ShoppingListItem
	err := db.sql.QueryRowContext(ctx,
		`SELECT id, list_id, product_id, name, quantity
		 FROM shopping_list_items WHERE list_id = ? AND name LIKE ? LIMIT 1`,
		listID, like(name),
	).Scan(&item.ID, &item.ListID, &item.ProductID, &item.Name, &item.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find list item: %w", err)
	}
	return &item, nil
}

// AddListItem inserts an item. productID may be nil for free-text items.
func (db *DB) AddListItem(ctx context.Context, listID int64, productID *int64, name string, quantity float64) (int64, error) {
	res, err := db.sql.ExecContext(ctx,
		`INSERT INTO shopping_list_items (list_id, product_id, name, quantity) VALUES (?, ?, ?, ?)`,
		listID, productID, name, quantity)
	if err != nil {
		return 0, fmt.Errorf("add list item: %w", err)
	}
	return res.LastInsertId()
}

// IncrementListItem adds quantity to an existing item.
func (db *DB) IncrementListItem(ctx context.Context, itemID int64, quantity float64) error {
	_, err := db.sql.ExecContext(ctx,
		`UPDATE shopping_list_items SET quantity = quantity + ? WHERE id = ?`,
		quantity, itemID)
	if err != nil {
		return fmt.Errorf("increment list item: %w", err)
	}
	return nil
}

// RemoveListItem deletes items matching the name. Returns affected rows.
func (db *DB) RemoveListItem(ctx context.Context, listID int64, name string) (int64, error) {
	res, err := db.sql.ExecContext(ctx,
		`DELETE FROM shopping_list_items WHERE list_id = ? AND name LIKE ?`,
		listID, like(name))
	if err != nil {
		return 0, fmt.Errorf("remove list item: %w", err)
	}
	return res.RowsAffected()
}

// ResolveProduct finds the most recently purchased product matching the
// name, or ErrNotFound when the user never bought anything like it.
func (db *DB) ResolveProduct(ctx context.Context, userID int64, name string) (*ProductRef, error) {
	var ref ProductRef
	err := db.sql.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.price, p.quantity, p.unit_price
		FROM products p
		JOIN receipts r ON r.id = p.receipt_id
		WHERE r.user_id = ? AND p.name LIKE ?
		ORDER BY r.added_at DESC LIMIT 1`,
		userID, like(name),
	).Scan(&ref.ID, &ref.Name, &ref.Price, &ref.Quantity, &ref.UnitPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}
	return &ref, nil
}

// StorePriceAverages returns the average effective unit price per store for
// products matching the given name exactly, ignoring case and surrounding
// whitespace. The effective unit price prefers the recorded unit price,
// then price divided by quantity, then the raw price.
func (db *DB) StorePriceAverages(ctx context.Context, userID int64, name string) ([]StorePrice, error) {
	rows, err := db.sql.QueryContext(ctx, `
		SELECT COALESCE(c.name, 'Nieznany'),
		       AVG(CASE
		           WHEN p.unit_price > 0 THEN p.unit_price
		           WHEN p.quantity > 0 THEN p.price / p.quantity
		           ELSE p.price
		       END),
		       COUNT(*)
		FROM products p
		JOIN receipts r ON r.id = p.receipt_id
		LEFT JOIN companies c ON c.id = r.company_id
		WHERE r.user_id = ? AND LOWER(TRIM(p.name)) = LOWER(TRIM(?))
		GROUP BY 1`,
		userID, name)
	if err != nil {
		return nil, fmt.Errorf("query store prices: %w", err)
	}
	defer rows.Close()

	var out []StorePrice
	for rows.Next() {
		var s StorePrice
		if err := rows.Scan(&s.Store, &s.AvgUnit, &s.Samples); err != nil {
			return nil, fmt.Errorf("scan store price: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
