package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// dictionaryID resolves a name in a one-column dictionary table, inserting
// it on first use. Table names are compile-time constants at call sites.
func (db *DB) dictionaryID(ctx context.Context, table, name string) (int64, error) {
	if name == "" {
		return 0, ErrNotFound
	}
	var id int64
	err := db.sql.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id FROM %s WHERE name = ?", table), name,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		res, err := db.sql.ExecContext(ctx,
			fmt.Sprintf("INSERT INTO %s (name) VALUES (?)", table), name)
		if err != nil {
			return 0, fmt.Errorf("insert into %s: %w", table, err)
		}
		return res.LastInsertId()
	}
	if err != nil {
		return 0, fmt.Errorf("lookup in %s: %w", table, err)
	}
	return id, nil
}

// InsertReceipt stores a receipt, creating company and city rows as needed.
// addedAt is a "YYYY-MM-DD HH:MM:SS" timestamp; empty means now.
func (db *DB) InsertReceipt(ctx context.Context, userID int64, company, city string, total, discount float64, addedAt string) (int64, error) {
	var companyID, cityID any
	if company != "" {
		id, err := db.dictionaryID(ctx, "companies", company)
		if err != nil {
			return 0, err
		}
		companyID = id
	}
	if city != "" {
		id, err := db.dictionaryID(ctx, "cities", city)
		if err != nil {
			return 0, err
		}
		cityID = id
	}

	var res sql.Result
	var err error
	if addedAt == "" {
		res, err = db.sql.ExecContext(ctx,
			`INSERT INTO receipts (user_id, company_id, city_id, total, discount) VALUES (?, ?, ?, ?, ?)`,
			userID, companyID, cityID, total, discount)
	} else {
		res, err = db.sql.ExecContext(ctx,
			`INSERT INTO receipts (user_id, company_id, city_id, total, discount, added_at) VALUES (?, ?, ?, ?, ?, ?)`,
			userID, companyID, cityID, total, discount, addedAt)
	}
	if err != nil {
		return 0, fmt.Errorf("insert receipt: %w", err)
	}
	return res.LastInsertId()
}

// InsertProduct stores a product line on a receipt, creating the category
// row as needed. ean may be empty.
func (db *DB) InsertProduct(ctx context.Context, receiptID int64, name, category string, price, quantity, unitPrice float64, unit, ean string) (int64, error) {
	var categoryID any
	if category != "" {
		id, err := db.dictionaryID(ctx, "categories", category)
		if err != nil {
			return 0, err
		}
		categoryID = id
	}

	var eanVal any
	if ean != "" {
		eanVal = ean
	}

	res, err := db.sql.ExecContext(ctx,
		`INSERT INTO products (receipt_id, name, category_id, price, quantity, unit_price, unit, ean)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		receiptID, name, categoryID, price, quantity, unitPrice, unit, eanVal)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return res.LastInsertId()
}
