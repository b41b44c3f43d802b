package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
)

// ErrNotFound is returned when a lookup matches no rows.
var ErrNotFound = errors.New("not found")

// UserByToken resolves an API token to a user.
func (db *DB) UserByToken(ctx context.Context, token string) (*domain.User, error) {
	var u domain.User
	err := db.sql.QueryRowContext(ctx,
		`SELECT id, login, status FROM users WHERE api_token = ? AND api_token != ''`,
		token,
	).Scan(&u.ID, &u.Login, &u.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user by token: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a user row and returns its ID.
func (db *DB) CreateUser(ctx context.Context, login, apiToken, status string) (int64, error) {
	res, err := db.sql.ExecContext(ctx,
		`INSERT INTO users (login, api_token, status) VALUES (?, ?, ?)`,
		login, apiToken, status,
	)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return res.LastInsertId()
}
