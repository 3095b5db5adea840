package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verdanthq/verdant/internal/apperr"
)

// UserRow represents a row in the users table.
type UserRow struct {
	ID    string
	Name  string
	Token string
}

// EnsureUser finds a user by name, creating it when absent, and keeps the
// stored API token in sync with the configured one.
func (db *DB) EnsureUser(name, token string) (*UserRow, error) {
	var u UserRow
	err := db.conn.QueryRow(`SELECT id, name, token FROM users WHERE name = ?`, name).
		Scan(&u.ID, &u.Name, &u.Token)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		u = UserRow{ID: uuid.NewString(), Name: name, Token: token}
		_, err = db.conn.Exec(`INSERT INTO users (id, name, token, created_at) VALUES (?, ?, ?, ?)`,
			u.ID, u.Name, u.Token, time.Now().UTC())
		if err != nil {
			return nil, fmt.Errorf("store: create user: %w", err)
		}
		return &u, nil
	case err != nil:
		return nil, fmt.Errorf("store: find user: %w", err)
	}
	if u.Token != token {
		if _, err := db.conn.Exec(`UPDATE users SET token = ? WHERE id = ?`, token, u.ID); err != nil {
			return nil, fmt.Errorf("store: update user token: %w", err)
		}
		u.Token = token
	}
	return &u, nil
}

// UserByToken resolves an API token to its user.
func (db *DB) UserByToken(token string) (*UserRow, error) {
	var u UserRow
	err := db.conn.QueryRow(`SELECT id, name, token FROM users WHERE token = ? AND token != ''`, token).
		Scan(&u.ID, &u.Name, &u.Token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: user by token: %w", err)
	}
	return &u, nil
}
