package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verdanthq/verdant/internal/apperr"
)

// ReadingRow represents a row in the reading_items table.
type ReadingRow struct {
	ID        string
	UserID    string
	URL       string
	Title     string
	Note      string
	Read      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateReadingItem inserts a reading-list item for the user.
func (db *DB) CreateReadingItem(userID, url, title, note string) (*ReadingRow, error) {
	now := time.Now().UTC()
	r := &ReadingRow{
		ID:        uuid.NewString(),
		UserID:    userID,
		URL:       url,
		Title:     title,
		Note:      note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.conn.Exec(`
		INSERT INTO reading_items (id, user_id, url, title, note, read, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 0, ?, ?)
	`, r.ID, r.UserID, r.URL, r.Title, r.Note, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: create reading item: %w", err)
	}
	return r, nil
}

// GetReadingItem returns a reading item owned by the user, or ErrNotFound.
func (db *DB) GetReadingItem(id, userID string) (*ReadingRow, error) {
	var r ReadingRow
	err := db.conn.QueryRow(`
		SELECT id, user_id, url, title, note, read, created_at, updated_at
		FROM reading_items WHERE id = ? AND user_id = ?
	`, id, userID).Scan(&r.ID, &r.UserID, &r.URL, &r.Title, &r.Note, &r.Read, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get reading item: %w", err)
	}
	return &r, nil
}

// UpdateReadingItem writes the merged fields of an existing reading item.
func (db *DB) UpdateReadingItem(r *ReadingRow) error {
	r.UpdatedAt = time.Now().UTC()
	res, err := db.conn.Exec(`
		UPDATE reading_items SET title = ?, note = ?, read = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, r.Title, r.Note, r.Read, r.UpdatedAt, r.ID, r.UserID)
	if err != nil {
		return fmt.Errorf("store: update reading item: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteReadingItem removes a reading item owned by the user.
func (db *DB) DeleteReadingItem(id, userID string) error {
	res, err := db.conn.Exec(`DELETE FROM reading_items WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("store: delete reading item: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// ListReadingItems returns the user's reading list, newest first.
func (db *DB) ListReadingItems(userID string) ([]ReadingRow, error) {
	rows, err := db.conn.Query(`
		SELECT id, user_id, url, title, note, read, created_at, updated_at
		FROM reading_items WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: list reading items: %w", err)
	}
	defer rows.Close()
	out := []ReadingRow{}
	for rows.Next() {
		var r ReadingRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.URL, &r.Title, &r.Note, &r.Read,
			&r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
