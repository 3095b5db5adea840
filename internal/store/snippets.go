package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verdanthq/verdant/internal/apperr"
)

// SnippetRow represents a row in the snippets table. Tags holds a JSON array
// of strings, stored verbatim.
type SnippetRow struct {
	ID          string
	UserID      string
	Title       string
	Content     string
	Language    string
	Description string
	Tags        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateSnippet inserts a snippet for the user.
func (db *DB) CreateSnippet(userID, title, content, language, description, tags string) (*SnippetRow, error) {
	now := time.Now().UTC()
	s := &SnippetRow{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Content:     content,
		Language:    language,
		Description: description,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if s.Tags == "" {
		s.Tags = "[]"
	}
	_, err := db.conn.Exec(`
		INSERT INTO snippets (id, user_id, title, content, language, description, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.UserID, s.Title, s.Content, s.Language, s.Description, s.Tags, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: create snippet: %w", err)
	}
	return s, nil
}

// GetSnippet returns a snippet owned by the user, or ErrNotFound.
func (db *DB) GetSnippet(id, userID string) (*SnippetRow, error) {
	var s SnippetRow
	err := db.conn.QueryRow(`
		SELECT id, user_id, title, content, language, description, tags, created_at, updated_at
		FROM snippets WHERE id = ? AND user_id = ?
	`, id, userID).Scan(&s.ID, &s.UserID, &s.Title, &s.Content, &s.Language,
		&s.Description, &s.Tags, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get snippet: %w", err)
	}
	return &s, nil
}

// UpdateSnippet writes the merged fields of an existing snippet.
func (db *DB) UpdateSnippet(s *SnippetRow) error {
	s.UpdatedAt = time.Now().UTC()
	res, err := db.conn.Exec(`
		UPDATE snippets SET title = ?, content = ?, language = ?, description = ?, tags = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, s.Title, s.Content, s.Language, s.Description, s.Tags, s.UpdatedAt, s.ID, s.UserID)
	if err != nil {
		return fmt.Errorf("store: update snippet: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteSnippet removes a snippet owned by the user.
func (db *DB) DeleteSnippet(id, userID string) error {
	res, err := db.conn.Exec(`DELETE FROM snippets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("store: delete snippet: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// ListSnippets returns the user's snippets, most recently updated first.
func (db *DB) ListSnippets(userID string) ([]SnippetRow, error) {
	rows, err := db.conn.Query(`
		SELECT id, user_id, title, content, language, description, tags, created_at, updated_at
		FROM snippets WHERE user_id = ?
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: list snippets: %w", err)
	}
	defer rows.Close()
	out := []SnippetRow{}
	for rows.Next() {
		var s SnippetRow
		if err := rows.Scan(&s.ID, &s.UserID, &s.Title, &s.Content, &s.Language,
			&s.Description, &s.Tags, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
