//go:build sqlite_fts5

package store

import (
	"database/sql"
	"fmt"
)

// SearchResult represents one search hit.
type SearchResult struct {
	ID          string
	Title       string
	GrowthStage string
	Snippet     string
}

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(
			note_id UNINDEXED,
			user_id UNINDEXED,
			title,
			content,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, noteID, userID, title, content string) error {
	_, _ = tx.Exec(`DELETE FROM notes_fts WHERE note_id = ?`, noteID)
	_, err := tx.Exec(`INSERT INTO notes_fts (note_id, user_id, title, content) VALUES (?, ?, ?, ?)`,
		noteID, userID, title, content)
	if err != nil {
		return fmt.Errorf("store: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, noteID string) {
	_, _ = tx.Exec(`DELETE FROM notes_fts WHERE note_id = ?`, noteID)
}

// SearchNotes performs an FTS5 full-text search over the user's notes and
// returns matches with highlighted snippets.
func (db *DB) SearchNotes(userID, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT f.note_id,
		       n.title,
		       n.growth_stage,
		       snippet(notes_fts, 3, '', '', '...', 20)
		FROM notes_fts f JOIN notes n ON n.id = f.note_id
		WHERE f.user_id = ? AND notes_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, userID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("store: search: %w", err)
	}
	defer rows.Close()

	out := []SearchResult{}
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Title, &r.GrowthStage, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
