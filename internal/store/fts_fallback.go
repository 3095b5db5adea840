//go:build !sqlite_fts5

package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// SearchResult represents one search hit.
type SearchResult struct {
	ID          string
	Title       string
	GrowthStage string
	Snippet     string
}

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses a LIKE fallback on the notes table.
	return nil
}

func ftsUpsert(_ *sql.Tx, _, _, _, _ string) error {
	// Title and content already live in the notes table; nothing extra to do.
	return nil
}

func ftsDelete(_ *sql.Tx, _ string) {}

// SearchNotes performs a LIKE-based search over the user's note titles and
// contents (fallback when FTS5 is not compiled in).
func (db *DB) SearchNotes(userID, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT id, title, growth_stage, content
		FROM notes
		WHERE user_id = ? AND (title LIKE ? OR content LIKE ?)
		ORDER BY updated_at DESC
		LIMIT ?
	`, userID, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("store: search: %w", err)
	}
	defer rows.Close()

	out := []SearchResult{}
	for rows.Next() {
		var r SearchResult
		var content string
		if err := rows.Scan(&r.ID, &r.Title, &r.GrowthStage, &content); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(content, query)
		out = append(out, r)
	}
	return out, rows.Err()
}

// makeSnippet returns a window of content around the first case-insensitive
// match of query, or the leading 80 characters when the match was in the
// title only.
func makeSnippet(content, query string) string {
	idx := strings.Index(strings.ToLower(content), strings.ToLower(query))
	if idx < 0 {
		if len(content) > 80 {
			return content[:80] + "..."
		}
		return content
	}
	start := idx - 30
	if start < 0 {
		start = 0
	}
	end := idx + len(query) + 50
	if end > len(content) {
		end = len(content)
	}
	snippet := content[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet += "..."
	}
	return snippet
}
