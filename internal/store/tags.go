package store

import (
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
)

// TagRow represents a row in the tags table.
type TagRow struct {
	ID    string
	Name  string
	Color string
}

// TagWithCount is a tag plus the number of notes carrying it.
type TagWithCount struct {
	TagRow
	NoteCount int
}

// TagNoteRow is a note as listed under a tag.
type TagNoteRow struct {
	ID          string
	Title       string
	GrowthStage string
	UpdatedAt   time.Time
}

// Tags created on first use get a deterministic color from this palette.
var tagPalette = []string{
	"#4ade80", "#60a5fa", "#f472b6", "#fbbf24", "#a78bfa", "#34d399", "#fb923c",
}

func tagColor(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return tagPalette[h.Sum32()%uint32(len(tagPalette))]
}

// SetNoteTags replaces the tag set of a note wholesale: existing joins are
// deleted, tags are created by name when absent, and fresh joins inserted,
// all in one transaction. Unused tags are never deleted.
func (db *DB) SetNoteTags(noteID, userID string, names []string) ([]TagRow, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM note_tags WHERE note_id = ?`, noteID); err != nil {
		return nil, fmt.Errorf("store: clear note tags: %w", err)
	}

	out := []TagRow{}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		var t TagRow
		err := tx.QueryRow(`SELECT id, name, color FROM tags WHERE user_id = ? AND name = ?`, userID, name).
			Scan(&t.ID, &t.Name, &t.Color)
		if errors.Is(err, sql.ErrNoRows) {
			t = TagRow{ID: uuid.NewString(), Name: name, Color: tagColor(name)}
			if _, err := tx.Exec(`INSERT INTO tags (id, user_id, name, color) VALUES (?, ?, ?, ?)`,
				t.ID, userID, t.Name, t.Color); err != nil {
				return nil, fmt.Errorf("store: create tag: %w", err)
			}
		} else if err != nil {
			return nil, fmt.Errorf("store: find tag: %w", err)
		}

		if _, err := tx.Exec(`INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)`,
			noteID, t.ID); err != nil {
			return nil, fmt.Errorf("store: tag note: %w", err)
		}
		out = append(out, t)
	}

	return out, tx.Commit()
}

// TagsForNote returns the tags attached to a note.
func (db *DB) TagsForNote(noteID string) ([]TagRow, error) {
	rows, err := db.conn.Query(`
		SELECT t.id, t.name, t.color
		FROM note_tags nt JOIN tags t ON t.id = nt.tag_id
		WHERE nt.note_id = ?
		ORDER BY t.name ASC
	`, noteID)
	if err != nil {
		return nil, fmt.Errorf("store: tags for note: %w", err)
	}
	defer rows.Close()
	out := []TagRow{}
	for rows.Next() {
		var t TagRow
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListTags returns the user's tags with note counts, sorted by name.
func (db *DB) ListTags(userID string) ([]TagWithCount, error) {
	rows, err := db.conn.Query(`
		SELECT t.id, t.name, t.color,
		       (SELECT COUNT(*) FROM note_tags nt WHERE nt.tag_id = t.id)
		FROM tags t WHERE t.user_id = ?
		ORDER BY t.name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: list tags: %w", err)
	}
	defer rows.Close()
	out := []TagWithCount{}
	for rows.Next() {
		var t TagWithCount
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.NoteCount); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// NotesByTag returns the user's notes carrying the named tag. An unknown tag
// yields an empty list, not an error.
func (db *DB) NotesByTag(userID, name string) ([]TagNoteRow, error) {
	rows, err := db.conn.Query(`
		SELECT n.id, n.title, n.growth_stage, n.updated_at
		FROM note_tags nt
		JOIN tags t ON t.id = nt.tag_id
		JOIN notes n ON n.id = nt.note_id
		WHERE t.user_id = ? AND t.name = ?
	`, userID, name)
	if err != nil {
		return nil, fmt.Errorf("store: notes by tag: %w", err)
	}
	defer rows.Close()
	out := []TagNoteRow{}
	for rows.Next() {
		var r TagNoteRow
		if err := rows.Scan(&r.ID, &r.Title, &r.GrowthStage, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
