package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verdanthq/verdant/internal/apperr"
	"github.com/verdanthq/verdant/internal/slug"
)

// NoteRow represents a row in the notes table.
type NoteRow struct {
	ID          string
	UserID      string
	Title       string
	Slug        string
	Content     string
	GrowthStage string
	IsPublic    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NoteListRow is a note as returned by list queries: no content, but with
// its tags and total link degree.
type NoteListRow struct {
	ID          string
	Title       string
	Slug        string
	GrowthStage string
	IsPublic    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LinkCount   int
	Tags        []TagRow
}

// Stats holds per-stage note counts for a user.
type Stats struct {
	TotalNotes int
	Seedlings  int
	Budding    int
	Evergreen  int
	TotalTags  int
}

// probeSlug finds a free slug for the user inside the current transaction:
// the base slug as-is, or base-1, base-2, ... until no other note holds it.
// Probing and the subsequent insert share one transaction, so concurrent
// creation serializes on the store instead of racing.
func probeSlug(tx *sql.Tx, userID, base, excludeID string) (string, error) {
	candidate := base
	for n := 1; n <= 1000; n++ {
		var one int
		err := tx.QueryRow(`SELECT 1 FROM notes WHERE user_id = ? AND slug = ? AND id != ?`,
			userID, candidate, excludeID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("store: probe slug: %w", err)
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
	return "", fmt.Errorf("store: probe slug %q: %w", base, apperr.ErrConflict)
}

// insertNote creates a note inside tx with a collision-free slug.
func insertNote(tx *sql.Tx, userID, title, content, stage string, isPublic bool) (*NoteRow, error) {
	s, err := probeSlug(tx, userID, slug.Make(title), "")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	n := &NoteRow{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Slug:        s,
		Content:     content,
		GrowthStage: stage,
		IsPublic:    isPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err = tx.Exec(`
		INSERT INTO notes (id, user_id, title, slug, content, growth_stage, is_public, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, n.ID, n.UserID, n.Title, n.Slug, n.Content, n.GrowthStage, n.IsPublic, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: insert note: %w", err)
	}
	if err := ftsUpsert(tx, n.ID, n.UserID, n.Title, n.Content); err != nil {
		return nil, err
	}
	return n, nil
}

// CreateNote creates a note for the user. Slug probing and the insert run in
// one transaction.
func (db *DB) CreateNote(userID, title, content, stage string, isPublic bool) (*NoteRow, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	n, err := insertNote(tx, userID, title, content, stage, isPublic)
	if err != nil {
		return nil, err
	}
	return n, tx.Commit()
}

// UpdateNote writes the merged fields of an existing note. When regenSlug is
// set a fresh slug is probed from the (changed) title within the same
// transaction. Returns ErrNotFound when the note is absent or not owned.
func (db *DB) UpdateNote(id, userID, title, content, stage string, isPublic, regenSlug bool) (*NoteRow, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	n := &NoteRow{ID: id, UserID: userID, Title: title, Content: content, GrowthStage: stage, IsPublic: isPublic}
	err = tx.QueryRow(`SELECT slug, created_at FROM notes WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&n.Slug, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load note: %w", err)
	}

	if regenSlug {
		n.Slug, err = probeSlug(tx, userID, slug.Make(title), id)
		if err != nil {
			return nil, err
		}
	}

	n.UpdatedAt = time.Now().UTC()
	_, err = tx.Exec(`
		UPDATE notes SET title = ?, slug = ?, content = ?, growth_stage = ?, is_public = ?, updated_at = ?
		WHERE id = ?
	`, n.Title, n.Slug, n.Content, n.GrowthStage, n.IsPublic, n.UpdatedAt, n.ID)
	if err != nil {
		return nil, fmt.Errorf("store: update note: %w", err)
	}
	if err := ftsUpsert(tx, n.ID, n.UserID, n.Title, n.Content); err != nil {
		return nil, err
	}
	return n, tx.Commit()
}

// GetNote returns a note owned by the user, or ErrNotFound.
func (db *DB) GetNote(id, userID string) (*NoteRow, error) {
	var n NoteRow
	err := db.conn.QueryRow(`
		SELECT id, user_id, title, slug, content, growth_stage, is_public, created_at, updated_at
		FROM notes WHERE id = ? AND user_id = ?
	`, id, userID).Scan(&n.ID, &n.UserID, &n.Title, &n.Slug, &n.Content, &n.GrowthStage,
		&n.IsPublic, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get note: %w", err)
	}
	return &n, nil
}

// DeleteNote removes a note; links and tag joins cascade.
func (db *DB) DeleteNote(id, userID string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, id)
	res, err := tx.Exec(`DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("store: delete note: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperr.ErrNotFound
	}
	return tx.Commit()
}

var sortColumns = map[string]string{
	"updatedAt": "n.updated_at DESC",
	"createdAt": "n.created_at DESC",
	"title":     "n.title ASC",
}

// ListNotes returns up to limit notes for the user, newest first by default,
// optionally filtered by growth stage and tag name. Each row carries its
// total link degree and tags.
func (db *DB) ListNotes(userID string, limit int, orderBy, stage, tag string) ([]NoteListRow, error) {
	if limit <= 0 {
		limit = 20
	}
	order, ok := sortColumns[orderBy]
	if !ok {
		order = sortColumns["updatedAt"]
	}

	query := `
		SELECT n.id, n.title, n.slug, n.growth_stage, n.is_public, n.created_at, n.updated_at,
		       (SELECT COUNT(*) FROM note_links l WHERE l.from_note_id = n.id) +
		       (SELECT COUNT(*) FROM note_links l WHERE l.to_note_id = n.id)
		FROM notes n
		WHERE n.user_id = ?`
	args := []any{userID}
	if stage != "" {
		query += ` AND n.growth_stage = ?`
		args = append(args, stage)
	}
	if tag != "" {
		query += ` AND EXISTS (
			SELECT 1 FROM note_tags nt JOIN tags t ON t.id = nt.tag_id
			WHERE nt.note_id = n.id AND t.name = ?)`
		args = append(args, tag)
	}
	query += ` ORDER BY ` + order + ` LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list notes: %w", err)
	}
	defer rows.Close()

	var out []NoteListRow
	byID := make(map[string]int)
	for rows.Next() {
		var r NoteListRow
		if err := rows.Scan(&r.ID, &r.Title, &r.Slug, &r.GrowthStage, &r.IsPublic,
			&r.CreatedAt, &r.UpdatedAt, &r.LinkCount); err != nil {
			return nil, err
		}
		r.Tags = []TagRow{}
		byID[r.ID] = len(out)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	tagRows, err := db.conn.Query(`
		SELECT nt.note_id, t.id, t.name, t.color
		FROM note_tags nt JOIN tags t ON t.id = nt.tag_id
		WHERE t.user_id = ?
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: list note tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var noteID string
		var t TagRow
		if err := tagRows.Scan(&noteID, &t.ID, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		if i, ok := byID[noteID]; ok {
			out[i].Tags = append(out[i].Tags, t)
		}
	}
	return out, tagRows.Err()
}

// NoteStats returns per-stage note counts and the tag count for the user.
func (db *DB) NoteStats(userID string) (*Stats, error) {
	var s Stats
	err := db.conn.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN growth_stage = 'SEEDLING' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN growth_stage = 'BUDDING' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN growth_stage = 'EVERGREEN' THEN 1 ELSE 0 END), 0)
		FROM notes WHERE user_id = ?
	`, userID).Scan(&s.TotalNotes, &s.Seedlings, &s.Budding, &s.Evergreen)
	if err != nil {
		return nil, fmt.Errorf("store: note stats: %w", err)
	}
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM tags WHERE user_id = ?`, userID).Scan(&s.TotalTags); err != nil {
		return nil, fmt.Errorf("store: tag count: %w", err)
	}
	return &s, nil
}

// RandomNoteID returns the id of a random note owned by the user, or empty
// string when the garden is empty.
func (db *DB) RandomNoteID(userID string) (string, error) {
	var id string
	err := db.conn.QueryRow(`SELECT id FROM notes WHERE user_id = ? ORDER BY RANDOM() LIMIT 1`, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("store: random note: %w", err)
	}
	return id, nil
}
