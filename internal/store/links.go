package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/verdanthq/verdant/internal/apperr"
	"github.com/verdanthq/verdant/internal/slug"
)

// NoteRef is the minimal projection of a note used in link views.
type NoteRef struct {
	ID          string
	Title       string
	Slug        string
	GrowthStage string
}

// GraphNode is one node of the whole-garden graph: a note plus its total
// link degree (incoming + outgoing).
type GraphNode struct {
	ID          string
	Title       string
	GrowthStage string
	LinkCount   int
}

// GraphLink is a directed edge of the garden graph.
type GraphLink struct {
	Source string
	Target string
}

// ReconcileLinks replaces the outgoing edge set of a note so that it exactly
// matches the given reference titles. Within one transaction it resolves each
// title against the owner's notes (exact title match or slug match, oldest
// note wins), creates SEEDLING placeholder notes for unresolved titles,
// deletes every stale outgoing edge, and inserts the fresh edge set.
// Self-references never create a placeholder and never produce an edge.
// Returns any placeholder notes that were created.
func (db *DB) ReconcileLinks(noteID, userID string, titles []string) ([]NoteRow, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	var sourceTitle string
	err = tx.QueryRow(`SELECT title FROM notes WHERE id = ? AND user_id = ?`, noteID, userID).Scan(&sourceTitle)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load source note: %w", err)
	}

	var created []NoteRow
	targets := make([]string, 0, len(titles))
	seen := make(map[string]struct{}, len(titles))

	for _, title := range titles {
		var targetID string
		err := tx.QueryRow(`
			SELECT id FROM notes
			WHERE user_id = ? AND (title = ? OR slug = ?)
			ORDER BY created_at ASC, id ASC
			LIMIT 1
		`, userID, title, slug.Make(title)).Scan(&targetID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if title == sourceTitle {
				continue
			}
			placeholder, err := insertNote(tx, userID, title, "", StageSeedling, false)
			if err != nil {
				return nil, err
			}
			created = append(created, *placeholder)
			targetID = placeholder.ID
		case err != nil:
			return nil, fmt.Errorf("store: resolve reference: %w", err)
		}
		if targetID == noteID {
			continue
		}
		if _, dup := seen[targetID]; dup {
			continue
		}
		seen[targetID] = struct{}{}
		targets = append(targets, targetID)
	}

	if _, err := tx.Exec(`DELETE FROM note_links WHERE from_note_id = ?`, noteID); err != nil {
		return nil, fmt.Errorf("store: delete stale links: %w", err)
	}
	if len(targets) > 0 {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO note_links (from_note_id, to_note_id) VALUES (?, ?)`)
		if err != nil {
			return nil, fmt.Errorf("store: prepare link insert: %w", err)
		}
		defer stmt.Close()
		for _, target := range targets {
			if _, err := stmt.Exec(noteID, target); err != nil {
				return nil, fmt.Errorf("store: insert link: %w", err)
			}
		}
	}

	return created, tx.Commit()
}

// ListLinksForNote returns the forward links (targets of outgoing edges) and
// backlinks (sources of incoming edges) of a note.
func (db *DB) ListLinksForNote(noteID string) (outgoing, incoming []NoteRef, err error) {
	outgoing, err = db.queryRefs(`
		SELECT n.id, n.title, n.slug, n.growth_stage
		FROM note_links l JOIN notes n ON n.id = l.to_note_id
		WHERE l.from_note_id = ?
	`, noteID)
	if err != nil {
		return nil, nil, err
	}
	incoming, err = db.queryRefs(`
		SELECT n.id, n.title, n.slug, n.growth_stage
		FROM note_links l JOIN notes n ON n.id = l.from_note_id
		WHERE l.to_note_id = ?
	`, noteID)
	if err != nil {
		return nil, nil, err
	}
	return outgoing, incoming, nil
}

func (db *DB) queryRefs(query string, args ...any) ([]NoteRef, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list links: %w", err)
	}
	defer rows.Close()
	out := []NoteRef{}
	for rows.Next() {
		var r NoteRef
		if err := rows.Scan(&r.ID, &r.Title, &r.Slug, &r.GrowthStage); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Graph returns every note of the user as a node with its link degree, and
// every link between the user's notes as an edge.
func (db *DB) Graph(userID string) ([]GraphNode, []GraphLink, error) {
	rows, err := db.conn.Query(`
		SELECT n.id, n.title, n.growth_stage,
		       (SELECT COUNT(*) FROM note_links l WHERE l.from_note_id = n.id) +
		       (SELECT COUNT(*) FROM note_links l WHERE l.to_note_id = n.id)
		FROM notes n WHERE n.user_id = ?
	`, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("store: graph nodes: %w", err)
	}
	defer rows.Close()

	var nodes []GraphNode
	for rows.Next() {
		var n GraphNode
		if err := rows.Scan(&n.ID, &n.Title, &n.GrowthStage, &n.LinkCount); err != nil {
			return nil, nil, err
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	linkRows, err := db.conn.Query(`
		SELECT l.from_note_id, l.to_note_id
		FROM note_links l JOIN notes n ON n.id = l.from_note_id
		WHERE n.user_id = ?
	`, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("store: graph links: %w", err)
	}
	defer linkRows.Close()

	var links []GraphLink
	for linkRows.Next() {
		var l GraphLink
		if err := linkRows.Scan(&l.Source, &l.Target); err != nil {
			return nil, nil, err
		}
		links = append(links, l)
	}
	return nodes, links, linkRows.Err()
}
