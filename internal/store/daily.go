package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DailyRow represents a row in the daily_notes table. Day is the calendar
// date in YYYY-MM-DD form.
type DailyRow struct {
	ID        string
	UserID    string
	Day       string
	Content   string
	UpdatedAt time.Time
}

// GetDailyNote returns the user's daily note for the given day, or nil when
// none exists yet.
func (db *DB) GetDailyNote(userID, day string) (*DailyRow, error) {
	var d DailyRow
	err := db.conn.QueryRow(`
		SELECT id, user_id, day, content, updated_at
		FROM daily_notes WHERE user_id = ? AND day = ?
	`, userID, day).Scan(&d.ID, &d.UserID, &d.Day, &d.Content, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get daily note: %w", err)
	}
	return &d, nil
}

// UpsertDailyNote creates or replaces the content of the user's daily note
// for the given day.
func (db *DB) UpsertDailyNote(userID, day, content string) (*DailyRow, error) {
	d := &DailyRow{
		ID:        uuid.NewString(),
		UserID:    userID,
		Day:       day,
		Content:   content,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := db.conn.Exec(`
		INSERT INTO daily_notes (id, user_id, day, content, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, day) DO UPDATE SET
			content    = excluded.content,
			updated_at = excluded.updated_at
	`, d.ID, d.UserID, d.Day, d.Content, d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: upsert daily note: %w", err)
	}
	// Re-read so the caller sees the surviving row id on conflict.
	return db.GetDailyNote(userID, day)
}
