package store

import (
	"errors"
	"os"
	"testing"

	"github.com/verdanthq/verdant/internal/apperr"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "verdant-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *DB, name string) string {
	t.Helper()
	u, err := db.EnsureUser(name, "")
	if err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	return u.ID
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	for _, table := range []string{"users", "notes", "note_links", "tags", "note_tags", "snippets", "reading_items", "daily_notes"} {
		if err := db.conn.QueryRow(`SELECT count(*) FROM ` + table).Scan(&count); err != nil {
			t.Fatalf("%s table missing: %v", table, err)
		}
	}
}

func TestEnsureUser_CreatesOnce(t *testing.T) {
	db := testDB(t)
	a, err := db.EnsureUser("alice", "tok1")
	if err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	b, err := db.EnsureUser("alice", "tok1")
	if err != nil {
		t.Fatalf("EnsureUser again: %v", err)
	}
	if a.ID != b.ID {
		t.Errorf("second EnsureUser created a new user: %q vs %q", a.ID, b.ID)
	}
}

func TestEnsureUser_SyncsToken(t *testing.T) {
	db := testDB(t)
	_, _ = db.EnsureUser("alice", "old")
	u, err := db.EnsureUser("alice", "new")
	if err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	if u.Token != "new" {
		t.Errorf("token = %q, want %q", u.Token, "new")
	}
	if _, err := db.UserByToken("old"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("stale token should not resolve, got %v", err)
	}
}

func TestUserByToken(t *testing.T) {
	db := testDB(t)
	u, _ := db.EnsureUser("alice", "secret")
	got, err := db.UserByToken("secret")
	if err != nil {
		t.Fatalf("UserByToken: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("resolved user = %q, want %q", got.ID, u.ID)
	}
}

func TestUserByToken_EmptyNeverMatches(t *testing.T) {
	db := testDB(t)
	seedUser(t, db, "local") // local user carries an empty token
	if _, err := db.UserByToken(""); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("empty token must never resolve, got %v", err)
	}
}
