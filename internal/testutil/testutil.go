// Package testutil provides shared test helpers for setting up garden
// databases and users.
package testutil

import (
	"os"
	"testing"

	"github.com/verdanthq/verdant/internal/store"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "verdant-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestUser creates (or finds) a user by name and returns its id.
func TestUser(t *testing.T, db *store.DB, name string) string {
	t.Helper()
	u, err := db.EnsureUser(name, "")
	if err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	return u.ID
}
