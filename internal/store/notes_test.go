package store

import (
	"errors"
	"testing"

	"github.com/verdanthq/verdant/internal/apperr"
)

func TestCreateNote_SlugCollision(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")

	first, err := db.CreateNote(user, "Hello World", "a", StageSeedling, false)
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if first.Slug != "hello-world" {
		t.Errorf("slug = %q, want %q", first.Slug, "hello-world")
	}

	second, err := db.CreateNote(user, "Hello World", "b", StageSeedling, false)
	if err != nil {
		t.Fatalf("CreateNote duplicate title: %v", err)
	}
	if second.Slug != "hello-world-1" {
		t.Errorf("slug = %q, want %q", second.Slug, "hello-world-1")
	}

	third, _ := db.CreateNote(user, "Hello World", "c", StageSeedling, false)
	if third.Slug != "hello-world-2" {
		t.Errorf("slug = %q, want %q", third.Slug, "hello-world-2")
	}
}

func TestCreateNote_SlugPerUser(t *testing.T) {
	db := testDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	a, _ := db.CreateNote(alice, "Shared Title", "", StageSeedling, false)
	b, err := db.CreateNote(bob, "Shared Title", "", StageSeedling, false)
	if err != nil {
		t.Fatalf("CreateNote for second user: %v", err)
	}
	if a.Slug != b.Slug {
		t.Errorf("slugs should not collide across users: %q vs %q", a.Slug, b.Slug)
	}
}

func TestUpdateNote_RegeneratesSlugOnTitleChange(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")
	n, _ := db.CreateNote(user, "Old Title", "body", StageSeedling, false)

	updated, err := db.UpdateNote(n.ID, user, "New Title", "body", StageBudding, false, true)
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if updated.Slug != "new-title" {
		t.Errorf("slug = %q, want %q", updated.Slug, "new-title")
	}
	if updated.GrowthStage != StageBudding {
		t.Errorf("stage = %q, want %q", updated.GrowthStage, StageBudding)
	}
}

func TestUpdateNote_KeepsSlugWithoutRegen(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")
	n, _ := db.CreateNote(user, "Stable Title", "v1", StageSeedling, false)

	updated, err := db.UpdateNote(n.ID, user, "Stable Title", "v2", StageSeedling, false, false)
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if updated.Slug != n.Slug {
		t.Errorf("slug changed without regen: %q vs %q", updated.Slug, n.Slug)
	}
}

func TestUpdateNote_NotOwned(t *testing.T) {
	db := testDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	n, _ := db.CreateNote(alice, "Private", "", StageSeedling, false)

	if _, err := db.UpdateNote(n.ID, bob, "Stolen", "", StageSeedling, false, true); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("update by non-owner = %v, want ErrNotFound", err)
	}
}

func TestDeleteNote(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")
	n, _ := db.CreateNote(user, "Doomed", "", StageSeedling, false)

	if err := db.DeleteNote(n.ID, user); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if _, err := db.GetNote(n.ID, user); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
	if err := db.DeleteNote(n.ID, user); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestListNotes_StageFilter(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")
	_, _ = db.CreateNote(user, "One", "", StageSeedling, false)
	_, _ = db.CreateNote(user, "Two", "", StageEvergreen, false)

	rows, err := db.ListNotes(user, 10, "", StageEvergreen, "")
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(rows) != 1 || rows[0].Title != "Two" {
		t.Errorf("rows = %+v, want only the evergreen note", rows)
	}
}

func TestListNotes_OwnerScoped(t *testing.T) {
	db := testDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	_, _ = db.CreateNote(alice, "Mine", "", StageSeedling, false)

	rows, err := db.ListNotes(bob, 10, "", "", "")
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("bob sees %d of alice's notes", len(rows))
	}
}

func TestNoteStats(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")
	_, _ = db.CreateNote(user, "A", "", StageSeedling, false)
	_, _ = db.CreateNote(user, "B", "", StageSeedling, false)
	_, _ = db.CreateNote(user, "C", "", StageEvergreen, false)

	s, err := db.NoteStats(user)
	if err != nil {
		t.Fatalf("NoteStats: %v", err)
	}
	if s.TotalNotes != 3 || s.Seedlings != 2 || s.Budding != 0 || s.Evergreen != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestRandomNoteID(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")

	id, err := db.RandomNoteID(user)
	if err != nil {
		t.Fatalf("RandomNoteID empty garden: %v", err)
	}
	if id != "" {
		t.Errorf("empty garden should yield empty id, got %q", id)
	}

	n, _ := db.CreateNote(user, "Only", "", StageSeedling, false)
	id, err = db.RandomNoteID(user)
	if err != nil {
		t.Fatalf("RandomNoteID: %v", err)
	}
	if id != n.ID {
		t.Errorf("random id = %q, want %q", id, n.ID)
	}
}
