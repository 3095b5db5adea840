package store

import (
	"errors"
	"testing"

	"github.com/verdanthq/verdant/internal/apperr"
)

func TestReconcileLinks_CreatesPlaceholder(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")
	src, _ := db.CreateNote(user, "Source", "", StageSeedling, false)

	created, err := db.ReconcileLinks(src.ID, user, []string{"Missing Target"})
	if err != nil {
		t.Fatalf("ReconcileLinks: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("placeholders = %d, want 1", len(created))
	}
	p := created[0]
	if p.Title != "Missing Target" || p.Content != "" || p.GrowthStage != StageSeedling {
		t.Errorf("placeholder = %+v", p)
	}

	outgoing, _, err := db.ListLinksForNote(src.ID)
	if err != nil {
		t.Fatalf("ListLinksForNote: %v", err)
	}
	if len(outgoing) != 1 || outgoing[0].ID != p.ID {
		t.Errorf("outgoing = %+v, want edge to placeholder", outgoing)
	}
}

func TestReconcileLinks_ResolvesBySlug(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")
	target, _ := db.CreateNote(user, "Hello World", "", StageSeedling, false)
	src, _ := db.CreateNote(user, "Source", "", StageSeedling, false)

	// "hello world" differs from the stored title but slugifies to the same
	// slug, so it must resolve instead of creating a placeholder.
	created, err := db.ReconcileLinks(src.ID, user, []string{"hello world"})
	if err != nil {
		t.Fatalf("ReconcileLinks: %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("placeholders = %d, want 0", len(created))
	}
	outgoing, _, _ := db.ListLinksForNote(src.ID)
	if len(outgoing) != 1 || outgoing[0].ID != target.ID {
		t.Errorf("outgoing = %+v, want edge to %q", outgoing, target.ID)
	}
}

func TestReconcileLinks_ReplacesEdgeSetKeepsPlaceholder(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")
	src, _ := db.CreateNote(user, "Source", "", StageSeedling, false)

	created, _ := db.ReconcileLinks(src.ID, user, []string{"Ghost"})
	if len(created) != 1 {
		t.Fatalf("placeholders = %d, want 1", len(created))
	}
	ghost := created[0]

	// Removing the reference drops the edge but never the placeholder note.
	if _, err := db.ReconcileLinks(src.ID, user, nil); err != nil {
		t.Fatalf("ReconcileLinks empty: %v", err)
	}
	outgoing, _, _ := db.ListLinksForNote(src.ID)
	if len(outgoing) != 0 {
		t.Errorf("outgoing = %+v, want none", outgoing)
	}
	if _, err := db.GetNote(ghost.ID, user); err != nil {
		t.Errorf("placeholder should survive edge removal: %v", err)
	}
}

func TestReconcileLinks_NoSelfLoop(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")
	src, _ := db.CreateNote(user, "Recursion", "", StageSeedling, false)

	created, err := db.ReconcileLinks(src.ID, user, []string{"Recursion"})
	if err != nil {
		t.Fatalf("ReconcileLinks: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("self-reference created %d placeholders", len(created))
	}
	outgoing, _, _ := db.ListLinksForNote(src.ID)
	if len(outgoing) != 0 {
		t.Errorf("self-reference produced an edge: %+v", outgoing)
	}
}

func TestReconcileLinks_SelfLoopViaSlug(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")
	src, _ := db.CreateNote(user, "Hello World", "", StageSeedling, false)

	// Resolves via slug back to the source note itself; must yield no edge.
	if _, err := db.ReconcileLinks(src.ID, user, []string{"hello world"}); err != nil {
		t.Fatalf("ReconcileLinks: %v", err)
	}
	outgoing, _, _ := db.ListLinksForNote(src.ID)
	if len(outgoing) != 0 {
		t.Errorf("slug self-reference produced an edge: %+v", outgoing)
	}
}

func TestReconcileLinks_DedupesTargets(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")
	target, _ := db.CreateNote(user, "Target", "", StageSeedling, false)
	src, _ := db.CreateNote(user, "Source", "", StageSeedling, false)

	// Both titles resolve to the same note; only one edge may result.
	if _, err := db.ReconcileLinks(src.ID, user, []string{"Target", "target"}); err != nil {
		t.Fatalf("ReconcileLinks: %v", err)
	}
	outgoing, _, _ := db.ListLinksForNote(src.ID)
	if len(outgoing) != 1 || outgoing[0].ID != target.ID {
		t.Errorf("outgoing = %+v, want single edge to target", outgoing)
	}
}

func TestReconcileLinks_OldestNoteWins(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")
	first, _ := db.CreateNote(user, "Ambiguous", "", StageSeedling, false)
	_, _ = db.CreateNote(user, "Ambiguous", "", StageSeedling, false) // slug ambiguous-1
	src, _ := db.CreateNote(user, "Source", "", StageSeedling, false)

	if _, err := db.ReconcileLinks(src.ID, user, []string{"Ambiguous"}); err != nil {
		t.Fatalf("ReconcileLinks: %v", err)
	}
	outgoing, _, _ := db.ListLinksForNote(src.ID)
	if len(outgoing) != 1 || outgoing[0].ID != first.ID {
		t.Errorf("outgoing = %+v, want deterministic edge to oldest note %q", outgoing, first.ID)
	}
}

func TestReconcileLinks_NotOwned(t *testing.T) {
	db := testDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	src, _ := db.CreateNote(alice, "Source", "", StageSeedling, false)

	if _, err := db.ReconcileLinks(src.ID, bob, []string{"X"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("reconcile by non-owner = %v, want ErrNotFound", err)
	}
}

func TestListLinksForNote_Backlinks(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")
	target, _ := db.CreateNote(user, "Hub", "", StageSeedling, false)
	a, _ := db.CreateNote(user, "A", "", StageSeedling, false)
	b, _ := db.CreateNote(user, "B", "", StageSeedling, false)
	_, _ = db.ReconcileLinks(a.ID, user, []string{"Hub"})
	_, _ = db.ReconcileLinks(b.ID, user, []string{"Hub"})

	_, incoming, err := db.ListLinksForNote(target.ID)
	if err != nil {
		t.Fatalf("ListLinksForNote: %v", err)
	}
	if len(incoming) != 2 {
		t.Errorf("backlinks = %d, want 2", len(incoming))
	}
}

func TestGraph_DegreesAndEdges(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "alice")
	a, _ := db.CreateNote(user, "A", "", StageSeedling, false)
	b, _ := db.CreateNote(user, "B", "", StageSeedling, false)
	c, _ := db.CreateNote(user, "C", "", StageSeedling, false)
	_, _ = db.ReconcileLinks(a.ID, user, []string{"B"})
	_, _ = db.ReconcileLinks(c.ID, user, []string{"B"})

	nodes, links, err := db.Graph(user)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(nodes))
	}
	degrees := map[string]int{}
	for _, n := range nodes {
		degrees[n.ID] = n.LinkCount
	}
	if degrees[a.ID] != 1 || degrees[b.ID] != 2 || degrees[c.ID] != 1 {
		t.Errorf("degrees = %v, want A:1 B:2 C:1", degrees)
	}
	if len(links) != 2 {
		t.Errorf("links = %d, want 2", len(links))
	}
}

func TestGraph_OwnerScoped(t *testing.T) {
	db := testDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	a, _ := db.CreateNote(alice, "A", "", StageSeedling, false)
	_, _ = db.ReconcileLinks(a.ID, alice, []string{"B"})

	nodes, links, err := db.Graph(bob)
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if len(nodes) != 0 || len(links) != 0 {
		t.Errorf("bob's graph = %d nodes %d links, want empty", len(nodes), len(links))
	}
}
