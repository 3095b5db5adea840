package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/verdanthq/verdant/internal/garden"
	"github.com/verdanthq/verdant/internal/testutil"
)

func testServer(t *testing.T) (*Server, *garden.Service, string) {
	t.Helper()
	db := testutil.TestDB(t)
	user := testutil.TestUser(t, db, "local")
	svc := garden.NewService(db, nil)
	return New(svc, user), svc, user
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we invoke the handler
	// functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_notes":
		result, err = srv.searchNotes(ctx, req)
	case "read_note":
		result, err = srv.readNote(ctx, req)
	case "create_note":
		result, err = srv.createNote(ctx, req)
	case "get_authoring_guide":
		result, err = srv.getAuthoringGuide(ctx, req)
	case "list_notes":
		result, err = srv.listNotes(ctx, req)
	case "get_backlinks":
		result, err = srv.getBacklinks(ctx, req)
	case "garden_stats":
		result, err = srv.gardenStats(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCreateAndReadNote(t *testing.T) {
	srv, svc, user := testServer(t)

	r := callTool(t, srv, "create_note", map[string]interface{}{
		"title":   "Test Note",
		"content": "Hello from the assistant",
	})
	text := resultText(r)
	if !strings.Contains(text, "created note") || !strings.Contains(text, "test-note") {
		t.Errorf("create result = %q", text)
	}

	items, _ := svc.ListNotes(context.Background(), user, 10, "", "", "")
	if len(items) != 1 {
		t.Fatalf("notes = %d, want 1", len(items))
	}

	r = callTool(t, srv, "read_note", map[string]interface{}{"id": items[0].ID})
	if !strings.Contains(resultText(r), "Hello from the assistant") {
		t.Errorf("read result = %q", resultText(r))
	}
}

func TestCreateNote_WikiLinksResolved(t *testing.T) {
	srv, svc, user := testServer(t)
	callTool(t, srv, "create_note", map[string]interface{}{
		"title":   "Source",
		"content": "see [[Placeholder Idea]]",
	})

	items, _ := svc.ListNotes(context.Background(), user, 10, "", "", "")
	if len(items) != 2 {
		t.Errorf("notes = %d, want note plus placeholder", len(items))
	}
}

func TestReadNoteMissing(t *testing.T) {
	srv, _, _ := testServer(t)
	r := callTool(t, srv, "read_note", map[string]interface{}{"id": "nope"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}

func TestSearchNotes(t *testing.T) {
	srv, _, _ := testServer(t)
	callTool(t, srv, "create_note", map[string]interface{}{
		"title":   "Findable",
		"content": "uniquetoken lives here",
	})

	r := callTool(t, srv, "search_notes", map[string]interface{}{"query": "uniquetoken"})
	if !strings.Contains(resultText(r), "Findable") {
		t.Errorf("search result = %q", resultText(r))
	}
}

func TestListNotes_StageFilter(t *testing.T) {
	srv, svc, user := testServer(t)
	_, _ = svc.CreateNote(context.Background(), user, garden.CreateNoteInput{Title: "Old", GrowthStage: "EVERGREEN"})
	_, _ = svc.CreateNote(context.Background(), user, garden.CreateNoteInput{Title: "New"})

	r := callTool(t, srv, "list_notes", map[string]interface{}{"growth_stage": "EVERGREEN"})
	text := resultText(r)
	if !strings.Contains(text, "Old") || strings.Contains(text, "New") {
		t.Errorf("filtered list = %q", text)
	}
}

func TestGetBacklinks(t *testing.T) {
	srv, svc, user := testServer(t)
	target, _ := svc.CreateNote(context.Background(), user, garden.CreateNoteInput{Title: "Hub"})
	_, _ = svc.CreateNote(context.Background(), user, garden.CreateNoteInput{Title: "Spoke", Content: "[[Hub]]"})

	r := callTool(t, srv, "get_backlinks", map[string]interface{}{"id": target.ID})
	if !strings.Contains(resultText(r), "Spoke") {
		t.Errorf("backlinks = %q, want Spoke", resultText(r))
	}
}

func TestGardenStats(t *testing.T) {
	srv, svc, user := testServer(t)
	_, _ = svc.CreateNote(context.Background(), user, garden.CreateNoteInput{Title: "A"})

	r := callTool(t, srv, "garden_stats", map[string]interface{}{})
	if !strings.Contains(resultText(r), `"totalNotes": 1`) {
		t.Errorf("stats = %q", resultText(r))
	}
}

func TestAuthoringGuideTool(t *testing.T) {
	srv, _, _ := testServer(t)
	r := callTool(t, srv, "get_authoring_guide", map[string]interface{}{})
	if !strings.Contains(resultText(r), "[[") {
		t.Errorf("guide should mention wikilink syntax: %q", resultText(r))
	}
}
