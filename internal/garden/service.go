// Package garden implements the domain service for the digital garden:
// note authoring with wiki-link reconciliation, the link graph, tags,
// snippets, the reading list, and daily notes.
package garden

import (
	"context"
	"fmt"
	"time"

	"github.com/verdanthq/verdant/internal/apperr"
	"github.com/verdanthq/verdant/internal/store"
	"github.com/verdanthq/verdant/internal/wikilink"
)

// Note is the full representation of a note.
type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Content     string    `json:"content"`
	GrowthStage string    `json:"growthStage"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NoteRef is the minimal note projection used in link views.
type NoteRef struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	GrowthStage string `json:"growthStage"`
}

// Tag is a user-scoped label with a display color.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NoteDetail is a note enriched with its tags and both link directions.
type NoteDetail struct {
	Note
	Tags      []Tag     `json:"tags"`
	LinksTo   []NoteRef `json:"linksTo"`
	Backlinks []NoteRef `json:"backlinks"`
}

// NoteListItem is a lightweight item in a list response.
type NoteListItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	GrowthStage string    `json:"growthStage"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Tags        []Tag     `json:"tags"`
	LinkCount   int       `json:"linkCount"`
}

// LinkView holds the forward links and backlinks of one note.
type LinkView struct {
	LinksTo   []NoteRef `json:"linksTo"`
	Backlinks []NoteRef `json:"backlinks"`
}

// GraphNode is a node in the garden graph.
type GraphNode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	GrowthStage string `json:"growthStage"`
	LinkCount   int    `json:"linkCount"`
}

// GraphLink is a directed edge in the garden graph.
type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// SearchResult is one search hit.
type SearchResult struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	GrowthStage string `json:"growthStage"`
	Snippet     string `json:"snippet"`
}

// Stats summarises the garden.
type Stats struct {
	TotalNotes int `json:"totalNotes"`
	Seedlings  int `json:"seedlings"`
	Budding    int `json:"budding"`
	Evergreen  int `json:"evergreen"`
	TotalTags  int `json:"totalTags"`
}

// Note event kinds published to the notifier.
const (
	EventNoteCreated = "note.created"
	EventNoteUpdated = "note.updated"
	EventNoteDeleted = "note.deleted"
)

// Notifier receives note change events (for SSE fan-out).
type Notifier func(kind, noteID, slug string)

// Service coordinates the store with link reconciliation and notifications.
type Service struct {
	db     store.GardenStore
	notify Notifier
}

// NewService creates a garden service. notify may be nil.
func NewService(db store.GardenStore, notify Notifier) *Service {
	if notify == nil {
		notify = func(string, string, string) {}
	}
	return &Service{db: db, notify: notify}
}

// CreateNoteInput carries the fields for creating a note.
type CreateNoteInput struct {
	Title       string
	Content     string
	GrowthStage string
	IsPublic    bool
	Tags        []string
}

// UpdateNoteInput is a patch: nil fields are left unchanged.
type UpdateNoteInput struct {
	Title       *string
	Content     *string
	GrowthStage *string
	IsPublic    *bool
	Tags        *[]string
}

// CreateNote persists a new note, reconciles its wiki-links (creating
// placeholders as needed), and attaches tags.
func (s *Service) CreateNote(_ context.Context, userID string, in CreateNoteInput) (*Note, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("title is required: %w", apperr.ErrValidation)
	}
	stage := in.GrowthStage
	if stage == "" {
		stage = store.StageSeedling
	}
	if !store.ValidStage(stage) {
		return nil, fmt.Errorf("unknown growth stage %q: %w", stage, apperr.ErrValidation)
	}

	row, err := s.db.CreateNote(userID, in.Title, in.Content, stage, in.IsPublic)
	if err != nil {
		return nil, err
	}
	if err := s.reconcileLinks(row.ID, userID, in.Content); err != nil {
		return nil, err
	}
	if len(in.Tags) > 0 {
		if _, err := s.db.SetNoteTags(row.ID, userID, in.Tags); err != nil {
			return nil, err
		}
	}
	s.notify(EventNoteCreated, row.ID, row.Slug)
	return noteFromRow(row), nil
}

// UpdateNote applies a patch to a note. The slug is regenerated only when
// the title changed; links are reconciled only when content was supplied;
// tags are replaced wholesale only when a tag list was supplied.
func (s *Service) UpdateNote(_ context.Context, userID, id string, in UpdateNoteInput) (*Note, error) {
	existing, err := s.db.GetNote(id, userID)
	if err != nil {
		return nil, err
	}

	title, content, stage, isPublic := existing.Title, existing.Content, existing.GrowthStage, existing.IsPublic
	regenSlug := false
	if in.Title != nil && *in.Title != "" && *in.Title != existing.Title {
		title = *in.Title
		regenSlug = true
	}
	if in.Content != nil {
		content = *in.Content
	}
	if in.GrowthStage != nil {
		if !store.ValidStage(*in.GrowthStage) {
			return nil, fmt.Errorf("unknown growth stage %q: %w", *in.GrowthStage, apperr.ErrValidation)
		}
		stage = *in.GrowthStage
	}
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	row, err := s.db.UpdateNote(id, userID, title, content, stage, isPublic, regenSlug)
	if err != nil {
		return nil, err
	}
	if in.Content != nil {
		if err := s.reconcileLinks(id, userID, *in.Content); err != nil {
			return nil, err
		}
	}
	if in.Tags != nil {
		if _, err := s.db.SetNoteTags(id, userID, *in.Tags); err != nil {
			return nil, err
		}
	}
	s.notify(EventNoteUpdated, row.ID, row.Slug)
	return noteFromRow(row), nil
}

// reconcileLinks extracts [[Title]] references from content, deduplicates
// them by exact title, and replaces the note's outgoing edge set. Placeholder
// notes created along the way are announced as note.created events.
func (s *Service) reconcileLinks(noteID, userID, content string) error {
	titles := wikilink.Dedupe(wikilink.Extract(content))
	created, err := s.db.ReconcileLinks(noteID, userID, titles)
	if err != nil {
		return err
	}
	for _, p := range created {
		s.notify(EventNoteCreated, p.ID, p.Slug)
	}
	return nil
}

// GetNote returns a note with its tags, forward links, and backlinks.
func (s *Service) GetNote(_ context.Context, userID, id string) (*NoteDetail, error) {
	row, err := s.db.GetNote(id, userID)
	if err != nil {
		return nil, err
	}
	tags, err := s.db.TagsForNote(id)
	if err != nil {
		return nil, err
	}
	outgoing, incoming, err := s.db.ListLinksForNote(id)
	if err != nil {
		return nil, err
	}
	return &NoteDetail{
		Note:      *noteFromRow(row),
		Tags:      tagsFromRows(tags),
		LinksTo:   refsFromRows(outgoing),
		Backlinks: refsFromRows(incoming),
	}, nil
}

// NoteLinkView returns just the link neighborhood of a note.
func (s *Service) NoteLinkView(_ context.Context, userID, id string) (*LinkView, error) {
	if _, err := s.db.GetNote(id, userID); err != nil {
		return nil, err
	}
	outgoing, incoming, err := s.db.ListLinksForNote(id)
	if err != nil {
		return nil, err
	}
	return &LinkView{LinksTo: refsFromRows(outgoing), Backlinks: refsFromRows(incoming)}, nil
}

// DeleteNote removes a note; its edges cascade. Orphaned placeholders are
// kept.
func (s *Service) DeleteNote(_ context.Context, userID, id string) error {
	row, err := s.db.GetNote(id, userID)
	if err != nil {
		return err
	}
	if err := s.db.DeleteNote(id, userID); err != nil {
		return err
	}
	s.notify(EventNoteDeleted, row.ID, row.Slug)
	return nil
}

// ListNotes returns up to limit notes with tags and link counts.
func (s *Service) ListNotes(_ context.Context, userID string, limit int, orderBy, stage, tag string) ([]NoteListItem, error) {
	if stage != "" && !store.ValidStage(stage) {
		stage = ""
	}
	rows, err := s.db.ListNotes(userID, limit, orderBy, stage, tag)
	if err != nil {
		return nil, err
	}
	items := make([]NoteListItem, len(rows))
	for i, r := range rows {
		items[i] = NoteListItem{
			ID:          r.ID,
			Title:       r.Title,
			Slug:        r.Slug,
			GrowthStage: r.GrowthStage,
			IsPublic:    r.IsPublic,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
			Tags:        tagsFromRows(r.Tags),
			LinkCount:   r.LinkCount,
		}
	}
	return items, nil
}

// Search returns owner-scoped matches with content snippets.
func (s *Service) Search(_ context.Context, userID, query string, limit int) ([]SearchResult, error) {
	rows, err := s.db.SearchNotes(userID, query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]SearchResult, len(rows))
	for i, r := range rows {
		out[i] = SearchResult{ID: r.ID, Title: r.Title, GrowthStage: r.GrowthStage, Snippet: r.Snippet}
	}
	return out, nil
}

// Graph returns the whole-garden link graph for visualization.
func (s *Service) Graph(_ context.Context, userID string) ([]GraphNode, []GraphLink, error) {
	nodes, links, err := s.db.Graph(userID)
	if err != nil {
		return nil, nil, err
	}
	outNodes := make([]GraphNode, len(nodes))
	for i, n := range nodes {
		outNodes[i] = GraphNode{ID: n.ID, Title: n.Title, GrowthStage: n.GrowthStage, LinkCount: n.LinkCount}
	}
	outLinks := make([]GraphLink, len(links))
	for i, l := range links {
		outLinks[i] = GraphLink{Source: l.Source, Target: l.Target}
	}
	return outNodes, outLinks, nil
}

// Stats returns per-stage note counts and the tag count.
func (s *Service) Stats(_ context.Context, userID string) (*Stats, error) {
	st, err := s.db.NoteStats(userID)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalNotes: st.TotalNotes,
		Seedlings:  st.Seedlings,
		Budding:    st.Budding,
		Evergreen:  st.Evergreen,
		TotalTags:  st.TotalTags,
	}, nil
}

// RandomNoteID returns a random note id, or empty string for an empty garden.
func (s *Service) RandomNoteID(_ context.Context, userID string) (string, error) {
	return s.db.RandomNoteID(userID)
}

func noteFromRow(r *store.NoteRow) *Note {
	return &Note{
		ID:          r.ID,
		Title:       r.Title,
		Slug:        r.Slug,
		Content:     r.Content,
		GrowthStage: r.GrowthStage,
		IsPublic:    r.IsPublic,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func tagsFromRows(rows []store.TagRow) []Tag {
	out := make([]Tag, len(rows))
	for i, t := range rows {
		out[i] = Tag{ID: t.ID, Name: t.Name, Color: t.Color}
	}
	return out
}

func refsFromRows(rows []store.NoteRef) []NoteRef {
	out := make([]NoteRef, len(rows))
	for i, r := range rows {
		out[i] = NoteRef{ID: r.ID, Title: r.Title, Slug: r.Slug, GrowthStage: r.GrowthStage}
	}
	return out
}
