package garden

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/verdanthq/verdant/internal/apperr"
	"github.com/verdanthq/verdant/internal/store"
)

// TagSummary is a tag with its note count.
type TagSummary struct {
	Tag
	NoteCount int `json:"noteCount"`
}

// TagNote is a note listed under a tag.
type TagNote struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	GrowthStage string    `json:"growthStage"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Snippet is a stored code snippet.
type Snippet struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Language    string    `json:"language"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ReadingItem is an entry in the reading list.
type ReadingItem struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Note      string    `json:"note"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DailyNote is the journal entry for one calendar day. ID is empty when no
// entry exists yet for the requested day.
type DailyNote struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

// ListTags returns the user's tags with note counts.
func (s *Service) ListTags(_ context.Context, userID string) ([]TagSummary, error) {
	rows, err := s.db.ListTags(userID)
	if err != nil {
		return nil, err
	}
	out := make([]TagSummary, len(rows))
	for i, t := range rows {
		out[i] = TagSummary{Tag: Tag{ID: t.ID, Name: t.Name, Color: t.Color}, NoteCount: t.NoteCount}
	}
	return out, nil
}

// NotesByTag returns the user's notes carrying the named tag; an unknown tag
// yields an empty list.
func (s *Service) NotesByTag(_ context.Context, userID, name string) ([]TagNote, error) {
	rows, err := s.db.NotesByTag(userID, name)
	if err != nil {
		return nil, err
	}
	out := make([]TagNote, len(rows))
	for i, r := range rows {
		out[i] = TagNote{ID: r.ID, Title: r.Title, GrowthStage: r.GrowthStage, UpdatedAt: r.UpdatedAt}
	}
	return out, nil
}

// CreateSnippetInput carries the fields for creating a snippet.
type CreateSnippetInput struct {
	Title       string
	Content     string
	Language    string
	Description string
	Tags        []string
}

// CreateSnippet stores a code snippet. Title, content, and language are
// required.
func (s *Service) CreateSnippet(_ context.Context, userID string, in CreateSnippetInput) (*Snippet, error) {
	if in.Title == "" || in.Content == "" || in.Language == "" {
		return nil, fmt.Errorf("title, content, and language are required: %w", apperr.ErrValidation)
	}
	row, err := s.db.CreateSnippet(userID, in.Title, in.Content, in.Language, in.Description, marshalTags(in.Tags))
	if err != nil {
		return nil, err
	}
	return snippetFromRow(row), nil
}

// UpdateSnippetInput is a patch: nil fields are left unchanged.
type UpdateSnippetInput struct {
	Title       *string
	Content     *string
	Language    *string
	Description *string
	Tags        *[]string
}

// UpdateSnippet applies a patch to a snippet.
func (s *Service) UpdateSnippet(_ context.Context, userID, id string, in UpdateSnippetInput) (*Snippet, error) {
	row, err := s.db.GetSnippet(id, userID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		row.Title = *in.Title
	}
	if in.Content != nil {
		row.Content = *in.Content
	}
	if in.Language != nil {
		row.Language = *in.Language
	}
	if in.Description != nil {
		row.Description = *in.Description
	}
	if in.Tags != nil {
		row.Tags = marshalTags(*in.Tags)
	}
	if err := s.db.UpdateSnippet(row); err != nil {
		return nil, err
	}
	return snippetFromRow(row), nil
}

// DeleteSnippet removes a snippet owned by the user.
func (s *Service) DeleteSnippet(_ context.Context, userID, id string) error {
	return s.db.DeleteSnippet(id, userID)
}

// ListSnippets returns the user's snippets, most recently updated first.
func (s *Service) ListSnippets(_ context.Context, userID string) ([]Snippet, error) {
	rows, err := s.db.ListSnippets(userID)
	if err != nil {
		return nil, err
	}
	out := make([]Snippet, len(rows))
	for i := range rows {
		out[i] = *snippetFromRow(&rows[i])
	}
	return out, nil
}

// CreateReadingItem adds a reading-list entry. URL is required; the title
// defaults to the URL.
func (s *Service) CreateReadingItem(_ context.Context, userID, url, title, note string) (*ReadingItem, error) {
	if url == "" {
		return nil, fmt.Errorf("url is required: %w", apperr.ErrValidation)
	}
	if title == "" {
		title = url
	}
	row, err := s.db.CreateReadingItem(userID, url, title, note)
	if err != nil {
		return nil, err
	}
	return readingFromRow(row), nil
}

// UpdateReadingInput is a patch: nil fields are left unchanged.
type UpdateReadingInput struct {
	Title *string
	Note  *string
	Read  *bool
}

// UpdateReadingItem applies a patch to a reading-list entry.
func (s *Service) UpdateReadingItem(_ context.Context, userID, id string, in UpdateReadingInput) (*ReadingItem, error) {
	row, err := s.db.GetReadingItem(id, userID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		row.Title = *in.Title
	}
	if in.Note != nil {
		row.Note = *in.Note
	}
	if in.Read != nil {
		row.Read = *in.Read
	}
	if err := s.db.UpdateReadingItem(row); err != nil {
		return nil, err
	}
	return readingFromRow(row), nil
}

// DeleteReadingItem removes a reading-list entry owned by the user.
func (s *Service) DeleteReadingItem(_ context.Context, userID, id string) error {
	return s.db.DeleteReadingItem(id, userID)
}

// ListReadingItems returns the user's reading list, newest first.
func (s *Service) ListReadingItems(_ context.Context, userID string) ([]ReadingItem, error) {
	rows, err := s.db.ListReadingItems(userID)
	if err != nil {
		return nil, err
	}
	out := make([]ReadingItem, len(rows))
	for i := range rows {
		out[i] = *readingFromRow(&rows[i])
	}
	return out, nil
}

// GetDailyNote returns the daily note for a YYYY-MM-DD day, or an empty
// shell when none exists.
func (s *Service) GetDailyNote(_ context.Context, userID, day string) (*DailyNote, error) {
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", day, apperr.ErrValidation)
	}
	row, err := s.db.GetDailyNote(userID, day)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return &DailyNote{Date: day}, nil
	}
	return &DailyNote{ID: row.ID, Date: row.Day, Content: row.Content}, nil
}

// PutDailyNote creates or replaces the daily note for a YYYY-MM-DD day.
func (s *Service) PutDailyNote(_ context.Context, userID, day, content string) (*DailyNote, error) {
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", day, apperr.ErrValidation)
	}
	row, err := s.db.UpsertDailyNote(userID, day, content)
	if err != nil {
		return nil, err
	}
	return &DailyNote{ID: row.ID, Date: row.Day, Content: row.Content}, nil
}

func marshalTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, _ := json.Marshal(tags)
	return string(b)
}

func snippetFromRow(r *store.SnippetRow) *Snippet {
	var tags []string
	if err := json.Unmarshal([]byte(r.Tags), &tags); err != nil || tags == nil {
		tags = []string{}
	}
	return &Snippet{
		ID:          r.ID,
		Title:       r.Title,
		Content:     r.Content,
		Language:    r.Language,
		Description: r.Description,
		Tags:        tags,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func readingFromRow(r *store.ReadingRow) *ReadingItem {
	return &ReadingItem{
		ID:        r.ID,
		URL:       r.URL,
		Title:     r.Title,
		Note:      r.Note,
		Read:      r.Read,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
