package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/verdanthq/verdant/internal/garden"
	"github.com/verdanthq/verdant/internal/store"
)

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	GrowthStage string   `json:"growthStage"`
	IsPublic    bool     `json:"isPublic"`
	Tags        []string `json:"tags"`
}

// Validate validates the create request.
func (r CreateNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.GrowthStage, validation.In(store.StageSeedling, store.StageBudding, store.StageEvergreen)),
	)
}

// UpdateNoteRequest is a patch body; absent fields leave the note unchanged.
type UpdateNoteRequest struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	GrowthStage *string   `json:"growthStage"`
	IsPublic    *bool     `json:"isPublic"`
	Tags        *[]string `json:"tags"`
}

// Validate validates the patch request.
func (r UpdateNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.GrowthStage, validation.In(store.StageSeedling, store.StageBudding, store.StageEvergreen)),
	)
}

// CreateSnippetRequest is the request body for creating a code snippet.
type CreateSnippetRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Language    string   `json:"language"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Validate validates the snippet create request.
func (r CreateSnippetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Language, validation.Required),
	)
}

// UpdateSnippetRequest is a patch body for a snippet.
type UpdateSnippetRequest struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	Language    *string   `json:"language"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
}

// CreateReadingRequest is the request body for adding a reading-list item.
type CreateReadingRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Note  string `json:"note"`
}

// Validate validates the reading create request.
func (r CreateReadingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required),
	)
}

// UpdateReadingRequest is a patch body for a reading-list item.
type UpdateReadingRequest struct {
	Title *string `json:"title"`
	Note  *string `json:"note"`
	Read  *bool   `json:"read"`
}

// PutDailyRequest is the request body for writing a daily note.
type PutDailyRequest struct {
	Content string `json:"content"`
}

// NoteListResponse wraps note listings.
type NoteListResponse struct {
	Notes []garden.NoteListItem `json:"notes"`
}

// GraphResponse wraps the garden graph.
type GraphResponse struct {
	Nodes []garden.GraphNode `json:"nodes"`
	Links []garden.GraphLink `json:"links"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []garden.SearchResult `json:"results"`
}
