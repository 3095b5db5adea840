package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verdanthq/verdant/internal/garden"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether bearer tokens are enforced; resolve maps
// tokens to user ids and defaultUserID is the bootstrap user for disabled
// mode. sseHandler, if non-nil, is mounted at GET /events inside the auth
// group.
func NewRouter(svc *garden.Service, authEnabled bool, resolve TokenResolver, defaultUserID string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, resolve, defaultUserID))

	// Notes.
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Get("/notes/stats", h.NoteStats)
	r.Get("/notes/random", h.RandomNote)
	r.Get("/notes/{id}", h.GetNote)
	r.Put("/notes/{id}", h.UpdateNote)
	r.Delete("/notes/{id}", h.DeleteNote)
	r.Get("/notes/{id}/links", h.NoteLinks)

	// Graph and search.
	r.Get("/graph", h.Graph)
	r.Get("/search", h.Search)

	// Tags.
	r.Get("/tags", h.ListTags)
	r.Get("/tags/{name}/notes", h.NotesByTag)

	// Snippets.
	r.Get("/snippets", h.ListSnippets)
	r.Post("/snippets", h.CreateSnippet)
	r.Put("/snippets/{id}", h.UpdateSnippet)
	r.Delete("/snippets/{id}", h.DeleteSnippet)

	// Reading list.
	r.Get("/reading", h.ListReading)
	r.Post("/reading", h.CreateReading)
	r.Put("/reading/{id}", h.UpdateReading)
	r.Delete("/reading/{id}", h.DeleteReading)

	// Daily notes.
	r.Get("/daily/{date}", h.GetDaily)
	r.Put("/daily/{date}", h.PutDaily)

	// SSE endpoint (protected by the same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
