package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/verdanthq/verdant/internal/garden"
)

// Handler holds API route handlers.
type Handler struct {
	svc *garden.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *garden.Service) *Handler {
	return &Handler{svc: svc}
}

// ListNotes handles GET /api/notes.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	items, err := h.svc.ListNotes(r.Context(), requestUserID(r), limit,
		q.Get("orderBy"), q.Get("growthStage"), q.Get("tag"))
	if err != nil {
		writeError(w, "list notes", err)
		return
	}
	writeJSON(w, http.StatusOK, NoteListResponse{Notes: items})
}

// CreateNote handles POST /api/notes.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	note, err := h.svc.CreateNote(r.Context(), requestUserID(r), garden.CreateNoteInput{
		Title:       req.Title,
		Content:     req.Content,
		GrowthStage: req.GrowthStage,
		IsPublic:    req.IsPublic,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(w, "create note", err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// GetNote handles GET /api/notes/{id}.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.svc.GetNote(r.Context(), requestUserID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "get note", err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// UpdateNote handles PUT /api/notes/{id}.
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	note, err := h.svc.UpdateNote(r.Context(), requestUserID(r), chi.URLParam(r, "id"), garden.UpdateNoteInput{
		Title:       req.Title,
		Content:     req.Content,
		GrowthStage: req.GrowthStage,
		IsPublic:    req.IsPublic,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(w, "update note", err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteNote handles DELETE /api/notes/{id}.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteNote(r.Context(), requestUserID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, "delete note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// NoteLinks handles GET /api/notes/{id}/links.
func (h *Handler) NoteLinks(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.NoteLinkView(r.Context(), requestUserID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "note links", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// NoteStats handles GET /api/notes/stats.
func (h *Handler) NoteStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context(), requestUserID(r))
	if err != nil {
		writeError(w, "note stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// RandomNote handles GET /api/notes/random.
func (h *Handler) RandomNote(w http.ResponseWriter, r *http.Request) {
	id, err := h.svc.RandomNoteID(r.Context(), requestUserID(r))
	if err != nil {
		writeError(w, "random note", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// Search handles GET /api/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), requestUserID(r), q, limit)
	if err != nil {
		writeError(w, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Graph handles GET /api/graph.
func (h *Handler) Graph(w http.ResponseWriter, r *http.Request) {
	nodes, links, err := h.svc.Graph(r.Context(), requestUserID(r))
	if err != nil {
		writeError(w, "graph", err)
		return
	}
	if nodes == nil {
		nodes = []garden.GraphNode{}
	}
	if links == nil {
		links = []garden.GraphLink{}
	}
	writeJSON(w, http.StatusOK, GraphResponse{Nodes: nodes, Links: links})
}
