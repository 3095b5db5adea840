package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verdanthq/verdant/internal/garden"
)

func decodeBody[T interface{ Validate() error }](w http.ResponseWriter, body io.Reader, req *T) bool {
	if err := json.NewDecoder(body).Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	if err := (*req).Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return false
	}
	return true
}

// ListTags handles GET /api/tags.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.ListTags(r.Context(), requestUserID(r))
	if err != nil {
		writeError(w, "list tags", err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

// NotesByTag handles GET /api/tags/{name}/notes.
func (h *Handler) NotesByTag(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.NotesByTag(r.Context(), requestUserID(r), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, "notes by tag", err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// ListSnippets handles GET /api/snippets.
func (h *Handler) ListSnippets(w http.ResponseWriter, r *http.Request) {
	snippets, err := h.svc.ListSnippets(r.Context(), requestUserID(r))
	if err != nil {
		writeError(w, "list snippets", err)
		return
	}
	writeJSON(w, http.StatusOK, snippets)
}

// CreateSnippet handles POST /api/snippets.
func (h *Handler) CreateSnippet(w http.ResponseWriter, r *http.Request) {
	var req CreateSnippetRequest
	if !decodeBody(w, r.Body, &req) {
		return
	}
	snippet, err := h.svc.CreateSnippet(r.Context(), requestUserID(r), garden.CreateSnippetInput{
		Title:       req.Title,
		Content:     req.Content,
		Language:    req.Language,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(w, "create snippet", err)
		return
	}
	writeJSON(w, http.StatusCreated, snippet)
}

// UpdateSnippet handles PUT /api/snippets/{id}.
func (h *Handler) UpdateSnippet(w http.ResponseWriter, r *http.Request) {
	var req UpdateSnippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	snippet, err := h.svc.UpdateSnippet(r.Context(), requestUserID(r), chi.URLParam(r, "id"), garden.UpdateSnippetInput{
		Title:       req.Title,
		Content:     req.Content,
		Language:    req.Language,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(w, "update snippet", err)
		return
	}
	writeJSON(w, http.StatusOK, snippet)
}

// DeleteSnippet handles DELETE /api/snippets/{id}.
func (h *Handler) DeleteSnippet(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSnippet(r.Context(), requestUserID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, "delete snippet", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListReading handles GET /api/reading.
func (h *Handler) ListReading(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListReadingItems(r.Context(), requestUserID(r))
	if err != nil {
		writeError(w, "list reading", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateReading handles POST /api/reading.
func (h *Handler) CreateReading(w http.ResponseWriter, r *http.Request) {
	var req CreateReadingRequest
	if !decodeBody(w, r.Body, &req) {
		return
	}
	item, err := h.svc.CreateReadingItem(r.Context(), requestUserID(r), req.URL, req.Title, req.Note)
	if err != nil {
		writeError(w, "create reading item", err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateReading handles PUT /api/reading/{id}.
func (h *Handler) UpdateReading(w http.ResponseWriter, r *http.Request) {
	var req UpdateReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	item, err := h.svc.UpdateReadingItem(r.Context(), requestUserID(r), chi.URLParam(r, "id"), garden.UpdateReadingInput{
		Title: req.Title,
		Note:  req.Note,
		Read:  req.Read,
	})
	if err != nil {
		writeError(w, "update reading item", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteReading handles DELETE /api/reading/{id}.
func (h *Handler) DeleteReading(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteReadingItem(r.Context(), requestUserID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, "delete reading item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDaily handles GET /api/daily/{date}.
func (h *Handler) GetDaily(w http.ResponseWriter, r *http.Request) {
	note, err := h.svc.GetDailyNote(r.Context(), requestUserID(r), chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, "get daily note", err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// PutDaily handles PUT /api/daily/{date}.
func (h *Handler) PutDaily(w http.ResponseWriter, r *http.Request) {
	var req PutDailyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	note, err := h.svc.PutDailyNote(r.Context(), requestUserID(r), chi.URLParam(r, "date"), req.Content)
	if err != nil {
		writeError(w, "put daily note", err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}
