package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"meetnote/internal/note/model"
	"meetnote/internal/note/store"
	"meetnote/internal/note/view"
	"meetnote/pkg/api"
	"meetnote/pkg/logger"
)

type NoteHandler struct {
	Notes *store.NoteStore
}

func NewNoteHandler(notes *store.NoteStore) *NoteHandler {
	return &NoteHandler{Notes: notes}
}

// ListNotes loads one page of notes, filtered by tag and free-text search,
// and returns the derived list view.
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	tag := view.TagFromCategory(q.Get("tag"))

	ctx := api.WithCookies(r.Context(), r.Header.Get("Cookie"))
	h.Notes.FetchNotes(ctx, q.Get("search"), page, tag)

	writeJSON(w, http.StatusOK, view.BuildList(h.Notes.State()))
}

// SearchNotes is the live search-box path: the store debounces rapid term
// changes, so this responds with the current (possibly stale) view while the
// refetch is pending.
func (h *NoteHandler) SearchNotes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	tag := view.TagFromCategory(q.Get("tag"))

	// the fetch outlives this request once the debounce window elapses
	ctx := api.WithCookies(context.WithoutCancel(r.Context()), r.Header.Get("Cookie"))
	h.Notes.SearchNotes(ctx, q.Get("search"), tag)

	writeJSON(w, http.StatusAccepted, view.BuildList(h.Notes.State()))
}

func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	ctx := api.WithCookies(r.Context(), r.Header.Get("Cookie"))
	note := h.Notes.FetchNoteByID(ctx, id)
	if note == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": h.Notes.State().Error})
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var data model.NewNoteData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := data.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ctx := api.WithCookies(r.Context(), r.Header.Get("Cookie"))
	created := h.Notes.CreateNote(ctx, data)
	if created == nil {
		msg := h.Notes.State().Error
		logger.Sugar.Errorf("Handler: Failed to create note: %s", msg)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": msg})
		return
	}

	// the create form closes with a full refetch rather than a local splice
	h.Notes.FetchNotes(ctx, "", 1, "")

	writeJSON(w, http.StatusCreated, created)
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	ctx := api.WithCookies(r.Context(), r.Header.Get("Cookie"))
	if !h.Notes.DeleteNote(ctx, id) {
		msg := h.Notes.State().Error
		logger.Sugar.Errorf("Handler: Failed to delete note %s: %s", id, msg)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": msg})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Categories serves the sidebar filter list.
func (h *NoteHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, view.Categories())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
