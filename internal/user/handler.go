package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"meetnote/internal/user/model"
	"meetnote/internal/user/store"
	"meetnote/pkg/logger"
)

type UserHandler struct {
	Users *store.UserStore
}

func NewUserHandler(users *store.UserStore) *UserHandler {
	return &UserHandler{Users: users}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filter := model.FetchFilter{Role: model.Role(r.URL.Query().Get("role"))}
	h.Users.FetchUsers(r.Context(), filter)

	st := h.Users.State()
	if st.Error != "" {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": st.Error})
		return
	}
	writeJSON(w, http.StatusOK, st.Users)
}

func (h *UserHandler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.Users.FetchBusinesses(r.Context())
	st := h.Users.State()
	if st.Error != "" {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": st.Error})
		return
	}
	writeJSON(w, http.StatusOK, st.Users)
}

// CreateUser signs up and signs in at once: the created user becomes the
// active user inside the store.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input model.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Role == "" {
		input.Role = model.RoleClient
	}
	if input.Role != model.RoleClient && input.Role != model.RoleBusiness {
		http.Error(w, "Invalid role. Must be client or business", http.StatusBadRequest)
		return
	}

	form := model.UserForm{Name: input.Name, Email: input.Email}
	if err := form.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	created := h.Users.CreateUser(r.Context(), input)
	if created == nil {
		msg := h.Users.State().Error
		logger.Sugar.Errorf("Handler: Failed to create user: %s", msg)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": msg})
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// SelectUser promotes one of the cached users to active. Pure local state;
// this is the booking app's stand-in for signing in.
func (h *UserHandler) SelectUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	for _, u := range h.Users.State().Users {
		if u.ID == req.ID {
			h.Users.SetActiveUser(&u)
			writeJSON(w, http.StatusOK, u)
			return
		}
	}
	http.Error(w, "Not found", http.StatusNotFound)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.Users.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	var form model.UserForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := form.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(form.Name)
	email := strings.TrimSpace(form.Email)
	updated := h.Users.UpdateUser(r.Context(), id, model.UpdateUserInput{
		Name:  &name,
		Email: &email,
	})
	if updated == nil {
		msg := h.Users.State().Error
		logger.Sugar.Errorf("Handler: Failed to update user %s: %s", id, msg)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": msg})
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	if !h.Users.DeleteUser(r.Context(), id) {
		msg := h.Users.State().Error
		logger.Sugar.Errorf("Handler: Failed to delete user %s: %s", id, msg)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": msg})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Profile returns the active user's profile view, or the empty-state prompt
// when no user is acting.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	st := h.Users.State()
	if st.ActiveUser == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"state":       "empty",
			"title":       "No active user",
			"description": "Select a user in the header to open your profile.",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"state": "populated",
		"user":  st.ActiveUser,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
