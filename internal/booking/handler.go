package handler

import (
	"encoding/json"
	"net/http"

	"meetnote/internal/booking/model"
	"meetnote/internal/booking/store"
	"meetnote/internal/booking/view"
	usermodel "meetnote/internal/user/model"
	userstore "meetnote/internal/user/store"
	"meetnote/pkg/logger"
)

type BookingHandler struct {
	Bookings *store.BookingStore
	Users    *userstore.UserStore
}

func NewBookingHandler(bookings *store.BookingStore, users *userstore.UserStore) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Users: users}
}

// Dashboard fetches the role-filtered booking list for the active user and
// returns the derived dashboard view model.
func (h *BookingHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	active := h.Users.State().ActiveUser
	if active != nil {
		h.Bookings.FetchBookings(r.Context(), view.FilterFor(active))
	}

	writeJSON(w, http.StatusOK, view.BuildDashboard(h.Bookings.State(), active))
}

// BookingOptions serves the booking form's dropdown data: the business list
// and the half-hour time grid.
func (h *BookingHandler) BookingOptions(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, map[string]any{
		"businessOptions": view.BusinessOptions(st.Users),
		"timeOptions":     view.TimeOptions(30),
	})
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	active := h.Users.State().ActiveUser
	if active == nil {
		http.Error(w, "Please select an active user first.", http.StatusBadRequest)
		return
	}
	if active.Role != usermodel.RoleClient {
		http.Error(w, "Only client users can create bookings.", http.StatusForbidden)
		return
	}

	var form model.BookingForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// field errors resolve here; an invalid form never hits the backend
	if errs := form.Validate(); errs != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return
	}

	input, err := form.Input(active.ID)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created := h.Bookings.CreateBooking(r.Context(), input)
	if created == nil {
		msg := h.Bookings.State().Error
		logger.Sugar.Errorf("Handler: Failed to create booking: %s", msg)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": msg})
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateBooking reschedules via the edit modal: times and notes only, the
// business party is fixed.
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	var form model.BookingForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	// edit mode keeps the original business; skip that field error
	if form.BusinessID == "" {
		form.BusinessID = "unchanged"
	}
	if errs := form.Validate(); errs != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return
	}

	patch, err := form.Patch()
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated := h.Bookings.UpdateBooking(r.Context(), id, patch)
	if updated == nil {
		msg := h.Bookings.State().Error
		logger.Sugar.Errorf("Handler: Failed to update booking %s: %s", id, msg)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": msg})
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	if !h.Bookings.CancelBooking(r.Context(), id) {
		msg := h.Bookings.State().Error
		logger.Sugar.Errorf("Handler: Failed to cancel booking %s: %s", id, msg)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": msg})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"canceled": true})
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	if !h.Bookings.DeleteBooking(r.Context(), id) {
		msg := h.Bookings.State().Error
		logger.Sugar.Errorf("Handler: Failed to delete booking %s: %s", id, msg)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": msg})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
