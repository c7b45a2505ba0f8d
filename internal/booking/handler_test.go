package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingmodel "meetnote/internal/booking/model"
	bookingrepo "meetnote/internal/booking/repository"
	bookingstore "meetnote/internal/booking/store"
	usermodel "meetnote/internal/user/model"
	userrepo "meetnote/internal/user/repository"
	userstore "meetnote/internal/user/store"
	"meetnote/pkg/api"
	"meetnote/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// newBookingHandler wires a handler against a counting mock backend so tests
// can assert whether the adapter was ever reached.
func newBookingHandler(t *testing.T, backend http.HandlerFunc) (*BookingHandler, *atomic.Int32, func()) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		backend(w, r)
	}))

	client := api.New(server.URL)
	h := NewBookingHandler(
		bookingstore.NewBookingStore(bookingrepo.NewBookingRepository(client)),
		userstore.NewUserStore(userrepo.NewUserRepository(client)),
	)
	return h, &calls, server.Close
}

func activeClient(h *BookingHandler) {
	h.Users.SetActiveUser(&usermodel.User{ID: "u1", Name: "Ann", Email: "ann@x.io", Role: usermodel.RoleClient})
}

func TestCreateBookingRejectsEqualTimesLocally(t *testing.T) {
	h, calls, stop := newBookingHandler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be reached for an invalid form")
	})
	defer stop()
	activeClient(h)

	body := `{"businessId":"biz-1","startDate":"2025-03-10","startTime":"09:00","endDate":"2025-03-10","endTime":"09:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/create", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateBooking(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int32(0), calls.Load())

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "End must be after start", resp.Errors["endTime"])
}

func TestCreateBookingRequiresActiveUser(t *testing.T) {
	h, calls, stop := newBookingHandler(t, func(w http.ResponseWriter, r *http.Request) {})
	defer stop()

	req := httptest.NewRequest(http.MethodPost, "/api/bookings/create", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.CreateBooking(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int32(0), calls.Load())
}

func TestCreateBookingRejectsBusinessRole(t *testing.T) {
	h, calls, stop := newBookingHandler(t, func(w http.ResponseWriter, r *http.Request) {})
	defer stop()
	h.Users.SetActiveUser(&usermodel.User{ID: "b1", Name: "Cuts", Role: usermodel.RoleBusiness})

	req := httptest.NewRequest(http.MethodPost, "/api/bookings/create", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.CreateBooking(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, int32(0), calls.Load())
}

func TestCreateBookingHappyPath(t *testing.T) {
	h, calls, stop := newBookingHandler(t, func(w http.ResponseWriter, r *http.Request) {
		var in bookingmodel.CreateBookingInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "u1", in.ClientID)

		json.NewEncoder(w).Encode(bookingmodel.Booking{
			ID:       "b1",
			Client:   bookingmodel.UserRef{ID: in.ClientID},
			Business: bookingmodel.UserRef{ID: in.BusinessID},
			StartAt:  in.StartAt,
			EndAt:    in.EndAt,
			Status:   bookingmodel.StatusActive,
		})
	})
	defer stop()
	activeClient(h)

	body := `{"businessId":"biz-1","startDate":"2025-03-10","startTime":"09:00","endDate":"2025-03-10","endTime":"10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/create", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateBooking(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int32(1), calls.Load())

	var created bookingmodel.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "b1", created.ID)
	assert.Equal(t, bookingmodel.StatusActive, created.Status)
}

func TestCreateBookingSurfacesConflictMessage(t *testing.T) {
	h, _, stop := newBookingHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	defer stop()
	activeClient(h)

	body := `{"businessId":"biz-1","startDate":"2025-03-10","startTime":"09:00","endDate":"2025-03-10","endTime":"10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/create", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateBooking(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Time slot already booked", resp["error"])
}

func TestDashboardWithoutActiveUser(t *testing.T) {
	h, calls, stop := newBookingHandler(t, func(w http.ResponseWriter, r *http.Request) {})
	defer stop()

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()

	h.Dashboard(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(0), calls.Load(), "no fetch without an acting user")

	var resp struct {
		State    string `json:"state"`
		Subtitle string `json:"subtitle"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "empty", resp.State)
	assert.Equal(t, "Please select or create a user to see bookings.", resp.Subtitle)
}

func TestUpdateBookingAllowsMissingBusiness(t *testing.T) {
	h, _, stop := newBookingHandler(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		json.NewEncoder(w).Encode(bookingmodel.Booking{ID: "b1", Status: bookingmodel.StatusActive})
	})
	defer stop()

	body := `{"startDate":"2025-03-10","startTime":"11:00","endDate":"2025-03-10","endTime":"12:00"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/bookings/update?id=b1", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.UpdateBooking(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
