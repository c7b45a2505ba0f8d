package store

import (
	"context"
	"sync"

	"meetnote/internal/booking/model"
	"meetnote/internal/booking/repository"
	"meetnote/pkg/api"
)

// State is the booking slice for the current page context. The collection is
// a cache of the remote source of truth; it matches the last successful
// server response for the affected entities and nothing stronger.
type State struct {
	Bookings  []model.Booking
	IsLoading bool
	Error     string
}

// BookingStore owns the in-memory booking list plus request status flags.
// IsLoading flips true at request start and false at request end,
// unconditionally: overlapping actions are not serialized, and whichever
// completes last wins. That race is accepted, not arbitrated.
type BookingStore struct {
	repo *repository.BookingRepository

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

func NewBookingStore(repo *repository.BookingRepository) *BookingStore {
	return &BookingStore{
		repo: repo,
		subs: make(map[int]func(State)),
	}
}

func (s *BookingStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *BookingStore) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *BookingStore) set(update func(*State)) {
	s.mu.Lock()
	update(&s.state)
	snap := s.snapshotLocked()
	listeners := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func (s *BookingStore) snapshotLocked() State {
	snap := s.state
	snap.Bookings = append([]model.Booking(nil), s.state.Bookings...)
	return snap
}

// FetchBookings replaces the whole collection with the server's result set
// for the filter. A failed fetch keeps the stale collection in place and
// records the error instead; transient failures never wipe data.
func (s *BookingStore) FetchBookings(ctx context.Context, filter model.FetchFilter) {
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		s.set(func(st *State) {
			st.IsLoading = false
			st.Error = errorMessage(err, "Failed to fetch bookings")
		})
		return
	}

	s.set(func(st *State) {
		st.Bookings = bookings
		st.IsLoading = false
	})
}

// CreateBooking posts the booking and sort-merges the result into the local
// collection so list views stay chronological. Returns nil on failure.
func (s *BookingStore) CreateBooking(ctx context.Context, input model.CreateBookingInput) *model.Booking {
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	created, err := s.repo.Create(ctx, input)
	if err != nil {
		s.set(func(st *State) {
			st.IsLoading = false
			st.Error = errorMessage(err, "Failed to create booking")
		})
		return nil
	}

	s.set(func(st *State) {
		st.Bookings = applyCreate(st.Bookings, *created)
		st.IsLoading = false
	})
	return created
}

func (s *BookingStore) UpdateBooking(ctx context.Context, id string, input model.UpdateBookingInput) *model.Booking {
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	updated, err := s.repo.Update(ctx, id, input)
	if err != nil {
		s.set(func(st *State) {
			st.IsLoading = false
			st.Error = errorMessage(err, "Failed to update booking")
		})
		return nil
	}

	s.set(func(st *State) {
		st.Bookings = applyUpdate(st.Bookings, *updated)
		st.IsLoading = false
	})
	return updated
}

// CancelBooking flips the booking to canceled via its transition endpoint.
// The entity stays in the collection.
func (s *BookingStore) CancelBooking(ctx context.Context, id string) bool {
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	canceled, err := s.repo.Cancel(ctx, id)
	if err != nil {
		s.set(func(st *State) {
			st.IsLoading = false
			st.Error = errorMessage(err, "Failed to cancel booking")
		})
		return false
	}

	s.set(func(st *State) {
		st.Bookings = applyCancel(st.Bookings, *canceled)
		st.IsLoading = false
	})
	return true
}

func (s *BookingStore) DeleteBooking(ctx context.Context, id string) bool {
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	if err := s.repo.Delete(ctx, id); err != nil {
		s.set(func(st *State) {
			st.IsLoading = false
			st.Error = errorMessage(err, "Failed to delete booking")
		})
		return false
	}

	s.set(func(st *State) {
		st.Bookings = applyDelete(st.Bookings, id)
		st.IsLoading = false
	})
	return true
}

// Clear resets the slice, e.g. when the acting user changes.
func (s *BookingStore) Clear() {
	s.set(func(st *State) {
		*st = State{}
	})
}

func errorMessage(err error, fallback string) string {
	if reqErr, ok := err.(*api.RequestError); ok {
		return reqErr.Message
	}
	return fallback
}
