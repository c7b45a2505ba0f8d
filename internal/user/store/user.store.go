package store

import (
	"context"
	"sync"

	"meetnote/internal/user/model"
	"meetnote/internal/user/repository"
	"meetnote/pkg/api"
)

// State is the user slice: the cached user list plus the single active-user
// pointer that stands in for authentication in the booking app.
type State struct {
	Users      []model.User
	ActiveUser *model.User
	IsLoading  bool
	Error      string
}

// UserStore owns the user slice. All writes funnel through set, so
// overlapping actions race on a last-write-wins basis rather than
// interleaving partial updates.
type UserStore struct {
	repo *repository.UserRepository

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

func NewUserStore(repo *repository.UserRepository) *UserStore {
	return &UserStore{
		repo: repo,
		subs: make(map[int]func(State)),
	}
}

// State returns a snapshot; the slice is copied so callers cannot mutate the
// store's cache.
func (s *UserStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to run after every state change. The returned
// function unsubscribes.
func (s *UserStore) Subscribe(fn func(State)) func() {
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

func (s *UserStore) set(update func(*State)) {
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

func (s *UserStore) snapshotLocked() State {
	snap := s.state
	snap.Users = append([]model.User(nil), s.state.Users...)
	if s.state.ActiveUser != nil {
		u := *s.state.ActiveUser
		snap.ActiveUser = &u
	}
	return snap
}

// SetActiveUser is a pure local assignment; it also clears any stale error.
func (s *UserStore) SetActiveUser(user *model.User) {
	s.set(func(st *State) {
		st.ActiveUser = user
		st.Error = ""
	})
}

// Logout clears the acting identity. The booking app has no server session
// to invalidate, so this never touches the network.
func (s *UserStore) Logout() {
	s.set(func(st *State) {
		st.ActiveUser = nil
		st.Error = ""
	})
}

func (s *UserStore) FetchUsers(ctx context.Context, filter model.FetchFilter) {
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	users, err := s.repo.List(ctx, filter)
	if err != nil {
		s.set(func(st *State) {
			st.IsLoading = false
			st.Error = errorMessage(err, "Failed to fetch users")
		})
		return
	}

	s.set(func(st *State) {
		st.Users = users
		st.IsLoading = false
	})
}

// FetchBusinesses loads the business listing endpoint used by the booking
// form dropdown. The result replaces the user list like any other fetch.
func (s *UserStore) FetchBusinesses(ctx context.Context) {
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	businesses, err := s.repo.Businesses(ctx)
	if err != nil {
		s.set(func(st *State) {
			st.IsLoading = false
			st.Error = errorMessage(err, "Failed to fetch businesses")
		})
		return
	}

	s.set(func(st *State) {
		st.Users = businesses
		st.IsLoading = false
	})
}

// CreateUser creates and immediately promotes the new user to active:
// sign-up doubles as sign-in in this app.
func (s *UserStore) CreateUser(ctx context.Context, input model.CreateUserInput) *model.User {
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	created, err := s.repo.Create(ctx, input)
	if err != nil {
		s.set(func(st *State) {
			st.IsLoading = false
			st.Error = errorMessage(err, "Failed to create user")
		})
		return nil
	}

	s.set(func(st *State) {
		st.Users = append(st.Users, *created)
		st.ActiveUser = created
		st.IsLoading = false
	})
	return created
}

func (s *UserStore) UpdateUser(ctx context.Context, id string, input model.UpdateUserInput) *model.User {
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	updated, err := s.repo.Update(ctx, id, input)
	if err != nil {
		s.set(func(st *State) {
			st.IsLoading = false
			st.Error = errorMessage(err, "Failed to update user")
		})
		return nil
	}

	s.set(func(st *State) {
		for i := range st.Users {
			if st.Users[i].ID == id {
				st.Users[i] = *updated
			}
		}
		// keep profile views consistent when the active user was edited
		if st.ActiveUser != nil && st.ActiveUser.ID == id {
			st.ActiveUser = updated
		}
		st.IsLoading = false
	})
	return updated
}

func (s *UserStore) DeleteUser(ctx context.Context, id string) bool {
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	if err := s.repo.Delete(ctx, id); err != nil {
		s.set(func(st *State) {
			st.IsLoading = false
			st.Error = errorMessage(err, "Failed to delete user")
		})
		return false
	}

	s.set(func(st *State) {
		kept := st.Users[:0:0]
		for _, u := range st.Users {
			if u.ID != id {
				kept = append(kept, u)
			}
		}
		st.Users = kept
		// deleting the acting identity sends the UI back to the signed-out state
		if st.ActiveUser != nil && st.ActiveUser.ID == id {
			st.ActiveUser = nil
		}
		st.IsLoading = false
	})
	return true
}

func errorMessage(err error, fallback string) string {
	if reqErr, ok := err.(*api.RequestError); ok {
		return reqErr.Message
	}
	return fallback
}
