package store

import (
	"context"
	"sync"

	"meetnote/internal/auth/repository"
	usermodel "meetnote/internal/user/model"
	"meetnote/pkg/api"
)

// State holds the authenticated principal for the notes app. Unlike the
// booking app's active-user pointer, this reflects a real server session;
// the cookie relay keeps the browser and backend in sync.
type State struct {
	User      *usermodel.User
	IsLoading bool
	Error     string
}

type SessionStore struct {
	repo *repository.AuthRepository

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

func NewSessionStore(repo *repository.AuthRepository) *SessionStore {
	return &SessionStore{
		repo: repo,
		subs: make(map[int]func(State)),
	}
}

func (s *SessionStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *SessionStore) Subscribe(fn func(State)) func() {
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

func (s *SessionStore) set(update func(*State)) {
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

func (s *SessionStore) snapshotLocked() State {
	snap := s.state
	if s.state.User != nil {
		u := *s.state.User
		snap.User = &u
	}
	return snap
}

// SetUser records the principal after the relay handler completed a
// login/register exchange.
func (s *SessionStore) SetUser(user *usermodel.User) {
	s.set(func(st *State) {
		st.User = user
		st.Error = ""
	})
}

// Clear drops the principal after a server-backed logout.
func (s *SessionStore) Clear() {
	s.set(func(st *State) {
		st.User = nil
		st.Error = ""
	})
}

// CheckSession asks the backend whether the forwarded cookies still name a
// live session. A dead session clears the cached principal.
func (s *SessionStore) CheckSession(ctx context.Context) bool {
	ok, err := s.repo.CheckSession(ctx)
	if err != nil || !ok {
		s.set(func(st *State) {
			st.User = nil
		})
		return false
	}
	return true
}

func (s *SessionStore) FetchMe(ctx context.Context) *usermodel.User {
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	me, err := s.repo.Me(ctx)
	if err != nil {
		s.set(func(st *State) {
			st.IsLoading = false
			st.Error = errorMessage(err, "Failed to load profile")
		})
		return nil
	}

	s.set(func(st *State) {
		st.User = me
		st.IsLoading = false
	})
	return me
}

func (s *SessionStore) UpdateMe(ctx context.Context, input usermodel.UpdateUserInput) *usermodel.User {
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	me, err := s.repo.UpdateMe(ctx, input)
	if err != nil {
		s.set(func(st *State) {
			st.IsLoading = false
			st.Error = errorMessage(err, "Failed to update profile")
		})
		return nil
	}

	s.set(func(st *State) {
		st.User = me
		st.IsLoading = false
	})
	return me
}

func errorMessage(err error, fallback string) string {
	if reqErr, ok := err.(*api.RequestError); ok {
		return reqErr.Message
	}
	return fallback
}
