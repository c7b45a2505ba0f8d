package store

import (
	"context"
	"sync"
	"time"

	"meetnote/internal/note/model"
	"meetnote/internal/note/repository"
	"meetnote/pkg/api"
)

// searchDebounce coalesces rapid search-term changes into one request.
const searchDebounce = 250 * time.Millisecond

type State struct {
	Notes      []model.Note
	TotalPages int
	Page       int
	Search     string
	Tag        model.Tag
	IsLoading  bool
	Error      string
}

// NoteStore owns the paginated note list for the notes app. Like the other
// stores, overlapping fetches race last-write-wins; debouncing cuts down the
// redundant requests but does not order completions.
type NoteStore struct {
	repo *repository.NoteRepository

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int

	debounce struct {
		sync.Mutex
		timer *time.Timer
	}
}

func NewNoteStore(repo *repository.NoteRepository) *NoteStore {
	return &NoteStore{
		repo: repo,
		subs: make(map[int]func(State)),
	}
}

func (s *NoteStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *NoteStore) Subscribe(fn func(State)) func() {
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

func (s *NoteStore) set(update func(*State)) {
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

func (s *NoteStore) snapshotLocked() State {
	snap := s.state
	snap.Notes = append([]model.Note(nil), s.state.Notes...)
	return snap
}

// FetchNotes replaces the list with one page of server results. On failure
// the previous page stays visible and the error is recorded.
func (s *NoteStore) FetchNotes(ctx context.Context, search string, page int, tag model.Tag) {
	if page < 1 {
		page = 1
	}
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	res, err := s.repo.List(ctx, search, page, tag)
	if err != nil {
		s.set(func(st *State) {
			st.IsLoading = false
			st.Error = errorMessage(err, "Failed to load notes")
		})
		return
	}

	s.set(func(st *State) {
		st.Notes = res.Notes
		st.TotalPages = res.TotalPages
		st.Page = page
		st.Search = search
		st.Tag = tag
		st.IsLoading = false
	})
}

// SearchNotes debounces search-input changes: only the last term within the
// debounce window triggers a fetch, always back on page 1.
func (s *NoteStore) SearchNotes(ctx context.Context, search string, tag model.Tag) {
	s.debounce.Lock()
	defer s.debounce.Unlock()

	if s.debounce.timer != nil {
		s.debounce.timer.Stop()
	}
	s.debounce.timer = time.AfterFunc(searchDebounce, func() {
		s.FetchNotes(ctx, search, 1, tag)
	})
}

// CreateNote posts the note and returns it. The list is not spliced here:
// the calling page re-fetches after the create form closes.
func (s *NoteStore) CreateNote(ctx context.Context, data model.NewNoteData) *model.Note {
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	created, err := s.repo.Create(ctx, data)
	if err != nil {
		s.set(func(st *State) {
			st.IsLoading = false
			st.Error = errorMessage(err, "Failed to create note")
		})
		return nil
	}

	s.set(func(st *State) {
		st.IsLoading = false
	})
	return created
}

func (s *NoteStore) DeleteNote(ctx context.Context, id string) bool {
	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	if _, err := s.repo.Delete(ctx, id); err != nil {
		s.set(func(st *State) {
			st.IsLoading = false
			st.Error = errorMessage(err, "Failed to delete note")
		})
		return false
	}

	s.set(func(st *State) {
		kept := st.Notes[:0:0]
		for _, n := range st.Notes {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		st.Notes = kept
		st.IsLoading = false
	})
	return true
}

// FetchNoteByID loads a single note for the details view without touching
// the cached list.
func (s *NoteStore) FetchNoteByID(ctx context.Context, id string) *model.Note {
	note, err := s.repo.Get(ctx, id)
	if err != nil {
		s.set(func(st *State) {
			st.Error = errorMessage(err, "Failed to load note")
		})
		return nil
	}
	return note
}

func errorMessage(err error, fallback string) string {
	if reqErr, ok := err.(*api.RequestError); ok {
		return reqErr.Message
	}
	return fallback
}
