package view

import (
	"meetnote/internal/note/model"
	"meetnote/internal/note/store"
)

type BranchState string

const (
	StateLoading   BranchState = "loading"
	StateError     BranchState = "error"
	StateEmpty     BranchState = "empty"
	StatePopulated BranchState = "populated"
)

// Pagination is the 1-based window the list footer renders.
type Pagination struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"totalPages"`
	HasPrev    bool `json:"hasPrev"`
	HasNext    bool `json:"hasNext"`
}

type ListView struct {
	State      BranchState  `json:"state"`
	Error      string       `json:"error,omitempty"`
	Notes      []model.Note `json:"notes"`
	Search     string       `json:"search,omitempty"`
	Tag        string       `json:"tag,omitempty"`
	Pagination Pagination   `json:"pagination"`
}

// BuildList derives the notes page view model from the note slice.
func BuildList(st store.State) ListView {
	v := ListView{
		Search:     st.Search,
		Tag:        string(st.Tag),
		Pagination: Window(st.Page, st.TotalPages),
	}

	switch {
	case st.IsLoading && len(st.Notes) == 0:
		v.State = StateLoading
	case st.Error != "":
		v.State = StateError
		v.Error = st.Error
	case len(st.Notes) == 0:
		v.State = StateEmpty
	default:
		v.State = StatePopulated
		v.Notes = st.Notes
	}
	return v
}

func Window(page, totalPages int) Pagination {
	if page < 1 {
		page = 1
	}
	return Pagination{
		Page:       page,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

// Categories returns the sidebar filter entries: the synthetic "All" plus
// the fixed tag enum.
func Categories() []string {
	out := make([]string, 0, len(model.Tags)+1)
	out = append(out, "All")
	for _, t := range model.Tags {
		out = append(out, string(t))
	}
	return out
}

// TagFromCategory maps a sidebar category back to a tag filter; "All" and
// unknown values mean no filter.
func TagFromCategory(category string) model.Tag {
	if category == "" || category == "All" {
		return ""
	}
	t := model.Tag(category)
	if !model.ValidTag(t) {
		return ""
	}
	return t
}
