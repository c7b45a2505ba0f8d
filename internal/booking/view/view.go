package view

import (
	"fmt"
	"time"

	"meetnote/internal/booking/model"
	"meetnote/internal/booking/store"
	usermodel "meetnote/internal/user/model"
)

// BranchState is the three-way branch every data-bearing view implements
// (plus empty, which views treat as its own rendering path).
type BranchState string

const (
	StateLoading   BranchState = "loading"
	StateError     BranchState = "error"
	StateEmpty     BranchState = "empty"
	StatePopulated BranchState = "populated"
)

// Card is one booking row resolved for display: the "other" party depends on
// which side the active user is on, and the action affordances are
// role-gated here in the view. The store and adapter never check roles;
// authorization is the backend's job.
type Card struct {
	ID         string       `json:"id"`
	PartyName  string       `json:"partyName"`
	PartyEmail string       `json:"partyEmail,omitempty"`
	StartAt    time.Time    `json:"startAt"`
	EndAt      time.Time    `json:"endAt"`
	Notes      string       `json:"notes,omitempty"`
	Status     model.Status `json:"status"`
	CanEdit    bool         `json:"canEdit"`
	CanCancel  bool         `json:"canCancel"`
	CanDelete  bool         `json:"canDelete"`
}

type Dashboard struct {
	State    BranchState `json:"state"`
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle,omitempty"`
	Error    string      `json:"error,omitempty"`
	Cards    []Card      `json:"cards"`
}

// FilterFor picks the server-side filter for the acting role: clients see
// their own bookings, businesses see bookings made with them.
func FilterFor(active *usermodel.User) model.FetchFilter {
	if active == nil {
		return model.FetchFilter{}
	}
	if active.Role == usermodel.RoleBusiness {
		return model.FetchFilter{BusinessID: active.ID}
	}
	return model.FetchFilter{ClientID: active.ID}
}

// BuildDashboard derives the dashboard view model from the booking slice and
// the acting user.
func BuildDashboard(st store.State, active *usermodel.User) Dashboard {
	if active == nil {
		return Dashboard{
			State:    StateEmpty,
			Title:    "Dashboard",
			Subtitle: "Please select or create a user to see bookings.",
		}
	}

	isClient := active.Role == usermodel.RoleClient
	d := Dashboard{
		Title:    "Bookings for my business",
		Subtitle: fmt.Sprintf("Active user: %s (%s)", active.Name, active.Role),
	}
	if isClient {
		d.Title = "My bookings"
	}

	switch {
	case st.IsLoading:
		d.State = StateLoading
	case st.Error != "":
		d.State = StateError
		d.Error = st.Error
	case len(st.Bookings) == 0:
		d.State = StateEmpty
	default:
		d.State = StatePopulated
		d.Cards = make([]Card, 0, len(st.Bookings))
		for _, b := range st.Bookings {
			d.Cards = append(d.Cards, buildCard(b, isClient))
		}
	}
	return d
}

func buildCard(b model.Booking, isClientView bool) Card {
	other := b.Client
	if isClientView {
		other = b.Business
	}

	c := Card{
		ID:        b.ID,
		PartyName: "—",
		StartAt:   b.StartAt,
		EndAt:     b.EndAt,
		Notes:     b.Notes,
		Status:    b.Status,
	}
	if other.User != nil {
		c.PartyName = other.User.Name
		c.PartyEmail = other.User.Email
	} else if other.ID != "" {
		c.PartyName = other.ID
	}

	active := b.Status == model.StatusActive
	// clients reschedule their own active bookings; businesses cancel active
	// ones and may clear out canceled ones
	c.CanEdit = isClientView && active
	c.CanCancel = !isClientView && active
	c.CanDelete = !isClientView && !active
	return c
}

// Option is a generic dropdown entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// BusinessOptions shapes the business list for the booking form dropdown.
func BusinessOptions(businesses []usermodel.User) []Option {
	opts := make([]Option, 0, len(businesses))
	for _, b := range businesses {
		opts = append(opts, Option{Value: b.ID, Label: b.Name})
	}
	return opts
}

// TimeOptions builds the HH:mm dropdown values covering a full day.
func TimeOptions(stepMinutes int) []Option {
	if stepMinutes <= 0 {
		stepMinutes = 30
	}
	var opts []Option
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m += stepMinutes {
			v := fmt.Sprintf("%02d:%02d", h, m)
			opts = append(opts, Option{Value: v, Label: v})
		}
	}
	return opts
}
