package model

import (
	"encoding/json"
	"time"

	usermodel "meetnote/internal/user/model"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
)

type Booking struct {
	ID        string    `json:"_id"`
	Client    UserRef   `json:"clientId"`
	Business  UserRef   `json:"businessId"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Notes     string    `json:"notes,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// UserRef is either a bare user ID or a populated user object, depending on
// whether the backend expanded the reference.
type UserRef struct {
	ID   string
	User *usermodel.User
}

func (r *UserRef) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &r.ID)
	}
	var u usermodel.User
	if err := json.Unmarshal(b, &u); err != nil {
		return err
	}
	r.ID = u.ID
	r.User = &u
	return nil
}

func (r UserRef) MarshalJSON() ([]byte, error) {
	if r.User != nil {
		return json.Marshal(r.User)
	}
	return json.Marshal(r.ID)
}

type CreateBookingInput struct {
	ClientID   string    `json:"clientId"`
	BusinessID string    `json:"businessId"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
	Notes      string    `json:"notes,omitempty"`
}

// UpdateBookingInput patches the editable fields only; status transitions go
// through the dedicated cancel endpoint.
type UpdateBookingInput struct {
	StartAt *time.Time `json:"startAt,omitempty"`
	EndAt   *time.Time `json:"endAt,omitempty"`
	Notes   *string    `json:"notes,omitempty"`
}

// FetchFilter narrows the listing server-side to one party.
type FetchFilter struct {
	ClientID   string
	BusinessID string
}
