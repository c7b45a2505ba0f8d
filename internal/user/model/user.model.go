package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

type Role string

const (
	RoleClient   Role = "client"
	RoleBusiness Role = "business"
)

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// UpdateUserInput patches only the provided fields.
type UpdateUserInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

type FetchFilter struct {
	Role Role
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserForm carries the raw sign-up / profile-edit fields. Validation runs
// locally; an invalid form never reaches the network.
type UserForm struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (f UserForm) Validate() error {
	name := strings.TrimSpace(f.Name)
	email := strings.TrimSpace(f.Email)

	if name == "" {
		return errors.New("Name is required.")
	}
	if len(name) > 8 {
		return errors.New("Name must be max 8 characters.")
	}

	if email == "" {
		return errors.New("Email is required.")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("Email is not valid.")
	}

	return nil
}
