package model

import (
	"errors"
	"strings"
	"time"
)

type Tag string

const (
	TagWork     Tag = "Work"
	TagPersonal Tag = "Personal"
	TagMeeting  Tag = "Meeting"
	TagShopping Tag = "Shopping"
	TagTodo     Tag = "Todo"
)

// Tags is the fixed tag enum in display order.
var Tags = []Tag{TagWork, TagPersonal, TagMeeting, TagShopping, TagTodo}

func ValidTag(t Tag) bool {
	for _, tag := range Tags {
		if tag == t {
			return true
		}
	}
	return false
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tag       Tag       `json:"tag"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

type NewNoteData struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
	Tag     Tag    `json:"tag"`
}

// Validate mirrors the note form rules; failures resolve locally and never
// reach the network.
func (d NewNoteData) Validate() error {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return errors.New("Title is required")
	}
	if len(title) < 3 {
		return errors.New("Title must be at least 3 characters")
	}
	if len(title) > 50 {
		return errors.New("Title must be at most 50 characters")
	}
	if len(d.Content) > 500 {
		return errors.New("Content must be at most 500 characters")
	}
	if !ValidTag(d.Tag) {
		return errors.New("Tag is required")
	}
	return nil
}

// ListResponse is the paginated listing envelope the notes backend returns.
type ListResponse struct {
	Notes      []Note `json:"notes"`
	TotalPages int    `json:"totalPages"`
}
