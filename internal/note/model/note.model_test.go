package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNoteDataValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    NewNoteData
		wantErr string
	}{
		{"valid", NewNoteData{Title: "Plan", Tag: TagWork}, ""},
		{"title at min", NewNoteData{Title: "abc", Tag: TagTodo}, ""},
		{"title at max", NewNoteData{Title: strings.Repeat("a", 50), Tag: TagWork}, ""},
		{"content at max", NewNoteData{Title: "Plan", Content: strings.Repeat("x", 500), Tag: TagWork}, ""},
		{"missing title", NewNoteData{Tag: TagWork}, "Title is required"},
		{"blank title", NewNoteData{Title: "   ", Tag: TagWork}, "Title is required"},
		{"title too short", NewNoteData{Title: "ab", Tag: TagWork}, "Title must be at least 3 characters"},
		{"title too long", NewNoteData{Title: strings.Repeat("a", 51), Tag: TagWork}, "Title must be at most 50 characters"},
		{"content too long", NewNoteData{Title: "Plan", Content: strings.Repeat("x", 501), Tag: TagWork}, "Content must be at most 500 characters"},
		{"missing tag", NewNoteData{Title: "Plan"}, "Tag is required"},
		{"unknown tag", NewNoteData{Title: "Plan", Tag: "Errands"}, "Tag is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidTag(t *testing.T) {
	for _, tag := range Tags {
		assert.True(t, ValidTag(tag))
	}
	assert.False(t, ValidTag(""))
	assert.False(t, ValidTag("work"), "tags are case-sensitive")
}
