package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFormValidate(t *testing.T) {
	tests := []struct {
		name    string
		form    UserForm
		wantErr string
	}{
		{"valid", UserForm{Name: "Ann", Email: "ann@x.io"}, ""},
		{"trims whitespace", UserForm{Name: "  Ann  ", Email: " ann@x.io "}, ""},
		{"name at limit", UserForm{Name: "Exactly8", Email: "a@b.co"}, ""},
		{"missing name", UserForm{Email: "ann@x.io"}, "Name is required."},
		{"blank name", UserForm{Name: "   ", Email: "ann@x.io"}, "Name is required."},
		{"name too long", UserForm{Name: "Annabelle", Email: "ann@x.io"}, "Name must be max 8 characters."},
		{"missing email", UserForm{Name: "Ann"}, "Email is required."},
		{"email no at", UserForm{Name: "Ann", Email: "annx.io"}, "Email is not valid."},
		{"email no domain dot", UserForm{Name: "Ann", Email: "ann@xio"}, "Email is not valid."},
		{"email with space", UserForm{Name: "Ann", Email: "a nn@x.io"}, "Email is not valid."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
