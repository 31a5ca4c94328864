package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactFirstName(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		want     string
	}{
		{"two words", "Marcin Kowalski", "Marcin"},
		{"single word", "Cher", "Cher"},
		{"leading whitespace", "  Ada Lovelace", "Ada"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Contact{Name: tt.fullName}
			assert.Equal(t, tt.want, c.FirstName())
		})
	}
}
