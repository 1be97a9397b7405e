package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateSlug(t *testing.T) {
	c := &Core{}

	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Hello, World!", "hello-world"},
		{"How to train your dragon?", "how-to-train-your-dragon"},
		{"Multiple   Spaces", "multiple-spaces"},
		{"Trailing Punctuation...", "trailing-punctuation"},
		{"(Parens) [And] {Braces}", "parens-and-braces"},
		{"already-lowercase", "already-lowercase"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.CreateSlug(tt.title), "title %q", tt.title)
	}
}
