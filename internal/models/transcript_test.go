// ABOUTME: Tests for transcript model helpers
// ABOUTME: Verifies snippet joining

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscript_Text(t *testing.T) {
	tests := []struct {
		name     string
		snippets []Snippet
		want     string
	}{
		{"no snippets", nil, ""},
		{"single snippet", []Snippet{{Text: "hello"}}, "hello"},
		{
			"joins with single spaces",
			[]Snippet{{Text: "hello", Start: 0}, {Text: "there", Start: 1.2}, {Text: "world", Start: 2.5}},
			"hello there world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Transcript{Snippets: tt.snippets}
			assert.Equal(t, tt.want, tr.Text())
		})
	}
}
