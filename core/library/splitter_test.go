package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFieldDelimiterPriority(t *testing.T) {
	tests := []struct {
		name       string
		delimiters []string
		input      []string
		expected   []string
	}{
		{
			name:       "simple split on first delimiter",
			delimiters: []string{"/"},
			input:      []string{"X/Y"},
			expected:   []string{"X", "Y"},
		},
		{
			name:       "first delimiter wins even when later ones also match",
			delimiters: []string{"/", ";"},
			input:      []string{"A/B;C"},
			expected:   []string{"A", "B;C"},
		},
		{
			name:       "falls through to a later delimiter",
			delimiters: []string{"/", ";"},
			input:      []string{"A;B"},
			expected:   []string{"A", "B"},
		},
		{
			name:       "no delimiter yields the original field",
			delimiters: []string{"/", ";"},
			input:      []string{"Solo Artist"},
			expected:   []string{"Solo Artist"},
		},
		{
			name:       "already delimited field passes through unsplit",
			delimiters: []string{"/"},
			input:      []string{"X/Y", "Z"},
			expected:   []string{"X/Y", "Z"},
		},
		{
			name:       "empty field passes through",
			delimiters: []string{"/"},
			input:      nil,
			expected:   nil,
		},
		{
			name:       "multi-character delimiter",
			delimiters: []string{" feat. "},
			input:      []string{"A feat. B"},
			expected:   []string{"A", "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSplitter(tt.delimiters, nil, false)
			assert.Equal(t, tt.expected, s.SplitField(tt.input))
		})
	}
}

func TestSplitFieldExclusions(t *testing.T) {
	tests := []struct {
		name       string
		exclusions []string
		ignoreCase bool
		input      string
		expected   []string
	}{
		{
			name:       "exclusion straddling the delimiter survives intact",
			exclusions: []string{"AC/DC"},
			input:      "AC/DC feat. X/Y",
			expected:   []string{"AC/DC feat. X", "Y"},
		},
		{
			name:       "exclusion as the whole value never splits",
			exclusions: []string{"AC/DC"},
			input:      "AC/DC",
			expected:   []string{"AC/DC"},
		},
		{
			name:       "exclusion in the middle",
			exclusions: []string{"AC/DC"},
			input:      "X/AC/DC/Y",
			expected:   []string{"X", "AC/DC", "Y"},
		},
		{
			name:       "case-sensitive by default",
			exclusions: []string{"AC/DC"},
			input:      "ac/dc/Y",
			expected:   []string{"ac", "dc", "Y"},
		},
		{
			name:       "case-insensitive when configured",
			exclusions: []string{"AC/DC"},
			ignoreCase: true,
			input:      "ac/dc/Y",
			expected:   []string{"ac/dc", "Y"},
		},
		{
			name:       "overlapping exclusions resolve greedily left to right",
			exclusions: []string{"A/B", "B/C"},
			input:      "A/B/C",
			expected:   []string{"A/B", "C"},
		},
		{
			name:       "longest exclusion at a position wins",
			exclusions: []string{"A/B", "A/B/C"},
			input:      "A/B/C/D",
			expected:   []string{"A/B/C", "D"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSplitter([]string{"/"}, tt.exclusions, tt.ignoreCase)
			assert.Equal(t, tt.expected, s.SplitField([]string{tt.input}))
		})
	}
}
