package layout

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
		{
			name:     "whitespace only",
			input:    "   \n\t\n  ",
			expected: []string{},
		},
		{
			name:     "single line",
			input:    "John Doe",
			expected: []string{"John Doe"},
		},
		{
			name:     "trailing whitespace trimmed",
			input:    "John Doe   \nEngineer\t",
			expected: []string{"John Doe", "Engineer"},
		},
		{
			name:     "carriage returns trimmed",
			input:    "John Doe\r\nEngineer\r",
			expected: []string{"John Doe", "Engineer"},
		},
		{
			name:     "blank run collapsed",
			input:    "a\n\n\n\nb",
			expected: []string{"a", "", "b"},
		},
		{
			name:     "leading blank kept as single blank",
			input:    "\nJane Doe",
			expected: []string{"", "Jane Doe"},
		},
		{
			name:     "leading and trailing blank runs collapse to one each",
			input:    "\n\na\nb\n\n\n",
			expected: []string{"", "a", "b", ""},
		},
		{
			name:     "single blank preserved",
			input:    "a\n\nb",
			expected: []string{"a", "", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Normalize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"John Doe\n\n\nEXPERIENCE\ntext",
		"  \na\n\n\nb\n  ",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(strings.Join(once, "\n"))
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("normalization not stable for %q: %v vs %v", input, once, twice)
		}
	}
}
