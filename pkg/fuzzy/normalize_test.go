package fuzzy

import (
	"testing"
)

func TestNormalizer_NormalizeQuery(t *testing.T) {
	normalizer := NewNormalizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Plain query",
			input:    "Rumours",
			expected: "Rumours",
		},
		{
			name:     "Surrounding whitespace",
			input:    "  Rumours \n",
			expected: "Rumours",
		},
		{
			name:     "Internal whitespace runs",
			input:    "Go   Your\tOwn Way",
			expected: "Go Your Own Way",
		},
		{
			name:     "Decomposed accent is composed",
			input:    "Beyonce\u0301",
			expected: "Beyonc\u00e9",
		},
		{
			name:     "Case and punctuation kept",
			input:    "AC/DC: Back In Black",
			expected: "AC/DC: Back In Black",
		},
		{
			name:     "Empty",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizer.NormalizeQuery(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeQuery() = %q, want %q", result, tt.expected)
			}
		})
	}
}
