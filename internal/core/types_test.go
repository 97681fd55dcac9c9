package core

import (
	"errors"
	"testing"
)

func TestParseSearchType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected SearchType
		wantErr  bool
	}{
		{name: "album", input: "album", expected: SearchTypeAlbum},
		{name: "artist", input: "artist", expected: SearchTypeArtist},
		{name: "track", input: "track", expected: SearchTypeTrack},
		{name: "mixed case with spaces", input: "  Track ", expected: SearchTypeTrack},
		{name: "playlist not supported", input: "playlist", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSearchType(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedType) {
					t.Errorf("ParseSearchType(%q) error = %v, want ErrUnsupportedType", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSearchType(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseSearchType(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAPIResponse_Kind(t *testing.T) {
	tests := []struct {
		name     string
		response APIResponse
		expected SearchType
	}{
		{name: "track", response: Track{ID: "t1"}, expected: SearchTypeTrack},
		{name: "artist", response: Artist{ID: "a1"}, expected: SearchTypeArtist},
		{name: "album", response: Album{ID: "b1"}, expected: SearchTypeAlbum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.response.Kind(); got != tt.expected {
				t.Errorf("Kind() = %q, want %q", got, tt.expected)
			}
			if !tt.response.Kind().Valid() {
				t.Errorf("Kind() %q should be a valid search type", tt.response.Kind())
			}
		})
	}
}
