package spotify

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"musicapi/internal/core"
)

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestTransformer_ToTrack(t *testing.T) {
	transformer := NewTransformer()

	resp := jsonResponse(`{"id":"t1","name":"Song","uri":"spotify:track:t1",` +
		`"artists":[{"id":"a1","name":"Artist"},{"id":"a2","name":"Other"}]}`)

	track, err := transformer.ToTrack(resp)
	if err != nil {
		t.Fatalf("ToTrack() unexpected error: %v", err)
	}

	expected := core.Track{
		ID:     "t1",
		Name:   "Song",
		URI:    "spotify:track:t1",
		Artist: core.Artist{ID: "a1", Name: "Artist"},
	}
	if track != expected {
		t.Errorf("ToTrack() = %+v, want %+v", track, expected)
	}
}

func TestTransformer_SearchPayloadUsesFirstItem(t *testing.T) {
	transformer := NewTransformer()

	tests := []struct {
		name     string
		kind     core.SearchType
		body     string
		expected core.APIResponse
	}{
		{
			name: "Tracks page",
			kind: core.SearchTypeTrack,
			body: `{"tracks":{"total":2,"items":[` +
				`{"id":"t1","name":"Dreams","uri":"spotify:track:t1","artists":[{"id":"a1","name":"Fleetwood Mac"}]},` +
				`{"id":"t2","name":"Dreams (Remastered)","uri":"spotify:track:t2","artists":[{"id":"a1","name":"Fleetwood Mac"}]}]}}`,
			expected: core.Track{
				ID:     "t1",
				Name:   "Dreams",
				URI:    "spotify:track:t1",
				Artist: core.Artist{ID: "a1", Name: "Fleetwood Mac"},
			},
		},
		{
			name:     "Albums page",
			kind:     core.SearchTypeAlbum,
			body:     `{"albums":{"items":[{"id":"b1","name":"Rumours"},{"id":"b2","name":"Tusk"}]}}`,
			expected: core.Album{ID: "b1", Name: "Rumours"},
		},
		{
			name:     "Artists page",
			kind:     core.SearchTypeArtist,
			body:     `{"artists":{"items":[{"id":"a1","name":"Fleetwood Mac","genres":["rock"]}]}}`,
			expected: core.Artist{ID: "a1", Name: "Fleetwood Mac"},
		},
		{
			name:     "Entity payload through FromType",
			kind:     core.SearchTypeAlbum,
			body:     `{"id":"b1","name":"Rumours","tracks":{"items":[{"id":"t1","name":"Second Hand News"}]}}`,
			expected: core.Album{ID: "b1", Name: "Rumours"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := transformer.FromType(jsonResponse(tt.body), tt.kind)
			if err != nil {
				t.Fatalf("FromType() unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("FromType() = %+v, want %+v", result, tt.expected)
			}
			if result.Kind() != tt.kind {
				t.Errorf("FromType() kind = %q, want %q", result.Kind(), tt.kind)
			}
		})
	}
}

func TestTransformer_AbsentResponse(t *testing.T) {
	transformer := NewTransformer()

	calls := map[string]func() error{
		"ToTrack":  func() error { _, err := transformer.ToTrack(nil); return err },
		"ToAlbum":  func() error { _, err := transformer.ToAlbum(nil); return err },
		"ToArtist": func() error { _, err := transformer.ToArtist(nil); return err },
		"FromType": func() error { _, err := transformer.FromType(nil, core.SearchTypeTrack); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			if err := call(); !errors.Is(err, core.ErrMalformedResponse) {
				t.Errorf("%s(nil) error = %v, want ErrMalformedResponse", name, err)
			}
		})
	}
}

func TestTransformer_MalformedPayloads(t *testing.T) {
	transformer := NewTransformer()

	tests := []struct {
		name string
		kind core.SearchType
		body string
	}{
		{name: "Invalid JSON", kind: core.SearchTypeTrack, body: `{"id":`},
		{name: "JSON array", kind: core.SearchTypeAlbum, body: `[{"id":"b1"}]`},
		{name: "Empty body", kind: core.SearchTypeArtist, body: ``},
		{name: "Track without artists", kind: core.SearchTypeTrack, body: `{"id":"t1","name":"Song","artists":[]}`},
		{name: "Track without id", kind: core.SearchTypeTrack, body: `{"name":"Song","artists":[{"id":"a1","name":"A"}]}`},
		{name: "Album without id", kind: core.SearchTypeAlbum, body: `{"name":"Rumours"}`},
		{name: "Artist without id", kind: core.SearchTypeArtist, body: `{"name":"Fleetwood Mac"}`},
		{name: "Empty track search", kind: core.SearchTypeTrack, body: `{"tracks":{"items":[]}}`},
		{name: "Empty album search", kind: core.SearchTypeAlbum, body: `{"albums":{"items":[]}}`},
		{name: "Empty artist search", kind: core.SearchTypeArtist, body: `{"artists":{"items":[]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := transformer.FromType(jsonResponse(tt.body), tt.kind)
			if !errors.Is(err, core.ErrMalformedResponse) {
				t.Errorf("FromType() error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestTransformer_FromType_UnsupportedType(t *testing.T) {
	transformer := NewTransformer()

	_, err := transformer.FromType(jsonResponse(`{"id":"p1"}`), "playlist")
	if !errors.Is(err, core.ErrUnsupportedType) {
		t.Errorf("FromType() error = %v, want ErrUnsupportedType", err)
	}
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestTransformer_ClosesBody(t *testing.T) {
	body := &closeTracker{Reader: strings.NewReader(`{"id":"a1","name":"Artist"}`)}
	resp := &http.Response{StatusCode: http.StatusOK, Body: body}

	if _, err := NewTransformer().ToArtist(resp); err != nil {
		t.Fatalf("ToArtist() unexpected error: %v", err)
	}
	if !body.closed {
		t.Error("ToArtist() did not close the response body")
	}
}
