package core

import (
	"fmt"
	"strings"
)

type (
	// TrackID is a provider-assigned track identifier.
	TrackID string
	// ArtistID is a provider-assigned artist identifier.
	ArtistID string
	// AlbumID is a provider-assigned album identifier.
	AlbumID string
)

type SearchType string

const (
	// SearchTypeAlbum scopes a search to albums
	SearchTypeAlbum SearchType = "album"
	// SearchTypeArtist scopes a search to artists
	SearchTypeArtist SearchType = "artist"
	// SearchTypeTrack scopes a search to tracks
	SearchTypeTrack SearchType = "track"
)

// Valid reports whether t is one of the supported search types.
func (t SearchType) Valid() bool {
	switch t {
	case SearchTypeAlbum, SearchTypeArtist, SearchTypeTrack:
		return true
	default:
		return false
	}
}

// ParseSearchType converts user input into a SearchType.
func ParseSearchType(s string) (SearchType, error) {
	t := SearchType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, s)
	}
	return t, nil
}

type SearchParam struct {
	Type  SearchType
	Query string
}

type Artist struct {
	ID   ArtistID
	Name string
}

type Album struct {
	ID   AlbumID
	Name string
}

// Track holds the first credited artist only.
type Track struct {
	ID     TrackID
	Name   string
	URI    string
	Artist Artist
}

// APIResponse is one of Track, Artist or Album.
type APIResponse interface {
	Kind() SearchType
	apiResponse()
}

func (Track) Kind() SearchType  { return SearchTypeTrack }
func (Artist) Kind() SearchType { return SearchTypeArtist }
func (Album) Kind() SearchType  { return SearchTypeAlbum }

func (Track) apiResponse()  {}
func (Artist) apiResponse() {}
func (Album) apiResponse()  {}
