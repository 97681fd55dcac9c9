package core

import (
	"context"
	"errors"
	"net/http"
)

var (
	// ErrMissingCredential is returned when no bearer token is configured.
	ErrMissingCredential = errors.New("no spotify API token")
	// ErrInvalidURL is returned when a URL is not a recognized share link.
	ErrInvalidURL = errors.New("invalid url")
	// ErrMalformedResponse is returned when a provider response is absent or cannot be mapped.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrUnsupportedType is returned for search types other than album, artist and track.
	ErrUnsupportedType = errors.New("unsupported search type")
)

// MusicAPI is implemented once per streaming provider.
type MusicAPI interface {
	// Search returns the first match for param.Query scoped to param.Type.
	Search(ctx context.Context, param SearchParam) (APIResponse, error)

	// FromURL resolves a provider share link to the entity it addresses.
	FromURL(ctx context.Context, url string) (APIResponse, error)

	// Get performs an authenticated GET against the provider API.
	Get(ctx context.Context, url string) (*http.Response, error)

	GetTrack(ctx context.Context, id TrackID) (Track, error)
	GetArtist(ctx context.Context, id ArtistID) (Artist, error)
	GetAlbum(ctx context.Context, id AlbumID) (Album, error)
}

// ResponseTransformer maps raw provider responses onto normalized entities.
// A nil response means the upstream request failed and yields ErrMalformedResponse.
type ResponseTransformer interface {
	FromType(resp *http.Response, t SearchType) (APIResponse, error)
	ToAlbum(resp *http.Response) (Album, error)
	ToArtist(resp *http.Response) (Artist, error)
	ToTrack(resp *http.Response) (Track, error)
}
