package spotify

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/zmb3/spotify/v2"

	"musicapi/internal/core"
)

// MaxResponseSize limits how much of a response body is read.
const MaxResponseSize = 5 << 20

// Transformer maps Spotify Web API payloads onto core entities. Each To* method accepts
// either a single-entity payload or a search payload, in which case the first item of
// the matching page is used.
type Transformer struct{}

var _ core.ResponseTransformer = (*Transformer)(nil)

func NewTransformer() *Transformer {
	return &Transformer{}
}

func (t *Transformer) FromType(resp *http.Response, kind core.SearchType) (core.APIResponse, error) {
	switch kind {
	case core.SearchTypeTrack:
		track, err := t.ToTrack(resp)
		if err != nil {
			return nil, err
		}
		return track, nil

	case core.SearchTypeAlbum:
		album, err := t.ToAlbum(resp)
		if err != nil {
			return nil, err
		}
		return album, nil

	case core.SearchTypeArtist:
		artist, err := t.ToArtist(resp)
		if err != nil {
			return nil, err
		}
		return artist, nil

	default:
		closeBody(resp)
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedType, kind)
	}
}

func (t *Transformer) ToAlbum(resp *http.Response) (core.Album, error) {
	body, err := readBody(resp)
	if err != nil {
		return core.Album{}, err
	}

	var page struct {
		Albums *spotify.SimpleAlbumPage `json:"albums"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return core.Album{}, malformed(err)
	}

	var album spotify.SimpleAlbum
	if page.Albums != nil {
		if len(page.Albums.Albums) == 0 {
			return core.Album{}, fmt.Errorf("%w: search returned no albums", core.ErrMalformedResponse)
		}
		album = page.Albums.Albums[0]
	} else if err := json.Unmarshal(body, &album); err != nil {
		return core.Album{}, malformed(err)
	}

	if album.ID == "" {
		return core.Album{}, fmt.Errorf("%w: album has no id", core.ErrMalformedResponse)
	}

	return core.Album{
		ID:   core.AlbumID(album.ID),
		Name: album.Name,
	}, nil
}

func (t *Transformer) ToArtist(resp *http.Response) (core.Artist, error) {
	body, err := readBody(resp)
	if err != nil {
		return core.Artist{}, err
	}

	var page struct {
		Artists *spotify.FullArtistPage `json:"artists"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return core.Artist{}, malformed(err)
	}

	var artist spotify.FullArtist
	if page.Artists != nil {
		if len(page.Artists.Artists) == 0 {
			return core.Artist{}, fmt.Errorf("%w: search returned no artists", core.ErrMalformedResponse)
		}
		artist = page.Artists.Artists[0]
	} else if err := json.Unmarshal(body, &artist); err != nil {
		return core.Artist{}, malformed(err)
	}

	return convertArtist(&artist.SimpleArtist)
}

func (t *Transformer) ToTrack(resp *http.Response) (core.Track, error) {
	body, err := readBody(resp)
	if err != nil {
		return core.Track{}, err
	}

	var page struct {
		Tracks *spotify.FullTrackPage `json:"tracks"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return core.Track{}, malformed(err)
	}

	var track spotify.FullTrack
	if page.Tracks != nil {
		if len(page.Tracks.Tracks) == 0 {
			return core.Track{}, fmt.Errorf("%w: search returned no tracks", core.ErrMalformedResponse)
		}
		track = page.Tracks.Tracks[0]
	} else if err := json.Unmarshal(body, &track); err != nil {
		return core.Track{}, malformed(err)
	}

	if track.ID == "" {
		return core.Track{}, fmt.Errorf("%w: track has no id", core.ErrMalformedResponse)
	}
	if len(track.Artists) == 0 {
		return core.Track{}, fmt.Errorf("%w: track %s has no artists", core.ErrMalformedResponse, track.ID)
	}

	artist, err := convertArtist(&track.Artists[0])
	if err != nil {
		return core.Track{}, err
	}

	return core.Track{
		ID:     core.TrackID(track.ID),
		Name:   track.Name,
		URI:    string(track.URI),
		Artist: artist,
	}, nil
}

func convertArtist(artist *spotify.SimpleArtist) (core.Artist, error) {
	if artist.ID == "" {
		return core.Artist{}, fmt.Errorf("%w: artist has no id", core.ErrMalformedResponse)
	}
	return core.Artist{
		ID:   core.ArtistID(artist.ID),
		Name: artist.Name,
	}, nil
}

// readBody consumes and closes the response body. The nil check runs before any parsing.
func readBody(resp *http.Response) ([]byte, error) {
	if resp == nil || resp.Body == nil {
		return nil, fmt.Errorf("%w: no response to transform", core.ErrMalformedResponse)
	}
	defer closeBody(resp)

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", core.ErrMalformedResponse, err)
	}
	return body, nil
}

func closeBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}

func malformed(err error) error {
	return fmt.Errorf("%w: %w", core.ErrMalformedResponse, err)
}
