// Package spotify provides the Spotify Web API adapter: share link resolution, search and entity lookup.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"musicapi/internal/core"
	"musicapi/pkg/fuzzy"
)

const (
	// statusTransportError labels requests that never produced an HTTP status
	statusTransportError = "error"
	// endpointOther labels requests outside the configured API base URL
	endpointOther = "other"
)

var (
	trackURLRegex  = regexp.MustCompile(`https://open\.spotify\.com/track/(?P<id>[a-zA-Z0-9]+)`)
	albumURLRegex  = regexp.MustCompile(`https://open\.spotify\.com/album/(?P<id>[a-zA-Z0-9]+)`)
	artistURLRegex = regexp.MustCompile(`https://open\.spotify\.com/artist/(?P<id>[a-zA-Z0-9]+)`)
)

// RequestObserver receives one call per upstream GET.
type RequestObserver interface {
	ObserveRequest(endpoint, status string, duration time.Duration)
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTokenSource replaces the environment-backed token source.
func WithTokenSource(tokens oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithObserver reports every upstream request to observer.
func WithObserver(observer RequestObserver) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// Client is safe for concurrent use; nothing is mutated after NewClient returns.
type Client struct {
	logger      *zap.Logger
	httpClient  *http.Client
	tokens      oauth2.TokenSource
	transformer core.ResponseTransformer
	normalizer  *fuzzy.Normalizer
	observer    RequestObserver
	apiURL      string

	trackRegex  *regexp.Regexp
	albumRegex  *regexp.Regexp
	artistRegex *regexp.Regexp
}

var _ core.MusicAPI = (*Client)(nil)

func NewClient(config *core.SpotifyConfig, logger *zap.Logger, opts ...Option) *Client {
	apiURL := core.DefaultAPIURL
	if config != nil && config.APIURL != "" {
		apiURL = config.APIURL
	}

	c := &Client{
		logger:      logger,
		httpClient:  &http.Client{},
		tokens:      NewEnvTokenSource(nil),
		transformer: NewTransformer(),
		normalizer:  fuzzy.NewNormalizer(),
		apiURL:      strings.TrimSuffix(apiURL, "/"),
		trackRegex:  trackURLRegex,
		albumRegex:  albumURLRegex,
		artistRegex: artistURLRegex,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Search returns the first result of the given type for param.Query.
func (c *Client) Search(ctx context.Context, param core.SearchParam) (core.APIResponse, error) {
	if !param.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedType, param.Type)
	}

	query := c.normalizer.NormalizeQuery(param.Query)

	resp, err := c.fetch(ctx, param.Type, c.searchURL(param.Type, query))
	if err != nil {
		return nil, err
	}

	return c.transformer.FromType(resp, param.Type)
}

// FromURL resolves a share link. Patterns are tried in order: track, album, artist.
func (c *Client) FromURL(ctx context.Context, rawURL string) (core.APIResponse, error) {
	if id, ok := matchID(c.trackRegex, rawURL); ok {
		track, err := c.GetTrack(ctx, core.TrackID(id))
		if err != nil {
			return nil, err
		}
		return track, nil
	}

	if id, ok := matchID(c.albumRegex, rawURL); ok {
		album, err := c.GetAlbum(ctx, core.AlbumID(id))
		if err != nil {
			return nil, err
		}
		return album, nil
	}

	if id, ok := matchID(c.artistRegex, rawURL); ok {
		artist, err := c.GetArtist(ctx, core.ArtistID(id))
		if err != nil {
			return nil, err
		}
		return artist, nil
	}

	return nil, fmt.Errorf("%w: %s", core.ErrInvalidURL, rawURL)
}

// Get performs an authenticated GET. Non-2xx responses are returned as errors with the body closed.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	token, err := c.tokens.Token()
	if err != nil {
		if errors.Is(err, core.ErrMissingCredential) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", core.ErrMissingCredential, err)
	}
	if token == nil || token.AccessToken == "" {
		return nil, core.ErrMissingCredential
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	token.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")

	endpoint := c.endpointLabel(rawURL)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, statusTransportError, time.Since(start))
		return nil, fmt.Errorf("spotify request failed: %w", err)
	}
	c.observe(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("spotify returned status %d", resp.StatusCode)
	}

	return resp, nil
}

func (c *Client) GetTrack(ctx context.Context, id core.TrackID) (core.Track, error) {
	resp, err := c.fetch(ctx, core.SearchTypeTrack, c.entityURL(core.SearchTypeTrack, string(id)))
	if err != nil {
		return core.Track{}, err
	}
	return c.transformer.ToTrack(resp)
}

func (c *Client) GetAlbum(ctx context.Context, id core.AlbumID) (core.Album, error) {
	resp, err := c.fetch(ctx, core.SearchTypeAlbum, c.entityURL(core.SearchTypeAlbum, string(id)))
	if err != nil {
		return core.Album{}, err
	}
	return c.transformer.ToAlbum(resp)
}

func (c *Client) GetArtist(ctx context.Context, id core.ArtistID) (core.Artist, error) {
	resp, err := c.fetch(ctx, core.SearchTypeArtist, c.entityURL(core.SearchTypeArtist, string(id)))
	if err != nil {
		return core.Artist{}, err
	}
	return c.transformer.ToArtist(resp)
}

// fetch wraps Get for the transforming operations. Request failures are logged and
// reported as a nil response so the transformer turns them into ErrMalformedResponse.
// Only a missing credential is returned as an error.
func (c *Client) fetch(ctx context.Context, kind core.SearchType, rawURL string) (*http.Response, error) {
	resp, err := c.Get(ctx, rawURL)
	if err != nil {
		if errors.Is(err, core.ErrMissingCredential) {
			return nil, err
		}
		c.logger.Error("Spotify request failed",
			zap.String("type", string(kind)),
			zap.String("url", rawURL),
			zap.Error(err))
		return nil, nil
	}
	return resp, nil
}

func (c *Client) entityURL(kind core.SearchType, id string) string {
	return fmt.Sprintf("%s/%ss/%s", c.apiURL, kind, url.PathEscape(id))
}

func (c *Client) searchURL(kind core.SearchType, query string) string {
	q := encodeURIComponent(string(kind) + ":" + query)
	return fmt.Sprintf("%s/search?q=%s&type=%s", c.apiURL, q, kind)
}

// endpointLabel returns the first path segment below the API base URL, e.g. "tracks" or "search".
func (c *Client) endpointLabel(rawURL string) string {
	rest, found := strings.CutPrefix(rawURL, c.apiURL+"/")
	if !found {
		return endpointOther
	}

	if i := strings.IndexAny(rest, "/?"); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return endpointOther
	}
	return rest
}

func (c *Client) observe(endpoint, status string, duration time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(endpoint, status, duration)
	}
}

func matchID(re *regexp.Regexp, rawURL string) (string, bool) {
	matches := re.FindStringSubmatch(rawURL)
	if matches == nil {
		return "", false
	}
	return matches[re.SubexpIndex("id")], true
}

// encodeURIComponent escapes s the way browsers do for a query component: spaces become %20.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
