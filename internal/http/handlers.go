package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"musicapi/internal/core"
)

const (
	resultOK                = "ok"
	resultBadRequest        = "bad_request"
	resultInvalidURL        = "invalid_url"
	resultUnsupportedType   = "unsupported_type"
	resultMissingCredential = "missing_credential"
	resultMalformedResponse = "malformed_response"
	resultError             = "error"
)

type lookupHandler struct {
	api     core.MusicAPI
	metrics *Metrics
	timeout time.Duration
	logger  *zap.Logger
}

// ArtistResponse is the JSON shape of a track's artist.
type ArtistResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EntityResponse is the JSON shape of any normalized entity.
type EntityResponse struct {
	Type   core.SearchType `json:"type"`
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	URI    string          `json:"uri,omitempty"`
	Artist *ArtistResponse `json:"artist,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *lookupHandler) resolve(w http.ResponseWriter, r *http.Request) {
	shareURL := r.URL.Query().Get("url")
	if shareURL == "" {
		h.badRequest(w, "resolve", "missing url parameter")
		return
	}

	ctx, cancel := h.lookupContext(r.Context())
	defer cancel()

	result, err := h.api.FromURL(ctx, shareURL)
	h.respond(w, "resolve", result, err)
}

func (h *lookupHandler) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	searchType, err := core.ParseSearchType(query.Get("type"))
	if err != nil {
		h.respond(w, "search", nil, err)
		return
	}

	q := query.Get("q")
	if q == "" {
		h.badRequest(w, "search", "missing q parameter")
		return
	}

	ctx, cancel := h.lookupContext(r.Context())
	defer cancel()

	result, err := h.api.Search(ctx, core.SearchParam{Type: searchType, Query: q})
	h.respond(w, "search", result, err)
}

func (h *lookupHandler) track(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.lookupContext(r.Context())
	defer cancel()

	track, err := h.api.GetTrack(ctx, core.TrackID(r.PathValue("id")))
	if err != nil {
		h.respond(w, "track", nil, err)
		return
	}
	h.respond(w, "track", track, nil)
}

func (h *lookupHandler) album(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.lookupContext(r.Context())
	defer cancel()

	album, err := h.api.GetAlbum(ctx, core.AlbumID(r.PathValue("id")))
	if err != nil {
		h.respond(w, "album", nil, err)
		return
	}
	h.respond(w, "album", album, nil)
}

func (h *lookupHandler) artist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.lookupContext(r.Context())
	defer cancel()

	artist, err := h.api.GetArtist(ctx, core.ArtistID(r.PathValue("id")))
	if err != nil {
		h.respond(w, "artist", nil, err)
		return
	}
	h.respond(w, "artist", artist, nil)
}

func (h *lookupHandler) lookupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}

func (h *lookupHandler) respond(w http.ResponseWriter, operation string, result core.APIResponse, err error) {
	if err != nil {
		status, label := classifyError(err)
		h.metrics.RecordLookup(operation, label)
		if status >= http.StatusInternalServerError {
			h.logger.Warn("Lookup failed",
				zap.String("operation", operation),
				zap.Int("status", status),
				zap.Error(err))
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	h.metrics.RecordLookup(operation, resultOK)
	writeJSON(w, http.StatusOK, NewEntityResponse(result))
}

func (h *lookupHandler) badRequest(w http.ResponseWriter, operation, message string) {
	h.metrics.RecordLookup(operation, resultBadRequest)
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

func classifyError(err error) (status int, label string) {
	switch {
	case errors.Is(err, core.ErrInvalidURL):
		return http.StatusBadRequest, resultInvalidURL
	case errors.Is(err, core.ErrUnsupportedType):
		return http.StatusBadRequest, resultUnsupportedType
	case errors.Is(err, core.ErrMissingCredential):
		return http.StatusServiceUnavailable, resultMissingCredential
	case errors.Is(err, core.ErrMalformedResponse):
		return http.StatusBadGateway, resultMalformedResponse
	default:
		return http.StatusInternalServerError, resultError
	}
}

// NewEntityResponse converts a normalized entity into its JSON shape.
func NewEntityResponse(result core.APIResponse) EntityResponse {
	switch v := result.(type) {
	case core.Track:
		return EntityResponse{
			Type: v.Kind(),
			ID:   string(v.ID),
			Name: v.Name,
			URI:  v.URI,
			Artist: &ArtistResponse{
				ID:   string(v.Artist.ID),
				Name: v.Artist.Name,
			},
		}
	case core.Album:
		return EntityResponse{Type: v.Kind(), ID: string(v.ID), Name: v.Name}
	case core.Artist:
		return EntityResponse{Type: v.Kind(), ID: string(v.ID), Name: v.Name}
	default:
		return EntityResponse{}
	}
}
