// Package http serves share link and search lookups over HTTP together with health and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"musicapi/internal/core"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	config  *core.ServerConfig
	logger  *zap.Logger
	server  *http.Server
	metrics *Metrics
}

func NewServer(config *core.ServerConfig, api core.MusicAPI, metrics *Metrics, logger *zap.Logger) *Server {
	mux := setupRoutes(api, metrics, config.LookupTimeout, logger)

	return &Server{
		config:  config,
		logger:  logger,
		server:  createHTTPServer(config, mux),
		metrics: metrics,
	}
}

func createHTTPServer(config *core.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}
}

func setupRoutes(api core.MusicAPI, metrics *Metrics, lookupTimeout time.Duration, logger *zap.Logger) *http.ServeMux {
	h := &lookupHandler{
		api:     api,
		metrics: metrics,
		timeout: lookupTimeout,
		logger:  logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "musicapi"})
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready", "service": "musicapi"})
	})

	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("GET /v1/resolve", h.resolve)
	mux.HandleFunc("GET /v1/search", h.search)
	mux.HandleFunc("GET /v1/tracks/{id}", h.track)
	mux.HandleFunc("GET /v1/albums/{id}", h.album)
	mux.HandleFunc("GET /v1/artists/{id}", h.artist)

	return mux
}

func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server",
		zap.String("addr", s.server.Addr))

	go func() {
		<-ctx.Done()
		s.logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Failed to shutdown HTTP server gracefully", zap.Error(err))
		}
	}()

	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	return nil
}

func (s *Server) GetMetrics() *Metrics {
	return s.metrics
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
