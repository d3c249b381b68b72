// Package server exposes the chat and content-pipeline features to a
// browser over HTTP and WebSocket.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/buisihung11/langchain-basic/internal/assets"
	"github.com/buisihung11/langchain-basic/internal/config"
	"github.com/buisihung11/langchain-basic/internal/llm"
	vlog "github.com/buisihung11/langchain-basic/internal/log"
	"github.com/buisihung11/langchain-basic/internal/pipeline"
)

// Server wires the completion client and the content pipeline to HTTP routes.
type Server struct {
	cfg     *config.Config
	client  *llm.HTTPClient
	content *pipeline.Pipeline
}

// New builds a Server from resolved configuration.
func New(cfg *config.Config) (*Server, error) {
	data, err := assets.LoadPipeline("content")
	if err != nil {
		return nil, err
	}
	content, err := pipeline.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg: cfg,
		client: &llm.HTTPClient{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.Timeout(),
		},
		content: content,
	}, nil
}

// Router returns the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/api/models", s.handleModels).Methods(http.MethodGet)
	r.HandleFunc("/api/chat", s.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/api/pipeline", s.handlePipeline).Methods(http.MethodPost)
	r.HandleFunc("/ws/chat", s.handleChatWS)
	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		vlog.Info("listening", "addr", s.cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
