// Package api exposes the component registry and the settings operations
// over HTTP for headless use.
//
// Routes:
//
//	GET  /api/health
//	GET  /api/components
//	PUT  /api/components/{id}       {"value": ...}
//	POST /api/config/save           {"path": "..."} (optional)
//	POST /api/config/load           {"path": "..."}
//	GET  /api/config/files
//	GET  /api/config/recent
//	DELETE /api/config/recent
//	GET  /api/settings-dir
//	PUT  /api/settings-dir          {"path": "..."}
//
// Handlers run one at a time: widgets are not safe for concurrent use.
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/billie-coop/webui/internal/registry"
	"github.com/billie-coop/webui/internal/settings"
	"github.com/billie-coop/webui/internal/state"
)

// Server serves the HTTP API
type Server struct {
	mu sync.Mutex

	registry *registry.Registry
	settings *settings.Manager
	history  *state.HistoryStore
	validate *validator.Validate
	now      func() time.Time
}

// Option configures a Server
type Option func(*Server)

// WithHistory records saved and loaded files in h
func WithHistory(h *state.HistoryStore) Option {
	return func(s *Server) { s.history = h }
}

// New creates a server for the given registry and settings manager
func New(reg *registry.Registry, mgr *settings.Manager, opts ...Option) *Server {
	s := &Server{
		registry: reg,
		settings: mgr,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router with every API route
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/health", s.handleHealth).Methods("GET")
	apiRouter.HandleFunc("/components", s.serialized(s.handleListComponents)).Methods("GET")
	apiRouter.HandleFunc("/components/{id}", s.serialized(s.handleSetComponent)).Methods("PUT")
	apiRouter.HandleFunc("/config/save", s.serialized(s.handleSave)).Methods("POST")
	apiRouter.HandleFunc("/config/load", s.serialized(s.handleLoad)).Methods("POST")
	apiRouter.HandleFunc("/config/files", s.serialized(s.handleListFiles)).Methods("GET")
	apiRouter.HandleFunc("/config/recent", s.serialized(s.handleRecent)).Methods("GET")
	apiRouter.HandleFunc("/config/recent", s.serialized(s.handleClearRecent)).Methods("DELETE")
	apiRouter.HandleFunc("/settings-dir", s.serialized(s.handleGetDirectory)).Methods("GET")
	apiRouter.HandleFunc("/settings-dir", s.serialized(s.handleSetDirectory)).Methods("PUT")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendErrorResponse(w, "Not found", http.StatusNotFound)
	})
	return router
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("API: listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// serialized runs h under the server mutex
func (s *Server) serialized(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		h(w, r)
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("API: %s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}
