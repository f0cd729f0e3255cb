// Package server exposes boards and profiles over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /v1/board?profile=&now=&cols=
//	POST   /v1/profiles
//	GET    /v1/profiles/{id}
//	PUT    /v1/profiles/{id}
//	DELETE /v1/profiles/{id}
//	POST   /v1/profiles/{id}/interests/{interest}
//	POST   /v1/profiles/{id}/visits/{institution}
//	GET    /v1/catalog/interests
//	GET    /v1/catalog/institutions?lat=&lng=&radius_km=
//
// Errors are JSON objects {"error": message, "code": CODE}; the status code
// follows the error code class.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ryanphanna/Venture/pkg/catalog"
	"github.com/ryanphanna/Venture/pkg/pipeline"
	"github.com/ryanphanna/Venture/pkg/prefs"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8080"

// RequestTimeout bounds every handler.
const RequestTimeout = 30 * time.Second

// Config holds the server's collaborators. Catalog, Store and Runner are
// required.
type Config struct {
	Addr    string
	Catalog *catalog.Catalog
	Store   prefs.Store
	Runner  *pipeline.Runner

	// Options is the base for every board request; query parameters
	// override Columns and Now.
	Options pipeline.Options

	Logger *log.Logger

	// Now is the clock for visits and default board days.
	Now func() time.Time
}

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	router chi.Router
}

// New builds a server and its routes.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Server{cfg: cfg}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/board", s.handleBoard)

		r.Post("/profiles", s.handleCreateProfile)
		r.Route("/profiles/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetProfile)
			r.Put("/", s.handlePutProfile)
			r.Delete("/", s.handleDeleteProfile)
			r.Post("/interests/{interest}", s.handleToggleInterest)
			r.Post("/visits/{institution}", s.handleVisit)
		})

		r.Get("/catalog/interests", s.handleInterests)
		r.Get("/catalog/institutions", s.handleInstitutions)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.cfg.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
