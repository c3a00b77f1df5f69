package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	internal "release-notes-drafter/internal"
	"release-notes-drafter/internal/config"
	"release-notes-drafter/internal/git/types"
	"release-notes-drafter/internal/releases"
)

// shutdownTimeout bounds how long in-flight requests may take after a stop signal
const shutdownTimeout = 15 * time.Second

// Drafter is the subset of internal.Drafter the HTTP handlers use
type Drafter interface {
	Compare(ctx context.Context, req types.CompareRequest) (*types.Comparison, error)
	Generate(ctx context.Context, req internal.GenerateRequest) (*internal.GenerateResult, error)
	Publish(ctx context.Context, entry releases.Entry) (releases.Entry, error)
	Releases(ctx context.Context) ([]releases.Entry, error)
	Release(ctx context.Context, id string) (releases.Entry, error)
}

var _ Drafter = (*internal.Drafter)(nil)

// Server serves the JSON API and the public changelog pages
type Server struct {
	router     chi.Router
	httpServer *http.Server
	drafter    Drafter
	addr       string
}

func New(cfg *config.Config, drafter Drafter) *Server {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(requestLogger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	s := &Server{
		router:  router,
		drafter: drafter,
		addr:    cfg.ServerAddr,
	}
	s.mountRoutes()
	return s
}

func (s *Server) mountRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/compare", s.handleCompare)
		r.Post("/generate", s.handleGenerate)
		r.Get("/releases", s.handleListReleases)
		r.Post("/releases", s.handlePublishRelease)
		r.Get("/releases/{id}", s.handleGetRelease)
	})

	s.router.Get("/changelog", s.handleChangelogPage)
	s.router.Get("/changelog/{id}", s.handleReleasePage)
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.addr
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// generation waits on the model
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return <-errCh
}
