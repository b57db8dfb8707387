package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/navtree/internal/config"
	"github.com/dgallion1/navtree/internal/navtree"
	"github.com/dgallion1/navtree/internal/theme"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for navtree.
type Server struct {
	router    chi.Router
	annotator *navtree.Annotator
	hooks     *theme.Hooks
	log       *slog.Logger
	cfg       *config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(annotator *navtree.Annotator, log *slog.Logger, cfg *config.Config) *Server {
	hooks := &theme.Hooks{}
	hooks.Connect(theme.NavigationHook(annotator))

	s := &Server{
		annotator: annotator,
		hooks:     hooks,
		log:       log,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/annotate", s.handleAnnotate)
		r.Post("/api/toctree", s.handleToctree)
		r.Post("/api/outline", s.handleOutline)
		r.Get("/api/stats/annotate", s.handleAnnotateStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
