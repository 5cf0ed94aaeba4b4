package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/cardgen/internal/config"
	"github.com/dgallion1/cardgen/internal/fragment"
	"github.com/dgallion1/cardgen/internal/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for cardgen.
type Server struct {
	router    chi.Router
	fragments *fragment.Client
	renderer  *render.Renderer
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(fragments *fragment.Client, renderer *render.Renderer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		fragments: fragments,
		renderer:  renderer,
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

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.CardgenAPIKey, s.log))

		r.Get("/api/cards/*", s.handleCard)
		r.Post("/api/cards/preview", s.handlePreview)
		r.Get("/api/fragments/*", s.handleFragment)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
