package api

import (
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/dgallion1/studynotes/internal/analysis"
	"github.com/dgallion1/studynotes/internal/config"
	"github.com/dgallion1/studynotes/internal/pipeline"
	"github.com/dgallion1/studynotes/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// Server is the HTTP API server for studynotes.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	sessions     *session.Store
	svc          *analysis.Service
	validate     *validator.Validate
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, sessions *session.Store, svc *analysis.Service, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		sessions:     sessions,
		svc:          svc,
		validate:     newValidator(),
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.log))
	if s.cfg.RateLimitRPS > 0 {
		r.Use(RateLimit(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst))
	}

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/upload", s.handleUpload)
		r.Get("/api/ingest/{jobID}/status", s.handleIngestStatus)

		r.Get("/api/session", s.handleGetSession)
		r.Delete("/api/session", s.handleClearSession)

		r.Post("/api/search", s.handleSearch)
		r.Get("/api/summary", s.handleSummary)
		r.Get("/api/summary/download", s.handleDownloadSummary)
		r.Get("/api/notes", s.handleNotes)
		r.Get("/api/stats", s.handleStats)

		r.Get("/view/search", s.handleSearchView)
		r.Get("/view/summary", s.handleSummaryView)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
