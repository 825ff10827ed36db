package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/plansync/internal/config"
	"github.com/claude/plansync/internal/ingest"
	"github.com/claude/plansync/internal/settings"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store     *settings.Store
	jsonPlans ingest.Provider
	pdfPlans  ingest.Provider // nil when no Gemini key is configured
	intervals config.IntervalsConfig
	delay     time.Duration
	apiKey    string
	log       *slog.Logger
	router    chi.Router
}

// New creates a new Server with all routes configured. pdfPlans may be nil;
// PDF imports then answer 503 until a Gemini key is configured.
func New(store *settings.Store, jsonPlans, pdfPlans ingest.Provider, intervals config.IntervalsConfig, delay time.Duration, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:     store,
		jsonPlans: jsonPlans,
		pdfPlans:  pdfPlans,
		intervals: intervals,
		delay:     delay,
		apiKey:    apiKey,
		log:       log,
		router:    chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}

		r.Post("/plans/import", s.handleImport)
		r.Post("/plans/validate", s.handleValidate)
		r.Post("/plans/preview", s.handlePreview)
		r.Post("/plans/upload", s.handleUpload)

		r.Get("/credentials/check", s.handleCredentialsCheck)
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)
	})
}
