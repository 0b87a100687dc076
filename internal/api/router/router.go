// Package router wires the form endpoints into a chi router.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/juaenergy/solar-platform/internal/consultation"
	httpmiddleware "github.com/juaenergy/solar-platform/internal/http/middleware"
	"github.com/juaenergy/solar-platform/internal/talent"
	"github.com/juaenergy/solar-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	ConsultationHandler *consultation.Handler
	TalentHandler       *talent.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string

	// Rate limiting for the public form endpoints. Zero disables it.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Public form endpoints
	r.Route("/api", func(api chi.Router) {
		if cfg.RateLimitPerSecond > 0 {
			api.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
		}
		if cfg.ConsultationHandler != nil {
			api.Post("/consultation", cfg.ConsultationHandler.SubmitConsultation)
		}
		if cfg.TalentHandler != nil {
			api.Post("/talent-pool", cfg.TalentHandler.SubmitApplication)
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
