// Package router wires every handler into the HTTP surface of the API.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/psicogestion/practice-api/internal/appointments"
	"github.com/psicogestion/practice-api/internal/assistant"
	"github.com/psicogestion/practice-api/internal/dashboard"
	"github.com/psicogestion/practice-api/internal/dictation"
	"github.com/psicogestion/practice-api/internal/finance"
	httpmiddleware "github.com/psicogestion/practice-api/internal/http/middleware"
	"github.com/psicogestion/practice-api/internal/patients"
	"github.com/psicogestion/practice-api/internal/session"
	"github.com/psicogestion/practice-api/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger *logging.Logger

	SessionStore   session.Store
	SessionHandler *session.Handler

	PatientsHandler     *patients.Handler
	AppointmentsHandler *appointments.Handler
	FinanceHandler      *finance.Handler
	AssistantHandler    *assistant.Handler
	DashboardHandler    *dashboard.Handler

	Dictation dictation.Provider

	MetricsHandler http.Handler

	CORSAllowedOrigins []string
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

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

	// Public endpoints.
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.SessionHandler != nil {
			cfg.SessionHandler.RegisterRoutes(public)
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Everything under /api requires the clinician to be signed in.
	r.Route("/api", func(api chi.Router) {
		api.Use(session.RequireSession(cfg.SessionStore))

		if cfg.PatientsHandler != nil {
			cfg.PatientsHandler.RegisterRoutes(api)
		}
		if cfg.AppointmentsHandler != nil {
			cfg.AppointmentsHandler.RegisterRoutes(api)
		}
		if cfg.FinanceHandler != nil {
			cfg.FinanceHandler.RegisterRoutes(api)
		}
		// The assistant endpoints hit the generative model; keep them
		// rate limited per client.
		if cfg.AssistantHandler != nil {
			api.Group(func(ai chi.Router) {
				ai.Use(httpmiddleware.RateLimit(1, 5))
				cfg.AssistantHandler.RegisterRoutes(ai)
			})
		}
		if cfg.DashboardHandler != nil {
			cfg.DashboardHandler.RegisterRoutes(api)
		}

		api.Get("/capabilities", capabilities(cfg.Dictation))
	})

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// capabilities reports which optional features the deployment offers so
// clients can hide what is missing.
func capabilities(d dictation.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		available := d != nil && d.Available()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]bool{"dictation": available})
	}
}
