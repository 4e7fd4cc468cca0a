package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"chorewheel/internal/chores"
	"chorewheel/internal/store"
)

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(db *store.DB, svc *chores.Service, defaultTimeline time.Duration, apiKey string, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on ALL routes including /health)
	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(db)
	choreH := NewChoreHandler(svc, defaultTimeline)

	// Unauthenticated routes
	r.Get("/health", healthH.Health)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(apiKey))

		r.Route("/chores", func(r chi.Router) {
			r.Post("/complete", choreH.Complete)
			r.Get("/status", choreH.Status)
			r.Get("/timeline", choreH.Timeline)
			r.Get("/history", choreH.History)
		})
	})

	return r
}
