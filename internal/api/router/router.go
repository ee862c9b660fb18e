// Package router assembles the HTTP API for the booking assistant.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lumiere-clinic/booking-assistant/internal/http/handlers"
	httpmiddleware "github.com/lumiere-clinic/booking-assistant/internal/http/middleware"
	"github.com/lumiere-clinic/booking-assistant/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	API            *handlers.Handler
	MetricsHandler http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.API.Health)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/treatments", cfg.API.Treatments)
		api.Get("/doctors", cfg.API.Doctors)
		api.Get("/availability", cfg.API.Availability)
		api.Get("/appointments", cfg.API.LookupAppointment)
		api.Get("/schedule", cfg.API.DaySchedule)

		api.Post("/bookings", cfg.API.SubmitBooking)
		api.Post("/bookings/cancel", cfg.API.CancelBooking)
		api.Post("/bookings/reschedule", cfg.API.RescheduleBooking)

		api.Post("/sessions", cfg.API.CreateSession)
		api.Get("/sessions/{sessionID}", cfg.API.GetSession)
		api.Put("/sessions/{sessionID}", cfg.API.UpdateSession)
	})

	return r
}
