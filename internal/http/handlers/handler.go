// Package handlers exposes the booking assistant's HTTP API: availability
// lookup, booking dispatch, appointment lookup and the doctor day view.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lumiere-clinic/booking-assistant/internal/appointments"
	"github.com/lumiere-clinic/booking-assistant/internal/availability"
	"github.com/lumiere-clinic/booking-assistant/internal/booking"
	"github.com/lumiere-clinic/booking-assistant/internal/session"
	"github.com/lumiere-clinic/booking-assistant/internal/treatments"
	"github.com/lumiere-clinic/booking-assistant/pkg/logging"
)

// Handler carries the services behind the booking API.
type Handler struct {
	availability *availability.Service
	bookings     *booking.Orchestrator
	lookup       *appointments.Lookup
	catalog      *treatments.Catalog
	sessions     *session.Store
	tz           *time.Location
	logger       *logging.Logger
}

// New creates the API handler.
func New(
	avail *availability.Service,
	bookings *booking.Orchestrator,
	lookup *appointments.Lookup,
	catalog *treatments.Catalog,
	sessions *session.Store,
	tz *time.Location,
	logger *logging.Logger,
) *Handler {
	if tz == nil {
		tz = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		availability: avail,
		bookings:     bookings,
		lookup:       lookup,
		catalog:      catalog,
		sessions:     sessions,
		tz:           tz,
		logger:       logger.Component("http"),
	}
}

// Health is the liveness endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type treatmentResponse struct {
	Name         string `json:"name"`
	DurationMins int    `json:"duration_mins"`
}

// Treatments lists the bookable services with their slot durations.
// GET /api/treatments
func (h *Handler) Treatments(w http.ResponseWriter, r *http.Request) {
	names := h.catalog.Names()
	out := make([]treatmentResponse, 0, len(names))
	for _, name := range names {
		out = append(out, treatmentResponse{Name: name, DurationMins: h.catalog.Duration(name)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"treatments": out})
}

// Doctors lists the roster names in configured order.
// GET /api/doctors
func (h *Handler) Doctors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"doctors": h.availability.Roster().Names()})
}

func (h *Handler) session(id string) (*session.Session, bool) {
	if h.sessions == nil || id == "" {
		return nil, false
	}
	return h.sessions.Get(id)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
