package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/lumiere-clinic/booking-assistant/internal/availability"
)

// noPreference is the doctor value meaning "assign me whoever is free".
const noPreference = "No preference"

type availabilityResponse struct {
	// Available is false when no doctor has an open slot on the date, so
	// clients need not infer a fully booked day from the blank fields.
	Available    bool     `json:"available"`
	Doctor       string   `json:"doctor,omitempty"`
	Date         string   `json:"date"`
	Service      string   `json:"service"`
	DurationMins int      `json:"duration_mins"`
	Slots        []string `json:"slots"`
}

// Availability returns the open slots for a doctor, date and service.
// GET /api/availability?doctor=&date=&service=&session_id=
//
// An absent doctor, or the literal "No preference", scans the roster in
// configured order and reports the first doctor with open slots; no
// availability anywhere yields an empty slot list, not an error.
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	dateStr := q.Get("date")
	date, err := time.ParseInLocation(availability.DateFormat, dateStr, h.tz)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	service := q.Get("service")
	durationMins := h.catalog.Duration(service)

	doctor := q.Get("doctor")
	var slots []string
	if doctor == "" || doctor == noPreference {
		assignment, err := h.availability.FirstAvailable(r.Context(), date, durationMins)
		if err != nil {
			h.logger.Error("availability scan failed", "date", dateStr, "error", err)
			writeError(w, http.StatusBadGateway, "could not check availability")
			return
		}
		doctor = assignment.Doctor
		slots = assignment.Slots
	} else {
		slots, err = h.availability.SlotsFor(r.Context(), doctor, date, durationMins)
		if errors.Is(err, availability.ErrUnknownDoctor) {
			writeError(w, http.StatusBadRequest, "unknown doctor")
			return
		}
		if err != nil {
			h.logger.Error("availability failed", "doctor", doctor, "date", dateStr, "error", err)
			writeError(w, http.StatusBadGateway, "could not check availability")
			return
		}
	}

	if s, ok := h.session(q.Get("session_id")); ok {
		s.SetSelection(doctor, dateStr)
	}

	if slots == nil {
		slots = []string{}
	}
	writeJSON(w, http.StatusOK, availabilityResponse{
		Available:    len(slots) > 0,
		Doctor:       doctor,
		Date:         dateStr,
		Service:      service,
		DurationMins: durationMins,
		Slots:        slots,
	})
}

