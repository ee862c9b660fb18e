package handlers

import (
	"net/http"
	"time"

	"github.com/lumiere-clinic/booking-assistant/internal/appointments"
	"github.com/lumiere-clinic/booking-assistant/internal/availability"
)

type appointmentResponse struct {
	Found     bool   `json:"found"`
	BookingID string `json:"booking_id"`
	EventID   string `json:"event_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Age       string `json:"age"`
	Doctor    string `json:"doctor"`
	Service   string `json:"service"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// LookupAppointment resolves an appointment by booking id or calendar
// event id. A miss is a normal 200 with blank fields; callers decide
// what to do with an unknown appointment.
// GET /api/appointments?booking_id=|event_id=
func (h *Handler) LookupAppointment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bookingID := q.Get("booking_id")
	eventID := q.Get("event_id")
	if bookingID == "" && eventID == "" {
		writeError(w, http.StatusBadRequest, "booking_id or event_id required")
		return
	}

	var (
		appt appointments.Appointment
		err  error
	)
	if bookingID != "" {
		appt, err = h.lookup.FindByBookingID(r.Context(), bookingID)
	} else {
		appt, err = h.lookup.FindByEventID(r.Context(), eventID)
	}
	if err != nil {
		h.logger.Error("appointment lookup failed", "error", err)
		writeError(w, http.StatusBadGateway, "could not read appointment records")
		return
	}

	day, clock := appt.DateParts()
	writeJSON(w, http.StatusOK, appointmentResponse{
		Found:     !appt.IsZero(),
		BookingID: appt.BookingID,
		EventID:   appt.EventID,
		Name:      appt.Name,
		Email:     appt.Email,
		Phone:     appt.Phone,
		Age:       appt.Age,
		Doctor:    appt.Doctor,
		Service:   appt.Service,
		Date:      day,
		Time:      clock,
	})
}

// DaySchedule returns a doctor's appointments for one date, joined with
// patient details from the record store.
// GET /api/schedule?doctor=&date=
func (h *Handler) DaySchedule(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	doctor := q.Get("doctor")

	date, err := time.ParseInLocation(availability.DateFormat, q.Get("date"), h.tz)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	calendarID, err := h.availability.Roster().CalendarID(doctor)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown doctor")
		return
	}

	entries, err := h.lookup.DaySchedule(r.Context(), doctor, calendarID, date)
	if err != nil {
		h.logger.Error("day schedule failed", "doctor", doctor, "error", err)
		writeError(w, http.StatusBadGateway, "could not load the day schedule")
		return
	}
	if entries == nil {
		entries = []appointments.ScheduleEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"doctor":       doctor,
		"date":         q.Get("date"),
		"appointments": entries,
	})
}
