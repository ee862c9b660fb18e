package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lumiere-clinic/booking-assistant/internal/booking"
)

type submitBookingRequest struct {
	SessionID string `json:"session_id"`
	BookingID string `json:"booking_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Age       string `json:"age"`
	Doctor    string `json:"doctor"`
	Service   string `json:"service"`
	Slot      string `json:"slot"` // "YYYY-MM-DD HH:MM"

	// Intake answers folded into the webhook note.
	Allergy         string `json:"allergy"`
	RecentTreatment string `json:"recent_treatment"`
	Note            string `json:"note"`
}

// note merges the explicit note with the intake answers the way the
// original booking form did.
func (r submitBookingRequest) note() string {
	parts := make([]string, 0, 3)
	if r.Allergy != "" {
		parts = append(parts, "Allergy: "+r.Allergy)
	}
	if r.RecentTreatment != "" {
		parts = append(parts, "Recent treatment: "+r.RecentTreatment)
	}
	if r.Note != "" {
		parts = append(parts, r.Note)
	}
	return strings.Join(parts, ". ")
}

type bookingResponse struct {
	BookingID    string `json:"booking_id"`
	Doctor       string `json:"doctor"`
	Service      string `json:"service"`
	Slot         string `json:"slot"`
	DurationMins int    `json:"duration_mins"`
}

// SubmitBooking validates and dispatches a booking intent.
// POST /api/bookings
//
// When the request names a session, the booking id is pinned to the
// (doctor, slot, email) intent inside it, so retries of the same
// submission reuse the id. Without a session each submit mints a fresh id.
func (h *Handler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var req submitBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	bookingID := req.BookingID
	if bookingID == "" {
		if s, ok := h.session(req.SessionID); ok {
			bookingID = s.BookingID(req.Doctor + "|" + req.Slot + "|" + req.Email)
		}
	}

	result, err := h.bookings.Submit(r.Context(), booking.SubmitRequest{
		BookingID: bookingID,
		Patient: booking.PatientInfo{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
			Age:   req.Age,
		},
		Doctor:       req.Doctor,
		Service:      req.Service,
		Slot:         req.Slot,
		DurationMins: h.catalog.Duration(req.Service),
		Note:         req.note(),
	})
	if err != nil {
		h.writeBookingError(w, "submit", err)
		return
	}

	writeJSON(w, http.StatusOK, bookingResponse{
		BookingID:    result.BookingID,
		Doctor:       result.Doctor,
		Service:      result.Service,
		Slot:         result.Slot,
		DurationMins: result.DurationMins,
	})
}

type cancelBookingRequest struct {
	BookingID string `json:"booking_id"`
	EventID   string `json:"event_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Doctor    string `json:"doctor"`
	Date      string `json:"date"` // "YYYY-MM-DD"
	Time      string `json:"time"` // "HH:MM"
	Service   string `json:"service"`
}

// CancelBooking dispatches a cancellation intent.
// POST /api/bookings/cancel
func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	var req cancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := h.bookings.Cancel(r.Context(), booking.CancelRequest{
		BookingID: req.BookingID,
		EventID:   req.EventID,
		Name:      req.Name,
		Email:     req.Email,
		Doctor:    req.Doctor,
		Date:      req.Date,
		Time:      req.Time,
		Service:   req.Service,
	})
	if err != nil {
		h.writeBookingError(w, "cancel", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled", "booking_id": req.BookingID})
}

type rescheduleBookingRequest struct {
	BookingID string `json:"booking_id"`
	EventID   string `json:"event_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Age       string `json:"age"`
	OldDoctor string `json:"old_doctor"`
	OldDate   string `json:"old_date"` // "YYYY-MM-DD"
	OldTime   string `json:"old_time"` // "HH:MM"
	Doctor    string `json:"doctor"`
	Slot      string `json:"slot"` // chosen new slot, "YYYY-MM-DD HH:MM"
	Service   string `json:"service"`
}

// RescheduleBooking dispatches a reschedule intent. The caller picks the
// new slot from a fresh availability response; the slot is not
// re-validated here, the automation endpoint has the final word.
// POST /api/bookings/reschedule
func (h *Handler) RescheduleBooking(w http.ResponseWriter, r *http.Request) {
	var req rescheduleBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := h.bookings.Reschedule(r.Context(), booking.RescheduleRequest{
		BookingID: req.BookingID,
		EventID:   req.EventID,
		Patient: booking.PatientInfo{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
			Age:   req.Age,
		},
		OldDoctor:    req.OldDoctor,
		OldDate:      req.OldDate,
		OldTime:      req.OldTime,
		NewDoctor:    req.Doctor,
		NewSlot:      req.Slot,
		DurationMins: h.catalog.Duration(req.Service),
		Service:      req.Service,
	})
	if err != nil {
		h.writeBookingError(w, "reschedule", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rescheduled", "booking_id": req.BookingID})
}

func (h *Handler) writeBookingError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, booking.ErrNoSlotSelected):
		writeError(w, http.StatusBadRequest, "please select a valid time slot")
	case errors.Is(err, booking.ErrSlotNoLongerAvailable):
		writeError(w, http.StatusConflict, "slot no longer available")
	case errors.Is(err, booking.ErrDispatchFailed):
		h.logger.Error("dispatch failed", "action", action, "error", err)
		writeError(w, http.StatusBadGateway, "failed to reach the booking service, please try again")
	default:
		h.logger.Error("booking request rejected", "action", action, "error", err)
		writeError(w, http.StatusBadRequest, "invalid booking request")
	}
}
