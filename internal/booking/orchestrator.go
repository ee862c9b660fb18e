// Package booking validates booking intents and dispatches them to the
// clinic automation webhooks. The automation endpoint is the sole mutator
// of the calendar and the record store; nothing is persisted here.
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lumiere-clinic/booking-assistant/internal/observability/metrics"
	"github.com/lumiere-clinic/booking-assistant/pkg/logging"
)

const slotFormat = "2006-01-02 15:04"

var (
	// ErrNoSlotSelected is returned when a booking intent arrives
	// without a chosen slot.
	ErrNoSlotSelected = errors.New("booking: no slot selected")

	// ErrDispatchFailed covers transport failures and non-2xx webhook
	// responses. The caller must resubmit; there is no retry here.
	ErrDispatchFailed = errors.New("booking: dispatch failed")

	// ErrSlotNoLongerAvailable is surfaced when the automation endpoint
	// reports that the chosen slot was taken between the availability
	// check and the dispatch.
	ErrSlotNoLongerAvailable = errors.New("booking: slot no longer available")
)

// PatientInfo is the contact information collected from the booking form.
type PatientInfo struct {
	Name  string
	Email string
	Phone string
	Age   string
}

// SubmitRequest is a booking intent.
type SubmitRequest struct {
	// BookingID is optional. Sessions pin one id per intent so retries
	// of the same submission reuse it; when empty a fresh id is minted.
	BookingID    string
	Patient      PatientInfo
	Doctor       string
	Service      string
	Slot         string // chosen slot start, "YYYY-MM-DD HH:MM"
	DurationMins int
	Note         string
}

// Booking is the dispatched intent echoed back to the caller.
type Booking struct {
	BookingID    string
	Doctor       string
	Service      string
	Slot         string
	DurationMins int
}

// CancelRequest identifies an existing appointment to cancel.
type CancelRequest struct {
	BookingID string
	EventID   string
	Name      string
	Email     string
	Doctor    string
	Date      string // "YYYY-MM-DD"
	Time      string // "HH:MM"
	Service   string
}

// RescheduleRequest moves an existing appointment to a new slot.
type RescheduleRequest struct {
	BookingID    string
	EventID      string
	Patient      PatientInfo
	OldDoctor    string
	OldDate      string // "YYYY-MM-DD"
	OldTime      string // "HH:MM"
	NewDoctor    string
	NewSlot      string // chosen slot start, "YYYY-MM-DD HH:MM"
	DurationMins int
	Service      string
}

// Orchestrator dispatches booking intents over HTTP.
type Orchestrator struct {
	bookURL    string
	manageURL  string
	httpClient *http.Client
	tz         *time.Location
	logger     *logging.Logger
	metrics    *metrics.BookingMetrics
}

// NewOrchestrator creates the orchestrator. tz is the clinic timezone
// used to anchor slot strings when computing UTC instants.
func NewOrchestrator(bookURL, manageURL string, timeout time.Duration, tz *time.Location, logger *logging.Logger, m *metrics.BookingMetrics) *Orchestrator {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if tz == nil {
		tz = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Orchestrator{
		bookURL:    bookURL,
		manageURL:  manageURL,
		httpClient: &http.Client{Timeout: timeout},
		tz:         tz,
		logger:     logger.Component("booking"),
		metrics:    m,
	}
}

// Submit validates and dispatches a booking intent. A fresh booking id is
// minted exactly once per intent; resubmitting after a failure mints a
// new one unless the caller pins the id through its session.
func (o *Orchestrator) Submit(ctx context.Context, req SubmitRequest) (*Booking, error) {
	if strings.TrimSpace(req.Slot) == "" {
		return nil, ErrNoSlotSelected
	}

	bookingID := strings.TrimSpace(req.BookingID)
	if bookingID == "" {
		bookingID = uuid.NewString()
	}

	payload := bookPayload{
		BookingID: bookingID,
		Name:      req.Patient.Name,
		Email:     req.Patient.Email,
		Phone:     req.Patient.Phone,
		Age:       req.Patient.Age,
		Service:   req.Service,
		Doctor:    req.Doctor,
		Date:      req.Slot,
		Duration:  req.DurationMins,
		Note:      req.Note,
	}
	if err := o.post(ctx, o.bookURL, "book", payload); err != nil {
		return nil, err
	}

	o.logger.Info("booking dispatched",
		"booking_id", bookingID,
		"doctor", req.Doctor,
		"service", req.Service,
		"slot", req.Slot,
	)
	return &Booking{
		BookingID:    bookingID,
		Doctor:       req.Doctor,
		Service:      req.Service,
		Slot:         req.Slot,
		DurationMins: req.DurationMins,
	}, nil
}

// Cancel dispatches a cancellation intent.
func (o *Orchestrator) Cancel(ctx context.Context, req CancelRequest) error {
	payload := cancelPayload{
		Action:    "cancel",
		BookingID: req.BookingID,
		EventID:   req.EventID,
		Name:      req.Name,
		Email:     req.Email,
		Doctor:    req.Doctor,
		Date:      req.Date,
		Time:      req.Time,
		Service:   req.Service,
	}
	if err := o.post(ctx, o.manageURL, "cancel", payload); err != nil {
		return err
	}
	o.logger.Info("cancel dispatched", "booking_id", req.BookingID, "event_id", req.EventID)
	return nil
}

// Reschedule dispatches a reschedule intent. The new slot is anchored to
// the clinic timezone and converted to UTC start/end instants for the
// calendar side.
func (o *Orchestrator) Reschedule(ctx context.Context, req RescheduleRequest) error {
	if strings.TrimSpace(req.NewSlot) == "" {
		return ErrNoSlotSelected
	}

	start, err := time.ParseInLocation(slotFormat, req.NewSlot, o.tz)
	if err != nil {
		return fmt.Errorf("booking: parse new slot %q: %w", req.NewSlot, err)
	}
	end := start.Add(time.Duration(req.DurationMins) * time.Minute)

	payload := reschedulePayload{
		Action:    "reschedule",
		BookingID: req.BookingID,
		EventID:   req.EventID,
		Email:     req.Patient.Email,
		Name:      req.Patient.Name,
		Phone:     req.Patient.Phone,
		Age:       req.Patient.Age,
		OldDate:   req.OldDate,
		OldTime:   req.OldTime,
		NewDate:   start.Format("2006-01-02"),
		NewTime:   req.NewSlot,
		OldDoctor: req.OldDoctor,
		Doctor:    req.NewDoctor,
		Duration:  req.DurationMins,
		Service:   req.Service,
		StartTime: start.UTC().Format("2006-01-02T15:04:05Z"),
		EndTime:   end.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if err := o.post(ctx, o.manageURL, "reschedule", payload); err != nil {
		return err
	}
	o.logger.Info("reschedule dispatched",
		"booking_id", req.BookingID,
		"event_id", req.EventID,
		"new_doctor", req.NewDoctor,
		"new_slot", req.NewSlot,
	)
	return nil
}

// post sends one JSON payload to a webhook. 2xx is success, 409 means the
// automation re-validated and lost the slot, anything else is a dispatch
// failure. No retries.
func (o *Orchestrator) post(ctx context.Context, url, action string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		o.metrics.ObserveDispatch(action, "marshal_error")
		return fmt.Errorf("booking: marshal %s payload: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		o.metrics.ObserveDispatch(action, "request_error")
		return fmt.Errorf("booking: create %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		o.metrics.ObserveDispatch(action, "transport_error")
		return fmt.Errorf("%w: %s: %v", ErrDispatchFailed, action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		o.metrics.ObserveDispatch(action, "slot_taken")
		return fmt.Errorf("%w: %s", ErrSlotNoLongerAvailable, action)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		msg := string(respBody)
		if len(msg) > 300 {
			msg = msg[:300]
		}
		o.metrics.ObserveDispatch(action, "dispatch_failed")
		return fmt.Errorf("%w: %s: status %d: %s", ErrDispatchFailed, action, resp.StatusCode, msg)
	}

	o.metrics.ObserveDispatch(action, "ok")
	return nil
}
