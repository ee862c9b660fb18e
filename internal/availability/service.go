// Package availability computes the bookable slots for a doctor and date
// by tiling the clinic working day and removing calendar conflicts.
package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/lumiere-clinic/booking-assistant/internal/calendar"
	"github.com/lumiere-clinic/booking-assistant/internal/observability/metrics"
	"github.com/lumiere-clinic/booking-assistant/internal/schedule"
	"github.com/lumiere-clinic/booking-assistant/pkg/logging"
)

// SlotFormat is the clinic-local wire format for slot start times. The
// timezone is implicit; the whole clinic runs on one wall clock.
const SlotFormat = "2006-01-02 15:04"

// DateFormat is the calendar-date wire format.
const DateFormat = "2006-01-02"

// Service computes availability per (doctor, date, duration).
type Service struct {
	roster  *Roster
	source  calendar.Source
	hours   schedule.WorkingHours
	tz      *time.Location
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
}

// NewService wires the availability service. metrics may be nil.
func NewService(roster *Roster, source calendar.Source, hours schedule.WorkingHours, tz *time.Location, logger *logging.Logger, m *metrics.BookingMetrics) *Service {
	if roster == nil {
		panic("availability: roster required")
	}
	if source == nil {
		panic("availability: calendar source required")
	}
	if tz == nil {
		tz = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		roster:  roster,
		source:  source,
		hours:   hours,
		tz:      tz,
		logger:  logger.Component("availability"),
		metrics: m,
	}
}

// Roster exposes the configured doctor roster.
func (s *Service) Roster() *Roster {
	return s.roster
}

// Workday returns the clinic-local bounds of the working day on date.
func (s *Service) Workday(date time.Time) (time.Time, time.Time) {
	y, m, d := date.In(s.tz).Date()
	return s.hours.Start.On(y, m, d, s.tz), s.hours.End.On(y, m, d, s.tz)
}

// SlotsFor returns the open slot start times for a doctor on a date,
// formatted clinic-local. The busy snapshot is read once and used for the
// whole filter pass. ErrUnknownDoctor is returned, without any calendar
// call, when the doctor is not on the roster.
func (s *Service) SlotsFor(ctx context.Context, doctor string, date time.Time, durationMins int) ([]string, error) {
	calendarID, err := s.roster.CalendarID(doctor)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := s.Workday(date)
	started := time.Now()
	events, err := s.source.Events(ctx, calendarID, dayStart, dayEnd)
	if err != nil {
		s.metrics.ObserveBusyFetch("error")
		return nil, fmt.Errorf("availability: read busy intervals: %w", err)
	}
	s.metrics.ObserveBusyFetch("ok")

	duration := time.Duration(durationMins) * time.Minute
	candidates := schedule.GenerateSlots(dayStart, dayEnd, duration)
	open := schedule.FilterAvailable(candidates, calendar.Busy(events))

	starts := make([]string, 0, len(open))
	for _, slot := range open {
		starts = append(starts, slot.Start.In(s.tz).Format(SlotFormat))
	}

	s.metrics.ObserveAvailability(doctor, time.Since(started).Seconds())
	s.logger.Info("availability computed",
		"doctor", doctor,
		"date", date.Format(DateFormat),
		"duration_mins", durationMins,
		"busy", len(events),
		"open", len(starts),
	)
	return starts, nil
}

// Assignment is the outcome of the no-preference doctor scan.
type Assignment struct {
	Doctor string
	Slots  []string
}

// FirstAvailable walks the roster in configured order and returns the
// first doctor with at least one open slot. When every doctor is fully
// booked it returns an empty assignment and no error; collaborator
// failures still propagate.
func (s *Service) FirstAvailable(ctx context.Context, date time.Time, durationMins int) (Assignment, error) {
	for _, doctor := range s.roster.Names() {
		slots, err := s.SlotsFor(ctx, doctor, date, durationMins)
		if err != nil {
			return Assignment{}, err
		}
		if len(slots) > 0 {
			return Assignment{Doctor: doctor, Slots: slots}, nil
		}
	}
	return Assignment{}, nil
}
