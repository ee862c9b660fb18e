// Package appointments resolves appointment state from the spreadsheet
// record store the automation writes to. Lookups are linear scans over
// the full row set, which is fine at clinic scale.
package appointments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lumiere-clinic/booking-assistant/internal/calendar"
	"github.com/lumiere-clinic/booking-assistant/pkg/logging"
)

// Record is one raw row of the record store, field name to value.
// Missing fields read as "".
type Record map[string]string

// RecordSource returns every row of the store.
type RecordSource interface {
	Records(ctx context.Context) ([]Record, error)
}

// Appointment is the resolved state of one booking. A zero value means
// "not found"; callers check blankness instead of handling an error.
type Appointment struct {
	BookingID string
	EventID   string
	Name      string
	Email     string
	Phone     string
	Age       string
	Doctor    string
	Service   string
	Date      string // "YYYY-MM-DD HH:MM" as stored by the automation
}

// IsZero reports whether the lookup found nothing.
func (a Appointment) IsZero() bool {
	return a == Appointment{}
}

// DateParts splits the stored date into its day and clock components.
// Rows written before the automation recorded times may hold only a day.
func (a Appointment) DateParts() (day, clock string) {
	fields := strings.Fields(a.Date)
	if len(fields) > 0 {
		day = fields[0]
	}
	if len(fields) > 1 {
		clock = fields[1]
	}
	return day, clock
}

func fromRecord(rec Record) Appointment {
	return Appointment{
		BookingID: rec["booking_id"],
		EventID:   rec["eventId"],
		Name:      rec["name"],
		Email:     rec["email"],
		Phone:     rec["phone"],
		Age:       rec["age"],
		Doctor:    rec["doctor"],
		Service:   rec["service"],
		Date:      rec["date"],
	}
}

// Lookup reads the record store and doctor calendars.
type Lookup struct {
	records RecordSource
	events  calendar.Source
	tz      *time.Location
	logger  *logging.Logger
}

// NewLookup wires the appointment lookup. events may be nil when the day
// schedule is not needed.
func NewLookup(records RecordSource, events calendar.Source, tz *time.Location, logger *logging.Logger) *Lookup {
	if records == nil {
		panic("appointments: record source required")
	}
	if tz == nil {
		tz = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Lookup{records: records, events: events, tz: tz, logger: logger.Component("appointments")}
}

// FindByBookingID returns the first row whose booking_id matches, or a
// zero appointment when none does.
func (l *Lookup) FindByBookingID(ctx context.Context, bookingID string) (Appointment, error) {
	return l.find(ctx, "booking_id", bookingID)
}

// FindByEventID returns the first row whose calendar event id matches,
// or a zero appointment when none does.
func (l *Lookup) FindByEventID(ctx context.Context, eventID string) (Appointment, error) {
	return l.find(ctx, "eventId", eventID)
}

func (l *Lookup) find(ctx context.Context, field, value string) (Appointment, error) {
	want := strings.TrimSpace(value)
	if want == "" {
		return Appointment{}, nil
	}
	rows, err := l.records.Records(ctx)
	if err != nil {
		return Appointment{}, fmt.Errorf("appointments: read records: %w", err)
	}
	for _, row := range rows {
		if strings.TrimSpace(row[field]) == want {
			return fromRecord(row), nil
		}
	}
	l.logger.Debug("no matching record", "field", field, "value", want)
	return Appointment{}, nil
}

// ScheduleEntry is one line of a doctor's day overview: the calendar
// event joined with the patient row that references it. Patient fields
// stay blank when the record store has no row for the event.
type ScheduleEntry struct {
	Time      string `json:"time"` // "HH:MM", clinic-local event start
	EventID   string `json:"event_id"`
	BookingID string `json:"booking_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Age       string `json:"age"`
	Service   string `json:"service"`
	Doctor    string `json:"doctor"`
}

// DaySchedule lists a doctor's appointments for one date, ordered by
// event start. The record snapshot is read once for the whole join.
func (l *Lookup) DaySchedule(ctx context.Context, doctor, calendarID string, date time.Time) ([]ScheduleEntry, error) {
	if l.events == nil {
		return nil, fmt.Errorf("appointments: no calendar source configured")
	}

	y, m, d := date.In(l.tz).Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, l.tz)
	dayEnd := dayStart.AddDate(0, 0, 1)

	events, err := l.events.Events(ctx, calendarID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("appointments: read day events: %w", err)
	}
	if len(events) == 0 {
		return nil, nil
	}

	rows, err := l.records.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("appointments: read records: %w", err)
	}
	byEventID := make(map[string]Record, len(rows))
	for _, row := range rows {
		if id := strings.TrimSpace(row["eventId"]); id != "" {
			if _, seen := byEventID[id]; !seen {
				byEventID[id] = row
			}
		}
	}

	entries := make([]ScheduleEntry, 0, len(events))
	for _, ev := range events {
		entry := ScheduleEntry{
			Time:    ev.Start.In(l.tz).Format("15:04"),
			EventID: ev.ID,
			Doctor:  doctor,
		}
		if row, ok := byEventID[ev.ID]; ok {
			appt := fromRecord(row)
			entry.BookingID = appt.BookingID
			entry.Name = appt.Name
			entry.Email = appt.Email
			entry.Phone = appt.Phone
			entry.Age = appt.Age
			entry.Service = appt.Service
			if appt.Doctor != "" {
				entry.Doctor = appt.Doctor
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
