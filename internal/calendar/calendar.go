// Package calendar reads doctor calendars through the Google Calendar API.
// The booking assistant only ever reads events; all calendar mutation is
// performed by the automation endpoint downstream of the webhooks.
package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/lumiere-clinic/booking-assistant/internal/schedule"
	"github.com/lumiere-clinic/booking-assistant/pkg/logging"
)

// Event is a concrete calendar event occurrence. Recurring events arrive
// already expanded because listings request single events.
type Event struct {
	ID    string
	Start time.Time
	End   time.Time
}

// Source lists a doctor's calendar events inside a window, ordered by
// start time.
type Source interface {
	Events(ctx context.Context, calendarID string, from, to time.Time) ([]Event, error)
}

// Busy projects events onto the busy intervals the conflict filter
// consumes.
func Busy(events []Event) []schedule.Interval {
	busy := make([]schedule.Interval, 0, len(events))
	for _, ev := range events {
		busy = append(busy, schedule.Interval{Start: ev.Start, End: ev.End})
	}
	return busy
}

// GoogleClient is the service-account backed Source implementation.
type GoogleClient struct {
	svc    *gcal.Service
	logger *logging.Logger
}

// NewGoogleClient builds a read-only calendar client from a
// service-account credentials file.
func NewGoogleClient(ctx context.Context, credentialsPath string, logger *logging.Logger) (*GoogleClient, error) {
	if logger == nil {
		logger = logging.Default()
	}
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(gcal.CalendarReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("calendar: create service: %w", err)
	}
	return &GoogleClient{svc: svc, logger: logger.Component("calendar")}, nil
}

// Events lists the events on calendarID between from and to. All-day
// events carry a date instead of a timestamp and are skipped; they do not
// block bookable slots.
func (c *GoogleClient) Events(ctx context.Context, calendarID string, from, to time.Time) ([]Event, error) {
	res, err := c.svc.Events.List(calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("calendar: list events for %s: %w", calendarID, err)
	}

	events := make([]Event, 0, len(res.Items))
	for _, item := range res.Items {
		if item.Start == nil || item.End == nil || item.Start.DateTime == "" || item.End.DateTime == "" {
			c.logger.Debug("skipping event without concrete times", "event_id", item.Id)
			continue
		}
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			c.logger.Warn("unparseable event start", "event_id", item.Id, "value", item.Start.DateTime)
			continue
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			c.logger.Warn("unparseable event end", "event_id", item.Id, "value", item.End.DateTime)
			continue
		}
		events = append(events, Event{ID: item.Id, Start: start, End: end})
	}
	return events, nil
}
