// Package schedule contains the pure slot arithmetic for the booking
// assistant: tiling a working day into fixed-length candidate slots and
// removing the ones that collide with existing calendar events.
package schedule

import (
	"fmt"
	"time"
)

// Interval is a half-open time range [Start, End). It is used both for
// candidate slots and for busy calendar events. Start must precede End.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two intervals share any time. Touching
// endpoints (one interval ending exactly when the other starts) do not
// count as overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Clock is a time of day on the clinic wall clock.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a "15:04" string.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("schedule: parse clock %q: %w", s, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// On anchors the clock time to a calendar date in the given location.
func (c Clock) On(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, c.Hour, c.Minute, 0, 0, loc)
}

// WorkingHours bound the bookable part of a clinic day.
type WorkingHours struct {
	Start Clock
	End   Clock
}

// DefaultWorkingHours is the clinic's standard 09:00-17:00 day.
var DefaultWorkingHours = WorkingHours{
	Start: Clock{Hour: 9},
	End:   Clock{Hour: 17},
}

// GenerateSlots tiles [dayStart, dayEnd] with contiguous slots of the
// given duration, starting exactly at dayStart. The last slot must fit
// entirely before dayEnd; any remainder stays unused. A duration longer
// than the day yields an empty result, not an error.
func GenerateSlots(dayStart, dayEnd time.Time, duration time.Duration) []Interval {
	if duration <= 0 {
		return nil
	}
	var slots []Interval
	for cursor := dayStart; !cursor.Add(duration).After(dayEnd); cursor = cursor.Add(duration) {
		slots = append(slots, Interval{Start: cursor, End: cursor.Add(duration)})
	}
	return slots
}

// FilterAvailable keeps the candidate slots that conflict with none of
// the busy intervals, preserving input order.
func FilterAvailable(candidates, busy []Interval) []Interval {
	available := make([]Interval, 0, len(candidates))
	for _, slot := range candidates {
		conflicting := false
		for _, b := range busy {
			if slot.Overlaps(b) {
				conflicting = true
				break
			}
		}
		if !conflicting {
			available = append(available, slot)
		}
	}
	return available
}
