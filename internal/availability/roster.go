package availability

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDoctor is returned when a doctor name is not part of the
// configured roster.
var ErrUnknownDoctor = errors.New("availability: unknown doctor")

// Doctor maps a clinic doctor to their external calendar.
type Doctor struct {
	Name       string `json:"name"`
	CalendarID string `json:"calendar_id"`
}

// Roster is the configured doctor list. Order is significant: the
// no-preference assignment policy scans doctors in roster order.
type Roster struct {
	doctors []Doctor
}

// NewRoster builds a roster from an explicit doctor list.
func NewRoster(doctors []Doctor) (*Roster, error) {
	if len(doctors) == 0 {
		return nil, errors.New("availability: roster requires at least one doctor")
	}
	for _, d := range doctors {
		if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.CalendarID) == "" {
			return nil, fmt.Errorf("availability: doctor entry needs name and calendar_id, got %+v", d)
		}
	}
	return &Roster{doctors: doctors}, nil
}

// ParseRoster builds a roster from the DOCTORS_JSON configuration value.
func ParseRoster(raw string) (*Roster, error) {
	var doctors []Doctor
	if err := json.Unmarshal([]byte(raw), &doctors); err != nil {
		return nil, fmt.Errorf("availability: parse roster: %w", err)
	}
	return NewRoster(doctors)
}

// CalendarID resolves a doctor name to their calendar id.
func (r *Roster) CalendarID(doctor string) (string, error) {
	for _, d := range r.doctors {
		if d.Name == doctor {
			return d.CalendarID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDoctor, doctor)
}

// Names returns the doctor names in configured order.
func (r *Roster) Names() []string {
	names := make([]string, 0, len(r.doctors))
	for _, d := range r.doctors {
		names = append(names, d.Name)
	}
	return names
}
