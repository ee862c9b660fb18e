// Package treatments holds the clinic's treatment reference data and the
// duration lookup used to size appointment slots.
package treatments

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DefaultDurationMins is used when a service is unknown everywhere.
const DefaultDurationMins = 30

// fallbackDurations covers the bookable services that are not treatments
// and therefore never appear in the catalog file.
var fallbackDurations = map[string]int{
	"Consultation": 20,
	"Follow-up":    15,
}

// Treatment is one entry of the clinic catalog. Fields beyond name and
// duration (pricing, aftercare copy) exist in the file but are not needed
// for scheduling.
type Treatment struct {
	Name         string `json:"treatment"`
	DurationMins int    `json:"duration"`
}

// Catalog is the immutable treatment list, loaded once per process.
type Catalog struct {
	treatments []Treatment
}

// Load reads the catalog from a JSON file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("treatments: read catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from raw JSON.
func Parse(data []byte) (*Catalog, error) {
	var list []Treatment
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("treatments: parse catalog: %w", err)
	}
	return &Catalog{treatments: list}, nil
}

// Empty returns a catalog with no treatments. Duration lookups still work
// through the fallback table.
func Empty() *Catalog {
	return &Catalog{}
}

// Duration resolves the appointment length in minutes for a service.
// Catalog names match case-insensitively; a catalog entry without a
// duration counts as the default. Services absent from the catalog fall
// back to the static table, then to DefaultDurationMins.
func (c *Catalog) Duration(service string) int {
	for _, t := range c.treatments {
		if strings.EqualFold(t.Name, service) {
			if t.DurationMins > 0 {
				return t.DurationMins
			}
			return DefaultDurationMins
		}
	}
	if mins, ok := fallbackDurations[service]; ok {
		return mins
	}
	return DefaultDurationMins
}

// Names returns the bookable service names in UI order: Consultation
// first, then the catalog entries as listed in the file.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.treatments)+1)
	names = append(names, "Consultation")
	for _, t := range c.treatments {
		if strings.EqualFold(t.Name, "Consultation") {
			continue
		}
		names = append(names, t.Name)
	}
	return names
}
