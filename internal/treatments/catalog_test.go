package treatments

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `[
  {"treatment": "Microneedling", "duration": 45, "price": "150"},
  {"treatment": "Chemical Peel", "duration": 40},
  {"treatment": "Laser Hair Removal"}
]`

func TestDuration(t *testing.T) {
	catalog, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	tests := []struct {
		service string
		want    int
	}{
		{"Microneedling", 45},
		{"microneedling", 45},
		{"MICRONEEDLING", 45},
		{"Chemical Peel", 40},
		{"Laser Hair Removal", DefaultDurationMins}, // no duration in record
		{"Consultation", 20},
		{"Follow-up", 15},
		{"Something Unknown", DefaultDurationMins},
	}
	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Duration(tt.service))
		})
	}
}

func TestDurationEmptyCatalogUsesFallbacks(t *testing.T) {
	catalog := Empty()
	assert.Equal(t, 20, catalog.Duration("Consultation"))
	assert.Equal(t, 15, catalog.Duration("Follow-up"))
	assert.Equal(t, DefaultDurationMins, catalog.Duration("Botox"))
}

func TestNamesOrder(t *testing.T) {
	catalog, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	names := catalog.Names()
	require.Equal(t, []string{"Consultation", "Microneedling", "Chemical Peel", "Laser Hair Removal"}, names)
}

func TestLoadFromFile(t *testing.T) {
	catalog, err := Load(filepath.Join("testdata", "treatments.json"))
	require.NoError(t, err)
	assert.Equal(t, 45, catalog.Duration("Microneedling"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.json"))
	assert.Error(t, err)
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	assert.Error(t, err)
}
