package calendar

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/lumiere-clinic/booking-assistant/pkg/logging"
)

func testLogger() *logging.Logger {
	return logging.NewWithWriter("error", io.Discard)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*GoogleClient, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	svc, err := gcal.NewService(context.Background(),
		option.WithEndpoint(ts.URL),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return &GoogleClient{svc: svc, logger: testLogger()}, ts
}

func TestEventsParsesListing(t *testing.T) {
	var gotQuery map[string]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"singleEvents": q.Get("singleEvents"),
			"orderBy":      q.Get("orderBy"),
			"timeMin":      q.Get("timeMin"),
			"timeMax":      q.Get("timeMax"),
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"id":    "evt_1",
					"start": map[string]any{"dateTime": "2026-03-10T10:00:00+01:00"},
					"end":   map[string]any{"dateTime": "2026-03-10T10:30:00+01:00"},
				},
				{
					// All-day event: no dateTime, must be ignored.
					"id":    "evt_allday",
					"start": map[string]any{"date": "2026-03-10"},
					"end":   map[string]any{"date": "2026-03-11"},
				},
			},
		})
	})

	from := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	events, err := c.Events(context.Background(), "cal-a", from, to)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "evt_1", events[0].ID)
	assert.Equal(t, 30*time.Minute, events[0].End.Sub(events[0].Start))

	assert.Equal(t, "true", gotQuery["singleEvents"])
	assert.Equal(t, "startTime", gotQuery["orderBy"])
	assert.NotEmpty(t, gotQuery["timeMin"])
	assert.NotEmpty(t, gotQuery["timeMax"])
}

func TestEventsUpstreamError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.Events(context.Background(), "cal-a", time.Now(), time.Now().Add(time.Hour))
	assert.Error(t, err)
}

func TestBusyProjection(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	events := []Event{{ID: "evt_1", Start: start, End: start.Add(20 * time.Minute)}}

	busy := Busy(events)
	require.Len(t, busy, 1)
	assert.True(t, busy[0].Start.Equal(start))
	assert.True(t, busy[0].End.Equal(start.Add(20*time.Minute)))
}
