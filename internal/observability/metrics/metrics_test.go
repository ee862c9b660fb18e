package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBookingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)
	m.ObserveDispatch("book", "ok")
	m.ObserveDispatch("book", "dispatch_failed")
	m.ObserveBusyFetch("ok")
	m.ObserveAvailability("Dr A", 0.25)

	if got := testutil.ToFloat64(m.dispatchTotal.WithLabelValues("book", "ok")); got != 1 {
		t.Fatalf("expected 1 ok dispatch, got %v", got)
	}
	if got := testutil.ToFloat64(m.busyFetchTotal.WithLabelValues("ok")); got != 1 {
		t.Fatalf("expected 1 busy fetch, got %v", got)
	}
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveDispatch("cancel", "ok")
	m.ObserveBusyFetch("error")
	m.ObserveAvailability("Dr B", 0.1)
}
