package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking flows.
type BookingMetrics struct {
	dispatchTotal       *prometheus.CounterVec
	busyFetchTotal      *prometheus.CounterVec
	availabilityLatency *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "dispatch_total",
			Help:      "Total webhook dispatches to the automation endpoint",
		}, []string{"action", "outcome"}),
		busyFetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "busy_fetch_total",
			Help:      "Total busy-interval reads from doctor calendars",
		}, []string{"status"}),
		availabilityLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "booking",
			Name:      "availability_latency_seconds",
			Help:      "Latency of one availability computation",
			Buckets:   prometheus.DefBuckets,
		}, []string{"doctor"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.dispatchTotal, m.busyFetchTotal, m.availabilityLatency)
	return m
}

func (m *BookingMetrics) ObserveDispatch(action, outcome string) {
	if m == nil {
		return
	}
	m.dispatchTotal.WithLabelValues(action, outcome).Inc()
}

func (m *BookingMetrics) ObserveBusyFetch(status string) {
	if m == nil {
		return
	}
	m.busyFetchTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveAvailability(doctor string, seconds float64) {
	if m == nil {
		return
	}
	m.availabilityLatency.WithLabelValues(doctor).Observe(seconds)
}
