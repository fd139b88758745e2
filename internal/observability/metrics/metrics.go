package metrics

import "github.com/prometheus/client_golang/prometheus"

// WidgetMetrics exposes counters/histograms for the booking widget flows.
type WidgetMetrics struct {
	slotFetchTotal  *prometheus.CounterVec
	precheckTotal   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
}

func NewWidgetMetrics(reg prometheus.Registerer) *WidgetMetrics {
	m := &WidgetMetrics{
		slotFetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barberbook",
			Subsystem: "widget",
			Name:      "slot_fetch_total",
			Help:      "Day slot fetches by outcome (ready, empty, error)",
		}, []string{"outcome"}),
		precheckTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barberbook",
			Subsystem: "widget",
			Name:      "precheck_total",
			Help:      "Month availability prechecks by outcome and cache result",
		}, []string{"outcome", "cache"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "barberbook",
			Subsystem: "widget",
			Name:      "upstream_latency_seconds",
			Help:      "Latency of booking backend calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.slotFetchTotal, m.precheckTotal, m.upstreamLatency)
	return m
}

func (m *WidgetMetrics) ObserveSlotFetch(outcome string) {
	if m == nil {
		return
	}
	m.slotFetchTotal.WithLabelValues(outcome).Inc()
}

func (m *WidgetMetrics) ObservePrecheck(outcome string, cached bool) {
	if m == nil {
		return
	}
	cache := "miss"
	if cached {
		cache = "hit"
	}
	m.precheckTotal.WithLabelValues(outcome, cache).Inc()
}

func (m *WidgetMetrics) ObserveUpstreamLatency(endpoint string, seconds float64) {
	if m == nil {
		return
	}
	m.upstreamLatency.WithLabelValues(endpoint).Observe(seconds)
}
