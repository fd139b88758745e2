package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveSlotFetch(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWidgetMetrics(reg)

	m.ObserveSlotFetch("ready")
	m.ObserveSlotFetch("ready")
	m.ObserveSlotFetch("error")

	expected := `
# HELP barberbook_widget_slot_fetch_total Day slot fetches by outcome (ready, empty, error)
# TYPE barberbook_widget_slot_fetch_total counter
barberbook_widget_slot_fetch_total{outcome="error"} 1
barberbook_widget_slot_fetch_total{outcome="ready"} 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "barberbook_widget_slot_fetch_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}

func TestObservePrecheckCacheLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWidgetMetrics(reg)

	m.ObservePrecheck("ok", true)
	m.ObservePrecheck("ok", false)
	m.ObservePrecheck("error", false)

	expected := `
# HELP barberbook_widget_precheck_total Month availability prechecks by outcome and cache result
# TYPE barberbook_widget_precheck_total counter
barberbook_widget_precheck_total{cache="hit",outcome="ok"} 1
barberbook_widget_precheck_total{cache="miss",outcome="error"} 1
barberbook_widget_precheck_total{cache="miss",outcome="ok"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "barberbook_widget_precheck_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}

func TestNilReceiverSafe(t *testing.T) {
	var m *WidgetMetrics
	m.ObserveSlotFetch("ready")
	m.ObservePrecheck("ok", false)
	m.ObserveUpstreamLatency("slots", 0.1)
}
