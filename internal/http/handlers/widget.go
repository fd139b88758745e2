// Package handlers serves the booking widget's JSON endpoints. The widget
// page is a thin client: everything it renders comes from the view models
// produced here.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmcruz/barberbook/internal/availability"
	"github.com/dmcruz/barberbook/internal/observability/metrics"
	"github.com/dmcruz/barberbook/internal/shopctx"
	"github.com/dmcruz/barberbook/internal/slots"
	"github.com/dmcruz/barberbook/internal/wizard"
	"github.com/dmcruz/barberbook/pkg/logging"
)

// WidgetHandler serves slot and calendar view models for the public
// booking widget.
type WidgetHandler struct {
	prechecker availability.Prechecker
	slotSource availability.SlotSource
	metrics    *metrics.WidgetMetrics
	logger     *logging.Logger
	now        func() time.Time
}

// NewWidgetHandler creates a widget handler. metrics may be nil.
func NewWidgetHandler(prechecker availability.Prechecker, slotSource availability.SlotSource, m *metrics.WidgetMetrics, logger *logging.Logger) *WidgetHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &WidgetHandler{
		prechecker: prechecker,
		slotSource: slotSource,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// daysViewResponse is the calendar-step payload.
type daysViewResponse struct {
	Year    int   `json:"year"`
	Month   int   `json:"month"`
	Days    []int `json:"days"`
	AllOpen bool  `json:"all_open"`
}

// GetDays returns the advisory set of days worth querying in detail.
// GET /widget/{shop}/days?service_id=&year=&month=
// The precheck fails open: when the backend is unreachable every day of
// the month is returned so the visitor is never blocked by a degraded
// advisory layer.
func (h *WidgetHandler) GetDays(w http.ResponseWriter, r *http.Request) {
	shop, ok := shopFrom(r)
	if !ok {
		jsonError(w, "missing shop", http.StatusBadRequest)
		return
	}

	serviceID, err := intParam(r, "service_id")
	if err != nil {
		jsonError(w, "invalid service_id", http.StatusBadRequest)
		return
	}
	year, err := intParam(r, "year")
	if err != nil {
		jsonError(w, "invalid year", http.StatusBadRequest)
		return
	}
	month, err := intParam(r, "month")
	if err != nil || month < 1 || month > 12 {
		jsonError(w, "invalid month", http.StatusBadRequest)
		return
	}

	q := availability.MonthQuery{
		Shop:      shop,
		Barber:    r.URL.Query().Get("barber"),
		ServiceID: serviceID,
		Year:      year,
		Month:     month,
	}

	start := h.now()
	cal := wizard.BuildCalendar(r.Context(), h.prechecker, q, h.logger)
	h.metrics.ObserveUpstreamLatency("days", time.Since(start).Seconds())

	resp := daysViewResponse{Year: year, Month: month, Days: make([]int, 0, len(cal.Enabled))}
	for d := 1; d <= 31; d++ {
		if cal.Enabled[d] {
			resp.Days = append(resp.Days, d)
		}
	}
	// All days enabled means the precheck either failed or the whole month
	// is genuinely open; either way nothing is filtered.
	resp.AllOpen = len(resp.Days) == daysInMonth(year, month)

	writeJSON(w, http.StatusOK, resp)
}

// GetSlots returns the bucketed view model for one date.
// GET /widget/{shop}/slots?service_id=&date=YYYY-MM-DD[&bucket=]
// Unlike the advisory precheck, failures here are surfaced: the response
// carries the error state with a truncated diagnostic and the full error
// is logged.
func (h *WidgetHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	shop, ok := shopFrom(r)
	if !ok {
		jsonError(w, "missing shop", http.StatusBadRequest)
		return
	}

	serviceID, err := intParam(r, "service_id")
	if err != nil {
		jsonError(w, "invalid service_id", http.StatusBadRequest)
		return
	}
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		jsonError(w, "invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	q := availability.DayQuery{
		Shop:      shop,
		Barber:    r.URL.Query().Get("barber"),
		ServiceID: serviceID,
		Date:      date,
	}

	start := h.now()
	raw, err := h.slotSource.DaySlots(r.Context(), q)
	h.metrics.ObserveUpstreamLatency("slots", time.Since(start).Seconds())

	session := wizard.NewSlotSession()
	seq := session.Begin(date)
	session.Complete(seq, raw, err)

	if err != nil {
		h.logger.Error("day slot fetch failed", "shop", shop, "service_id", serviceID, "date", date, "error", err)
	}

	view := session.View()
	if bucket := r.URL.Query().Get("bucket"); bucket != "" {
		if b, ok := bucketByName(bucket); ok {
			session.SwitchBucket(b)
			view = session.View()
		}
	}

	h.metrics.ObserveSlotFetch(view.State)
	writeJSON(w, http.StatusOK, view)
}

// wizardShellResponse describes the wizard's four panels for the page
// bootstrap.
type wizardShellResponse struct {
	Steps    []wizardStepView `json:"steps"`
	Progress float64          `json:"progress"`
}

type wizardStepView struct {
	Step  int    `json:"step"`
	Title string `json:"title"`
}

// GetShell returns the wizard shell view model.
// GET /widget/{shop}/shell
func (h *WidgetHandler) GetShell(w http.ResponseWriter, r *http.Request) {
	if _, ok := shopFrom(r); !ok {
		jsonError(w, "missing shop", http.StatusBadRequest)
		return
	}

	state := wizard.New()
	writeJSON(w, http.StatusOK, wizardShellResponse{
		Steps: []wizardStepView{
			{Step: 1, Title: "Serviço"},
			{Step: 2, Title: "Data"},
			{Step: 3, Title: "Horário"},
			{Step: 4, Title: "Confirmação"},
		},
		Progress: state.Progress(),
	})
}

func shopFrom(r *http.Request) (string, bool) {
	if slug, ok := shopctx.ShopFromContext(r.Context()); ok {
		return slug, true
	}
	slug := strings.TrimSpace(chi.URLParam(r, "shop"))
	return slug, slug != ""
}

func bucketByName(name string) (slots.Bucket, bool) {
	for _, b := range slots.Order {
		if b.String() == name {
			return b, true
		}
	}
	return 0, false
}

func intParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(name)))
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
