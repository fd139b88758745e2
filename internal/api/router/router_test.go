package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmcruz/barberbook/internal/availability"
	"github.com/dmcruz/barberbook/internal/http/handlers"
)

// openBackend answers every availability query with fixed data.
type openBackend struct{}

func (openBackend) MonthDays(context.Context, availability.MonthQuery) ([]int, error) {
	return []int{1}, nil
}

func (openBackend) DaySlots(context.Context, availability.DayQuery) ([]string, error) {
	return []string{"09:00"}, nil
}

func testRouter() http.Handler {
	h := handlers.NewWidgetHandler(openBackend{}, openBackend{}, nil, nil)
	return New(&Config{WidgetHandler: h})
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestWidgetRouteScopedToShop(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/widget/navalha-central/slots?service_id=3&date=2026-09-01", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUnknownRoute404(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/widget/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
