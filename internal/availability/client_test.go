package availability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaySlots(t *testing.T) {
	var gotPath, gotAccept string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"slots":["09:00","09:30","10:00"]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	slots, err := client.DaySlots(context.Background(), DayQuery{
		Shop:      "navalha-central",
		ServiceID: 3,
		Date:      "2026-09-01",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slots)
	assert.Equal(t, "/pub/navalha-central/slots/", gotPath)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "3", gotQuery["service_id"][0])
	assert.Equal(t, "2026-09-01", gotQuery["date"][0])
}

func TestDaySlotsWithBarber(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"slots":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	slots, err := client.DaySlots(context.Background(), DayQuery{
		Shop:      "navalha-central",
		Barber:    "ze-tesoura",
		ServiceID: 3,
		Date:      "2026-09-01",
	})

	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.Equal(t, "/pub/navalha-central/ze-tesoura/slots/", gotPath)
}

func TestMonthDays(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"days":[1,5,12]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	days, err := client.MonthDays(context.Background(), MonthQuery{
		Shop:      "navalha-central",
		ServiceID: 3,
		Year:      2026,
		Month:     9,
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 12}, days)
	assert.Equal(t, "days", gotQuery["mode"][0])
	assert.Equal(t, "2026", gotQuery["year"][0])
	assert.Equal(t, "9", gotQuery["month"][0])
}

func TestDaySlotsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal server error: availability engine down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.DaySlots(context.Background(), DayQuery{Shop: "s", ServiceID: 1, Date: "2026-09-01"})

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "availability engine down")
}

func TestDaySlotsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.DaySlots(context.Background(), DayQuery{Shop: "s", ServiceID: 1, Date: "2026-09-01"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestDaySlotsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL)
	_, err := client.DaySlots(context.Background(), DayQuery{Shop: "s", ServiceID: 1, Date: "2026-09-01"})

	require.Error(t, err)
	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr), "transport failures are not HTTP errors")
}

func TestHTTPErrorBodyBounded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 64<<10)))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.DaySlots(context.Background(), DayQuery{Shop: "s", ServiceID: 1, Date: "2026-09-01"})

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.LessOrEqual(t, len(httpErr.Body), maxErrorBody)
}
