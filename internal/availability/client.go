// Package availability is the client for the booking backend's public
// availability endpoints. The month precheck and the day fetch are split
// into two interfaces on purpose: the precheck is advisory and fails open,
// while the day fetch is authoritative and surfaces its failures.
package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmcruz/barberbook/pkg/logging"
)

// MonthQuery identifies one month of availability for a service, optionally
// narrowed to a single barber.
type MonthQuery struct {
	Shop      string
	Barber    string
	ServiceID int
	Year      int
	Month     int
}

// DayQuery identifies one date of availability for a service.
type DayQuery struct {
	Shop      string
	Barber    string
	ServiceID int
	Date      string // YYYY-MM-DD
}

// Prechecker narrows which calendar days are worth querying in detail.
// Implementations are advisory: callers treat any error as "every day may
// have availability" rather than blocking the visitor.
type Prechecker interface {
	MonthDays(ctx context.Context, q MonthQuery) ([]int, error)
}

// SlotSource returns the exact bookable start times for a date. This is the
// authoritative fetch; errors are surfaced to the visitor.
type SlotSource interface {
	DaySlots(ctx context.Context, q DayQuery) ([]string, error)
}

// HTTPError is a non-2xx response from the booking backend. Body holds the
// raw response text so callers can show a truncated diagnostic.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("availability: backend returned status %d: %s", e.StatusCode, e.Body)
}

// maxErrorBody bounds how much of an error response is retained.
const maxErrorBody = 4 << 10

type daysResponse struct {
	Days []int `json:"days"`
}

type slotsResponse struct {
	Slots []string `json:"slots"`
}

// Client calls the booking backend's public slot endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

var (
	_ Prechecker = (*Client)(nil)
	_ SlotSource = (*Client)(nil)
)

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a client for the booking backend at baseURL
// (e.g. "https://booking.example.com").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// slotsURL builds the shop-scoped slot endpoint, optionally narrowed to a
// barber.
func (c *Client) slotsURL(shop, barber string) string {
	if barber != "" {
		return c.baseURL + "/pub/" + url.PathEscape(shop) + "/" + url.PathEscape(barber) + "/slots/"
	}
	return c.baseURL + "/pub/" + url.PathEscape(shop) + "/slots/"
}

// MonthDays returns the day numbers of the month with any availability for
// the service.
func (c *Client) MonthDays(ctx context.Context, q MonthQuery) ([]int, error) {
	params := url.Values{}
	params.Set("mode", "days")
	params.Set("service_id", strconv.Itoa(q.ServiceID))
	params.Set("year", strconv.Itoa(q.Year))
	params.Set("month", strconv.Itoa(q.Month))

	var out daysResponse
	if err := c.getJSON(ctx, c.slotsURL(q.Shop, q.Barber)+"?"+params.Encode(), &out); err != nil {
		return nil, err
	}

	c.logger.Debug("month precheck fetched",
		"shop", q.Shop,
		"service_id", q.ServiceID,
		"year", q.Year,
		"month", q.Month,
		"days", len(out.Days),
	)
	return out.Days, nil
}

// DaySlots returns the raw HH:MM start times for the date. The caller is
// responsible for validation and bucketing.
func (c *Client) DaySlots(ctx context.Context, q DayQuery) ([]string, error) {
	params := url.Values{}
	params.Set("service_id", strconv.Itoa(q.ServiceID))
	params.Set("date", q.Date)

	var out slotsResponse
	if err := c.getJSON(ctx, c.slotsURL(q.Shop, q.Barber)+"?"+params.Encode(), &out); err != nil {
		return nil, err
	}

	c.logger.Info("day slots fetched",
		"shop", q.Shop,
		"service_id", q.ServiceID,
		"date", q.Date,
		"slots", len(out.Slots),
	)
	return out.Slots, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("availability: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("availability: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("availability: decode response: %w", err)
	}
	return nil
}
