// Package staff posts booking-request actions (confirm, deny, finalize,
// no-show) from the staff dashboard to the booking backend. There is no
// optimistic local state: a successful action triggers a full page reload
// and the dashboard refetches authoritative state from the server.
package staff

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

// Action is one of the staff request actions.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionDeny     Action = "deny"
	ActionFinalize Action = "finalize"
	ActionNoShow   Action = "no-show"
)

// path returns the backend route segment for the action.
func (a Action) path() string {
	switch a {
	case ActionConfirm:
		return "confirmar"
	case ActionDeny:
		return "recusar"
	case ActionFinalize:
		return "finalizar"
	case ActionNoShow:
		return "no-show"
	}
	return ""
}

// ConfirmRequest confirms a booking request: the proposed start is
// mandatory, the quoted price and service override are optional.
type ConfirmRequest struct {
	Shop      string
	RequestID int
	Start     string // "YYYY-MM-DD HH:MM"
	Price     string // decimal text, optional
	ServiceID int    // optional service override
}

// actionResponse is the backend's JSON reply. Empty bodies are tolerated
// and treated as success for 2xx responses.
type actionResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// ActionError is a rejected or failed staff action.
type ActionError struct {
	Action     Action
	StatusCode int
	Code       string
	Detail     string
}

func (e *ActionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("staff: %s rejected: %s (%s)", e.Action, e.Code, e.Detail)
	}
	return fmt.Sprintf("staff: %s rejected: %s", e.Action, e.Code)
}

// Client posts staff actions to the booking backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
	csrfCookie string
	csrfToken  string
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client (e.g. one carrying the staff
// session cookie jar).
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

// WithCSRFCookie sets the cookie name the anti-forgery token is read from.
func WithCSRFCookie(name string) ClientOption {
	return func(c *Client) {
		c.csrfCookie = name
	}
}

// WithCSRFToken sets a fixed anti-forgery token, bypassing cookie lookup.
func WithCSRFToken(token string) ClientOption {
	return func(c *Client) {
		c.csrfToken = token
	}
}

// NewClient creates a staff action client for the backend at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger:     logging.Default(),
		csrfCookie: "csrftoken",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Confirm confirms a request, creating the appointment server-side.
func (c *Client) Confirm(ctx context.Context, req ConfirmRequest) error {
	form := url.Values{}
	form.Set("inicio", req.Start)
	if req.Price != "" {
		form.Set("preco_cotado", req.Price)
	}
	if req.ServiceID > 0 {
		form.Set("servico_id", strconv.Itoa(req.ServiceID))
	}
	return c.post(ctx, ActionConfirm, req.Shop, req.RequestID, form)
}

// Deny rejects a request with an optional reason recorded server-side.
func (c *Client) Deny(ctx context.Context, shop string, requestID int, reason string) error {
	form := url.Values{}
	if reason != "" {
		form.Set("motivo", reason)
	}
	return c.post(ctx, ActionDeny, shop, requestID, form)
}

// Finalize marks a confirmed request as carried out.
func (c *Client) Finalize(ctx context.Context, shop string, requestID int) error {
	return c.post(ctx, ActionFinalize, shop, requestID, url.Values{})
}

// NoShow marks the customer as a no-show.
func (c *Client) NoShow(ctx context.Context, shop string, requestID int) error {
	return c.post(ctx, ActionNoShow, shop, requestID, url.Values{})
}

func (c *Client) actionURL(a Action, shop string, requestID int) string {
	return fmt.Sprintf("%s/%s/solicitacoes/%d/%s/", c.baseURL, url.PathEscape(shop), requestID, a.path())
}

// token resolves the anti-forgery token: an explicit token wins, otherwise
// the client's cookie jar is consulted for the configured cookie.
func (c *Client) token() string {
	if c.csrfToken != "" {
		return c.csrfToken
	}
	if c.httpClient.Jar == nil {
		return ""
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range c.httpClient.Jar.Cookies(u) {
		if cookie.Name == c.csrfCookie {
			return cookie.Value
		}
	}
	return ""
}

func (c *Client) post(ctx context.Context, a Action, shop string, requestID int, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.actionURL(a, shop, requestID), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("staff: create %s request: %w", a, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if token := c.token(); token != "" {
		req.Header.Set("X-CSRFToken", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("staff: %s request failed: %w", a, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))

	// An empty body on a 2xx response is a success.
	if len(strings.TrimSpace(string(body))) == 0 {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			c.logger.Info("staff action applied", "action", string(a), "shop", shop, "request_id", requestID)
			return nil
		}
		return &ActionError{Action: a, StatusCode: resp.StatusCode, Code: http.StatusText(resp.StatusCode)}
	}

	var parsed actionResponse
	if jsonErr := json.Unmarshal(body, &parsed); jsonErr != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		return &ActionError{Action: a, StatusCode: resp.StatusCode, Code: http.StatusText(resp.StatusCode), Detail: string(body)}
	}

	if !parsed.OK {
		code := parsed.Error
		if code == "" {
			code = http.StatusText(resp.StatusCode)
		}
		return &ActionError{Action: a, StatusCode: resp.StatusCode, Code: code, Detail: parsed.Detail}
	}

	c.logger.Info("staff action applied", "action", string(a), "shop", shop, "request_id", requestID)
	return nil
}
