// Package client is a typed Go client for the furk marketplace API, together
// with the screen-side data-fetching utilities the web and mobile front-ends
// are built on: a paginated lazy loader, debounced search, an infinite-scroll
// trigger, a remote-sourced select field and the booking availability
// calendar view model.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultRequestTimeout = 30 * time.Second

// Client talks JSON over HTTP to the furk API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func New(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// SetToken swaps the bearer token after login/refresh.
func (c *Client) SetToken(token string) {
	c.token = token
}

type dataEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error *string         `json:"error"`
}

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}

		reader = bytes.NewReader(encoded)
	}

	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("failed to build request URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	envelope := dataEnvelope{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return fmt.Errorf("failed to decode response envelope: %w", err)
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := resp.Status
		if envelope.Error != nil {
			message = *envelope.Error
		}

		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}

	return nil
}

// BookingCalendar performs the single calendar fetch: bookings in the visible
// window plus the merchant schedule metadata, in one call.
func (c *Client) BookingCalendar(ctx context.Context, req BookingCalendarRequest) (BookingCalendarData, error) {
	data := BookingCalendarData{}

	if err := c.do(ctx, http.MethodPost, "/v1/merchant/bookings/list", req, &data); err != nil {
		return BookingCalendarData{}, err
	}

	return data, nil
}

// BookingDetail fetches one booking's full detail, independent of whichever
// list or calendar opened it.
func (c *Client) BookingDetail(ctx context.Context, id string) (BookingDetail, error) {
	detail := BookingDetail{}

	if err := c.do(ctx, http.MethodGet, "/v1/merchant/bookings/"+id, nil, &detail); err != nil {
		return BookingDetail{}, err
	}

	return detail, nil
}

// BookingAction requests a status transition. The client never computes the
// transition locally; the server gates it on the booking's current status.
func (c *Client) BookingAction(ctx context.Context, id string, action BookingAction) (BookingDetail, error) {
	detail := BookingDetail{}

	path := fmt.Sprintf("/v1/merchant/bookings/%s/%s", id, action)
	if err := c.do(ctx, http.MethodPost, path, nil, &detail); err != nil {
		return BookingDetail{}, err
	}

	return detail, nil
}

// ToggleClosure submits a selected span; the server creates a closure
// covering it, or removes an existing overlapping one.
func (c *Client) ToggleClosure(ctx context.Context, start, end time.Time) error {
	req := struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	}{Start: start, End: end}

	return c.do(ctx, http.MethodPost, "/v1/merchant/schedule/closures/toggle", req, nil)
}

// PaymentStatus returns the current gateway-refreshed status of a payment.
func (c *Client) PaymentStatus(ctx context.Context, id string) (Payment, error) {
	payment := Payment{}

	if err := c.do(ctx, http.MethodGet, "/v1/payments/"+id, nil, &payment); err != nil {
		return Payment{}, err
	}

	return payment, nil
}

type pageRequest struct {
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
	Keyword string `json:"keyword,omitempty"`
}

type pageData[T any] struct {
	Data []T `json:"data"`
}

// PageFetcher adapts a generic `POST <resource>/list {limit, offset, keyword}`
// endpoint into a FetchPageFunc for a Loader. Promo, reward-product and
// autocomplete screens all consume this shape.
func PageFetcher[T any](c *Client, path string) FetchPageFunc[T] {
	return func(ctx context.Context, limit, offset int, keyword string) ([]T, error) {
		page := pageData[T]{}

		err := c.do(ctx, http.MethodPost, path, pageRequest{Limit: limit, Offset: offset, Keyword: keyword}, &page)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("failed to fetch page")

			return nil, err
		}

		return page.Data, nil
	}
}
