package order

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var ErrNotFound = errors.New("order not found")

// SubmissionError is the only error that crosses the network boundary:
// a failed transport or a non-2xx answer from the Order Service. The cart
// is left untouched by the caller, so checkout can always be retried.
type SubmissionError struct {
	Status int
	Detail string
	cause  error
}

func (e *SubmissionError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "Checkout failed"
}

func (e *SubmissionError) Unwrap() error { return e.cause }

// Client talks to the Order Service.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// PlaceOrder submits the cart snapshot exactly once. No retry: a failure
// comes back as *SubmissionError with the server's detail when it sent one.
func (c *Client) PlaceOrder(ctx context.Context, req CreateRequest) (*Receipt, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, &SubmissionError{cause: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var payload struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(res.Body).Decode(&payload)
		return nil, &SubmissionError{Status: res.StatusCode, Detail: payload.Detail}
	}

	var rcpt Receipt
	if err := json.NewDecoder(res.Body).Decode(&rcpt); err != nil {
		return nil, &SubmissionError{Status: res.StatusCode, cause: err}
	}
	return &rcpt, nil
}

// ListByUser returns the user's past orders, newest last (service order).
func (c *Client) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/user/%d", c.BaseURL, userID), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order history: %s", res.Status)
	}
	var out []Order
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single past order.
func (c *Client) GetByID(ctx context.Context, orderID int64) (*Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%d", c.BaseURL, orderID), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("get order: %s", res.Status)
	}
	var o Order
	if err := json.NewDecoder(res.Body).Decode(&o); err != nil {
		return nil, err
	}
	return &o, nil
}
