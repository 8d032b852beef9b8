// Package api is the bearer-token JSON client for the partner console backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/glowdesk/partner-console/internal/observability/metrics"
	"github.com/glowdesk/partner-console/pkg/logging"
)

const defaultTimeout = 20 * time.Second

// ErrNotFound reports a 404 from the backend. Delete flows treat it as
// already-gone.
var ErrNotFound = errors.New("api: not found")

// TokenSource supplies the bearer token for each request, so a refreshed
// sign-in is picked up without rebuilding the client.
type TokenSource interface {
	Token() string
}

// Client is a lightweight JSON client for the console backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *logging.Logger
	metrics    *metrics.APIMetrics
}

// New creates a console API client. A zero timeout falls back to the default.
func New(baseURL string, timeout time.Duration, tokens TokenSource, logger *logging.Logger, m *metrics.APIMetrics) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		logger:     logger.Component("api"),
		metrics:    m,
	}
}

// GetAvailability fetches the establishment's weekly schedule (UTC times).
func (c *Client) GetAvailability(ctx context.Context) ([]AvailabilityDay, error) {
	var out []AvailabilityDay
	if err := c.do(ctx, "availability.get", http.MethodGet, "/establishments/availability", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveAvailability replaces the establishment's weekly schedule wholesale.
func (c *Client) SaveAvailability(ctx context.Context, days []AvailabilityDay) error {
	body := saveAvailabilityRequest{Availability: days}
	if body.Availability == nil {
		body.Availability = []AvailabilityDay{}
	}
	return c.do(ctx, "availability.save", http.MethodPost, "/establishments/availability", nil, body, nil)
}

// CreateBlock creates a one-off block for an employee.
func (c *Client) CreateBlock(ctx context.Context, employeeID string, req CreateBlockRequest) (*Block, error) {
	var out Block
	path := fmt.Sprintf("/employees/%s/blocks", url.PathEscape(employeeID))
	if err := c.do(ctx, "blocks.create", http.MethodPost, path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBlocks returns an employee's one-off blocks (UTC instants).
func (c *Client) ListBlocks(ctx context.Context, employeeID string) ([]Block, error) {
	var out []Block
	path := fmt.Sprintf("/employees/%s/blocks", url.PathEscape(employeeID))
	if err := c.do(ctx, "blocks.list", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteBlock removes a one-off block.
func (c *Client) DeleteBlock(ctx context.Context, blockID string) error {
	path := fmt.Sprintf("/blocks/%s", url.PathEscape(blockID))
	return c.do(ctx, "blocks.delete", http.MethodDelete, path, nil, nil, nil)
}

// CreateRecurringBlock creates a weekly recurring block for an employee.
func (c *Client) CreateRecurringBlock(ctx context.Context, employeeID string, req CreateRecurringBlockRequest) (*RecurringBlock, error) {
	var out RecurringBlock
	path := fmt.Sprintf("/employees/%s/recurring-blocks", url.PathEscape(employeeID))
	if err := c.do(ctx, "recurring_blocks.create", http.MethodPost, path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRecurringBlocks returns an employee's recurring blocks (UTC times).
func (c *Client) ListRecurringBlocks(ctx context.Context, employeeID string) ([]RecurringBlock, error) {
	var out []RecurringBlock
	path := fmt.Sprintf("/employees/%s/recurring-blocks", url.PathEscape(employeeID))
	if err := c.do(ctx, "recurring_blocks.list", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteRecurringBlock removes a recurring block.
func (c *Client) DeleteRecurringBlock(ctx context.Context, recurringBlockID string) error {
	path := fmt.Sprintf("/recurring-blocks/%s", url.PathEscape(recurringBlockID))
	return c.do(ctx, "recurring_blocks.delete", http.MethodDelete, path, nil, nil, nil)
}

// CheckBonus fetches the loyalty snapshot for a customer/service pair.
func (c *Client) CheckBonus(ctx context.Context, customerID, serviceID string) (*BonusStatus, error) {
	query := url.Values{}
	query.Set("customerId", customerID)
	query.Set("serviceId", serviceID)

	var out BonusStatus
	if err := c.do(ctx, "bonus.check", http.MethodGet, "/partner/check-bonus", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteAppointment marks an appointment completed with its payment details.
func (c *Client) CompleteAppointment(ctx context.Context, appointmentID string, req CompleteAppointmentRequest) error {
	path := fmt.Sprintf("/partner/appointments/%s/status", url.PathEscape(appointmentID))
	return c.do(ctx, "checkin.submit", http.MethodPatch, path, nil, req, nil)
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, body, out interface{}) error {
	if c.baseURL == "" {
		return fmt.Errorf("api: missing base url")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(endpoint, "transport_error", time.Since(start).Seconds())
		return fmt.Errorf("api: http request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveRequest(endpoint, fmt.Sprintf("%d", resp.StatusCode), time.Since(start).Seconds())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(respBody)
		if len(msg) > 300 {
			msg = msg[:300]
		}
		c.logger.Error("request failed", "endpoint", endpoint, "status", resp.StatusCode)
		return fmt.Errorf("api: status %d: %s", resp.StatusCode, msg)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("api: unmarshal response: %w", err)
		}
	}
	return nil
}
