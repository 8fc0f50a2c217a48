package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/renzojacob/IntelliHRTrack/internal/balance"
	"github.com/renzojacob/IntelliHRTrack/internal/blackout"

	"go.uber.org/zap"
)

// Client talks to the HR backend that owns authentication, approval workflow
// and durable leave state. Every call takes a context and none of them retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger ...*zap.Logger) *Client {
	l := zap.L().Named("upstream.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("upstream.client")
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     l,
	}
}

// ApplyPayload is the create-leave body the backend accepts.
type ApplyPayload struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// StatusUpdate is the admin decision body: status is approved or declined.
type StatusUpdate struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks,omitempty"`
}

// MyLeaves fetches the caller's leave requests. The payload is returned raw
// because the backend's field naming is not stable; the leave package's
// normalization boundary is the only decoder.
func (c *Client) MyLeaves(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/api/v1/leaves/employee/my-leaves")
}

// Apply submits a new leave request to the backend.
func (c *Client) Apply(ctx context.Context, payload ApplyPayload) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/leaves/employee/apply", payload)
	if err != nil {
		return fmt.Errorf("apply leave: %w", err)
	}
	return nil
}

// UpdateStatus applies an admin approve/decline decision.
func (c *Client) UpdateStatus(ctx context.Context, leaveID string, update StatusUpdate) error {
	path := fmt.Sprintf("/api/v1/leaves/admin/%s/status", leaveID)
	_, err := c.do(ctx, http.MethodPut, path, update)
	if err != nil {
		return fmt.Errorf("update leave status: %w", err)
	}
	return nil
}

// Balances fetches the caller's leave balances.
func (c *Client) Balances(ctx context.Context) ([]balance.Balance, error) {
	raw, err := c.get(ctx, "/api/v1/leaves/employee/balance")
	if err != nil {
		return nil, fmt.Errorf("fetch leave balances: %w", err)
	}
	var balances []balance.Balance
	if err := json.Unmarshal(raw, &balances); err != nil {
		return nil, fmt.Errorf("decode leave balances: %w", err)
	}
	return balances, nil
}

// BlackoutPeriods fetches the company blackout registry.
func (c *Client) BlackoutPeriods(ctx context.Context) ([]blackout.Period, error) {
	raw, err := c.get(ctx, "/api/v1/leaves/admin/blackout-periods")
	if err != nil {
		return nil, fmt.Errorf("fetch blackout periods: %w", err)
	}
	var periods []blackout.Period
	if err := json.Unmarshal(raw, &periods); err != nil {
		return nil, fmt.Errorf("decode blackout periods: %w", err)
	}
	return periods, nil
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("upstream request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	return payload, nil
}
