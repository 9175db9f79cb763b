// Package predict talks to the remote fraud prediction service.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/fraudwatch/internal/common"
	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/Veraticus/fraudwatch/internal/service"
	"github.com/google/uuid"
)

// DefaultTimeout bounds a single request when the config leaves it unset.
const DefaultTimeout = 15 * time.Second

// RequestIDHeader carries a per-request identifier for correlating logs.
const RequestIDHeader = "X-Request-ID"

const maxErrorBody = 512

// Config holds the prediction service connection settings.
type Config struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%w: prediction service base URL is required", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: base URL %q: %v", common.ErrInvalidConfig, c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: base URL %q must use http or https", common.ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", common.ErrInvalidConfig)
	}
	return nil
}

// Client issues prediction and history requests. It never retries: a failed
// prediction is surfaced so the user can decide to resubmit.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Ensure we implement the interface.
var _ service.PredictionService = (*Client)(nil)

// NewClient creates a client for the service at cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// BaseURL returns the normalized service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type predictRequest struct {
	Merchant          string  `json:"merchant"`
	Location          string  `json:"location"`
	Type              string  `json:"type"`
	Device            string  `json:"device"`
	Amount            float64 `json:"amount"`
	Time              int     `json:"time"`
	DaysSince         int     `json:"daysSince"`
	TransactionsToday int     `json:"transactionsToday"`
}

// ValidateInput checks the input can be submitted and returns the parsed amount.
func ValidateInput(input model.TransactionInput) (float64, error) {
	amount, ok := input.Amount()
	if !ok {
		return 0, &common.ValidationError{
			Field: model.FieldAmount,
			Value: input.AmountText,
			Err:   common.ErrInvalidAmount,
		}
	}
	return amount, nil
}

// Submit sends input to POST {base}/predict and returns the service verdict
// unchanged. Invalid input fails with a ValidationError before any request is
// made; every other failure is a TransportError.
func (c *Client) Submit(ctx context.Context, input model.TransactionInput) (*model.PredictionResult, error) {
	amount, err := ValidateInput(input)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(predictRequest{
		Amount:            amount,
		Time:              input.Time,
		Merchant:          string(input.Merchant),
		Location:          string(input.Location),
		Type:              string(input.Type),
		Device:            string(input.Device),
		DaysSince:         input.DaysSince,
		TransactionsToday: input.TransactionsToday,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode prediction request: %w", err)
	}

	var result model.PredictionResult
	if err := c.do(ctx, http.MethodPost, "/predict", payload, &result); err != nil {
		return nil, err
	}

	slog.Debug("Prediction received",
		"status", result.Status,
		"risk_score", result.RiskScore,
		"is_fraud", result.IsFraud)

	return &result, nil
}

// FetchHistory reads GET {base}/history in service order.
func (c *Client) FetchHistory(ctx context.Context) ([]model.HistoryEntry, error) {
	var wire []historyEntry
	if err := c.do(ctx, http.MethodGet, "/history", nil, &wire); err != nil {
		return nil, err
	}

	entries := make([]model.HistoryEntry, len(wire))
	for i, w := range wire {
		entries[i] = w.toModel()
	}
	return entries, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &common.TransportError{Op: op, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.Debug("Calling prediction service", "op", op, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &common.TransportError{Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		detail := strings.TrimSpace(string(snippet))
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		return &common.TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        errors.New(detail),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &common.TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to decode response: %w", err),
		}
	}

	return nil
}
