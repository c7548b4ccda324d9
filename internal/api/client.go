// Package api is the HTTP client for the expense and category service.
//
// Payloads are decoded into wire types and validated before they become
// model values. Records that fail validation are dropped with a warning so a
// single bad row never blanks a whole list.
package api

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

	"github.com/Veraticus/ledger/internal/common"
	"github.com/google/uuid"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8080/api"

const maxBodyBytes = 4 << 20

// Options tunes a Client. Zero values pick defaults.
type Options struct {
	HTTPClient *http.Client
	Location   *time.Location
	Logger     *slog.Logger
	Retry      common.RetryOptions
	Timeout    time.Duration
}

// Client talks to the remote API.
type Client struct {
	httpClient *http.Client
	location   *time.Location
	logger     *slog.Logger
	baseURL    string
	retry      common.RetryOptions
}

// New creates a client rooted at baseURL, for example "http://localhost:8080/api".
func New(baseURL string, opts Options) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, common.ErrInvalidConfig)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must use http or https: %w", baseURL, common.ErrInvalidConfig)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base URL %q has no host: %w", baseURL, common.ErrInvalidConfig)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient: httpClient,
		location:   loc,
		logger:     logger.With("component", "api"),
		baseURL:    strings.TrimRight(u.String(), "/"),
		retry:      opts.Retry,
	}, nil
}

// BaseURL returns the normalized root of every request.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Location returns the timezone used for date-range queries.
func (c *Client) Location() *time.Location {
	return c.location
}

// get performs a GET with retries on transport failures and 5xx responses.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return common.WithRetry(ctx, func() error {
		err := c.do(ctx, http.MethodGet, path, query, nil, out)
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status >= http.StatusInternalServerError {
			return &common.RetryableError{Err: err, Retryable: true}
		}
		return err
	}, c.retry)
}

// send performs a write. Writes are never retried.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Warn("request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err)
		return fmt.Errorf("%s %s: %w: %w", method, path, common.ErrConnection, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Debug("failed to close response body", "error", closeErr)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response: %w: %w", method, path, common.ErrConnection, err)
	}

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Status:  resp.StatusCode,
			Message: ExtractMessage(data, fallbackMessage(method, resp.StatusCode)),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, common.ErrMalformed, err)
	}
	return nil
}

func fallbackMessage(method string, status int) string {
	switch method {
	case http.MethodPost:
		return fmt.Sprintf("Failed to save (HTTP %d)", status)
	case http.MethodPut:
		return fmt.Sprintf("Failed to update (HTTP %d)", status)
	case http.MethodDelete:
		return fmt.Sprintf("Failed to delete (HTTP %d)", status)
	default:
		return fmt.Sprintf("Request failed (HTTP %d)", status)
	}
}
