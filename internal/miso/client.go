// Package miso is the HTTP client for the MISO workflow engine that produces
// the news briefing payload. One Fetch call covers endpoint normalization,
// retry with linear backoff, both response modes, and the whole-call timeout.
package miso

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Defaults for Config fields left zero.
const (
	DefaultTimeout     = 5 * time.Minute
	DefaultMaxRetries  = 3
	DefaultBackoffBase = 2 * time.Second
)

// Config controls workflow calls. Endpoint and APIKey are required; the
// remaining fields fall back to the package defaults.
type Config struct {
	Endpoint    string
	APIKey      string
	Timeout     time.Duration
	MaxRetries  int
	BackoffBase time.Duration
}

// Client issues workflow run requests. It holds no per-call state; every
// Fetch owns its own retry counter and stream buffer.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient validates the configuration and returns a client. A missing
// endpoint or API key fails here, before any network activity.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, &ConfigError{Field: "endpoint"}
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigError{Field: "API key"}
	}
	cfg.Endpoint = NormalizeEndpoint(cfg.Endpoint)
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = DefaultBackoffBase
	}
	return &Client{cfg: cfg, http: &http.Client{}}, nil
}

// Endpoint returns the normalized run URL the client posts to.
func (c *Client) Endpoint() string {
	return c.cfg.Endpoint
}

// Fetch runs the workflow once and returns its outputs mapping. 5xx and
// connection failures are retried up to MaxRetries times with linearly
// increasing backoff; 4xx and workflow-level failures are terminal. The
// configured timeout bounds the whole call including every retry and, in
// streaming mode, the in-progress read.
func (c *Client) Fetch(ctx context.Context, req Request) (map[string]any, error) {
	if req.Mode == "" {
		req.Mode = ModeBlocking
	}
	if req.Inputs == nil {
		req.Inputs = map[string]any{}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode workflow request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * c.cfg.BackoffBase
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, &TimeoutError{Timeout: c.cfg.Timeout}
			}
		}

		outputs, err := c.do(ctx, req.Mode, body)
		if err == nil {
			return outputs, nil
		}
		if ctx.Err() != nil {
			return nil, &TimeoutError{Timeout: c.cfg.Timeout}
		}
		if !retryable(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// do performs a single POST and decodes the response for the given mode.
func (c *Client) do(ctx context.Context, mode string, body []byte) (map[string]any, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build workflow request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if mode == ModeStreaming {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 500:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &ServerError{Status: resp.StatusCode}
	case resp.StatusCode >= 400:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &ClientError{Status: resp.StatusCode}
	}

	if mode == ModeStreaming {
		return decodeStream(resp.Body)
	}
	return decodeBlocking(resp)
}

// decodeBlocking reads a blocking-mode envelope. A success status with a
// non-JSON content type means a proxy answered instead of the engine.
func decodeBlocking(resp *http.Response) (map[string]any, error) {
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return nil, &ContentTypeError{ContentType: contentType}
	}

	var envelope runEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &WorkflowError{Status: "unknown", Message: fmt.Sprintf("unreadable response body: %v", err)}
	}
	if envelope.Data == nil {
		return nil, &WorkflowError{Status: "unknown", Message: "response carries no data envelope"}
	}

	switch envelope.Data.Status {
	case StatusSucceeded:
		return envelope.Data.Outputs, nil
	case StatusFailed:
		return nil, &WorkflowError{Status: StatusFailed, Message: envelope.Data.Error}
	case StatusRunning:
		return nil, &WorkflowError{Status: StatusRunning, Message: "workflow has not finished yet"}
	default:
		return nil, &WorkflowError{Status: envelope.Data.Status, Message: "unexpected run status"}
	}
}
