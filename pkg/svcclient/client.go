package svcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout    = 5 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second
)

// CallError is the classified result of a failed remote call.
// Code is always populated, falling back to 500 when the remote
// gave no usable status.
type CallError struct {
	Code    int
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("service call failed: %d %s", e.Code, e.Message)
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Client wraps outbound HTTP calls with a per-call timeout and
// fixed-interval retries. Retries are uniform across call sites:
// any non-2xx response or transport error is retried, including 404,
// and the delay never grows. No circuit breaking, no jitter.
type Client struct {
	http       *http.Client
	logger     *slog.Logger
	baseURL    string
	maxRetries int
	retryDelay time.Duration
}

func New(logger *slog.Logger, cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	return &Client{
		http:       &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With(slog.String("component", "svcclient")),
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

// Get fetches path and returns the raw response body. A 404 on the final
// attempt maps to CallError{404, "Resource not found"}; other response
// failures carry the remote status and message, and pure transport
// failures map to CallError{500, "Unknown error occurred"}.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, &CallError{Code: http.StatusInternalServerError, Message: "Unknown error occurred"}
	}
	if resp.ok() {
		return resp.body, nil
	}
	if resp.status == http.StatusNotFound {
		return nil, &CallError{Code: http.StatusNotFound, Message: "Resource not found"}
	}
	return nil, classify(resp)
}

// Post sends payload as JSON to path. Unlike Get there is no special
// 404 mapping; the remote status and message are surfaced as-is.
func (c *Client) Post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, &CallError{Code: http.StatusInternalServerError, Message: "Unknown error occurred"}
	}

	resp, err := c.do(ctx, http.MethodPost, path, data)
	if err != nil {
		return nil, &CallError{Code: http.StatusInternalServerError, Message: "Unknown error occurred"}
	}
	if resp.ok() {
		return resp.body, nil
	}
	return nil, classify(resp)
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// do runs the request, resubmitting it unchanged after retryDelay while
// the attempt counter has not passed maxRetries. The response (or
// transport error) of the last attempt is returned for classification.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) (*response, error) {
	var (
		lastResp *response
		lastErr  error
	)

	for attempt := 0; ; attempt++ {
		lastResp, lastErr = c.once(ctx, method, path, payload)
		if lastErr == nil && lastResp.ok() {
			return lastResp, nil
		}

		if attempt >= c.maxRetries {
			break
		}

		c.logger.Warn("retrying request",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("attempt", attempt+1),
			slog.Int("max_retries", c.maxRetries),
		)
		time.Sleep(c.retryDelay)
	}

	attrs := []any{
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("retries", c.maxRetries),
	}
	if lastResp != nil {
		attrs = append(attrs,
			slog.Int("status", lastResp.status),
			slog.String("body", string(lastResp.body)),
		)
	} else {
		attrs = append(attrs, slog.Any("error", lastErr))
	}
	c.logger.Error("request failed after retries", attrs...)

	if lastErr != nil {
		return nil, lastErr
	}
	return lastResp, nil
}

func (c *Client) once(ctx context.Context, method, path string, payload []byte) (*response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return &response{status: res.StatusCode, body: data}, nil
}

// classify builds a CallError from the final failed response, parsing the
// remote error body defensively and defaulting both code and message.
func classify(resp *response) *CallError {
	code := resp.status
	if code == 0 {
		code = http.StatusInternalServerError
	}

	var remote struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	message := "Service request failed"
	if err := json.Unmarshal(resp.body, &remote); err == nil {
		switch {
		case remote.Message != "":
			message = remote.Message
		case remote.Error != "":
			message = remote.Error
		}
	}

	return &CallError{Code: code, Message: message}
}
