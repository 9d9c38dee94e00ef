// Package webfetch is the shared HTTP GET helper used by both tools.
// It owns the timeout, the request headers and the status check so the
// handlers only deal with bodies and typed errors.
package webfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// StatusError reports a non-2xx upstream response. Handlers surface its
// Status text to the caller instead of treating it as a transport fault.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %s", e.Status)
}

// Client performs single GET requests with a bounded timeout.
type Client struct {
	http      *http.Client
	userAgent string
	username  string
	password  string
}

// Option customizes a Client.
type Option func(*Client)

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithBasicAuth sets credentials sent on every request. Both values must be
// non-empty for auth to be applied.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// NewClient creates a fetch client. A zero timeout falls back to 30 seconds;
// a hung upstream must never block a tool call indefinitely.
func NewClient(timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: "mcp-webtools-go/0.1",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches rawURL and returns the full response body. A non-2xx response
// yields a *StatusError.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("url must use http or https, got %q", parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")
	if c.username != "" && c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", rawURL, err)
	}
	return body, nil
}
